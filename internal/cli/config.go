package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ndcmsl/workflows/internal/cli/shared"
	"github.com/ndcmsl/workflows/internal/config"
	clierrors "github.com/ndcmsl/workflows/internal/errors"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and initialize reldocs configuration",
		Long: `Inspect and initialize reldocs configuration.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (RELDOCS_*, nested keys joined with __)
  2. Project config (.reldocs/config.yml, or --config)
  3. User config (~/.config/reldocs/config.yml)
  4. Built-in defaults`,
		Example: `  # Show the effective configuration
  reldocs config show

  # List every key
  reldocs config keys

  # Write a commented project config
  reldocs config init`,
	}
	cmd.GroupID = shared.GroupConfiguration

	cmd.AddCommand(newConfigShowCmd(), newConfigKeysCmd(), newConfigInitCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return fail(cmd, shared.ExitConfigError, clierrors.AsCLIError(err))
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fail(cmd, shared.ExitConfigError, clierrors.Wrap(err, clierrors.Runtime))
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newConfigKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List all configuration keys",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for _, key := range config.SortedKeys() {
				schema := config.KnownKeys[key]
				fmt.Fprintf(out, "%-22s %-9s %s\n", key, schema.Type, schema.Description)
			}
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented project config to .reldocs/config.yml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				path = config.ProjectConfigPath()
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fail(cmd, shared.ExitInvalidArguments, clierrors.NewArgumentError(
					fmt.Sprintf("%s already exists", path),
					"Pass --force to overwrite it"))
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fail(cmd, shared.ExitConfigError, clierrors.Wrap(err, clierrors.Runtime))
			}
			if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
				return fail(cmd, shared.ExitConfigError, clierrors.Wrap(err, clierrors.Runtime))
			}
			newPrinter(cmd).Success("Wrote %s", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")
	return cmd
}
