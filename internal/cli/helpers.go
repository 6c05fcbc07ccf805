package cli

import (
	"github.com/spf13/cobra"

	"github.com/ndcmsl/workflows/internal/config"
	clierrors "github.com/ndcmsl/workflows/internal/errors"
	"github.com/ndcmsl/workflows/internal/output"
)

// loadConfig loads configuration honoring the --config flag.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, clierrors.ConfigLoadFailed(err)
	}
	return cfg, nil
}

// newPrinter returns a printer bound to the command's writers.
func newPrinter(cmd *cobra.Command) *output.Printer {
	debug, _ := cmd.Flags().GetBool("debug")
	return output.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), debug)
}
