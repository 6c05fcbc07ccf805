package generate

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/google/shlex"
)

const promptPlaceholder = "{{PROMPT}}"

// AgentConfig configures AgentGenerator.
type AgentConfig struct {
	// Command is a template such as `claude -p {{PROMPT}}`.
	Command string        `koanf:"command" yaml:"command"`
	Timeout time.Duration `koanf:"timeout" yaml:"timeout" validate:"gte=0"`
	WorkDir string        `koanf:"-" yaml:"-"`
}

// AgentGenerator runs a local CLI and uses its stdout as the document.
// The system prompt is prepended to the user prompt since most agent CLIs
// accept a single prompt argument.
type AgentGenerator struct {
	cfg AgentConfig
}

// NewAgentGenerator validates the command template.
func NewAgentGenerator(cfg AgentConfig) (*AgentGenerator, error) {
	if !strings.Contains(cfg.Command, promptPlaceholder) {
		return nil, fmt.Errorf("agent command must contain %s placeholder", promptPlaceholder)
	}
	parts, err := shlex.Split(strings.ReplaceAll(cfg.Command, promptPlaceholder, "test"))
	if err != nil {
		return nil, fmt.Errorf("agent: invalid command: %w", err)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("agent: command produces no executable")
	}
	return &AgentGenerator{cfg: cfg}, nil
}

// Name returns "agent".
func (a *AgentGenerator) Name() string {
	return KindAgent
}

// Generate runs the command with the combined prompt.
func (a *AgentGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	prompt := user
	if system != "" {
		prompt = system + "\n\n" + user
	}
	args, err := a.expand(prompt)
	if err != nil {
		return "", fmt.Errorf("expanding agent command: %w", err)
	}

	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	if a.cfg.WorkDir != "" {
		cmd.Dir = a.cfg.WorkDir
	}
	cmd.Env = os.Environ()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("executing agent: %w", ctx.Err())
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", fmt.Errorf("executing agent: %w", err)
		}
		return "", fmt.Errorf("executing agent: %w: %s", err, msg)
	}
	return stdout.String(), nil
}

func (a *AgentGenerator) expand(prompt string) ([]string, error) {
	args, err := shlex.Split(strings.ReplaceAll(a.cfg.Command, promptPlaceholder, quoteForShlex(prompt)))
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("command expansion produced no executable")
	}
	return args, nil
}

// quoteForShlex wraps s in single quotes, escaping embedded single quotes,
// so shlex keeps it as one argument.
func quoteForShlex(s string) string {
	if s == "" {
		return "''"
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
