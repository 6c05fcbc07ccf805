// Package generate turns a prompt into a release document using either the
// OpenAI chat completions API or a local agent CLI.
package generate

import (
	"context"
	"errors"
	"fmt"
)

// Generator produces document text from a system and a user prompt.
type Generator interface {
	Name() string
	Generate(ctx context.Context, system, user string) (string, error)
}

// ErrUnknownGenerator is returned by New for an unsupported kind.
var ErrUnknownGenerator = errors.New("unknown generator")

// Kinds accepted by New.
const (
	KindOpenAI = "openai"
	KindAgent  = "agent"
)

// Options selects and configures a generator.
type Options struct {
	Kind   string
	OpenAI OpenAIConfig
	Agent  AgentConfig
}

// New builds the generator named by opts.Kind.
func New(opts Options) (Generator, error) {
	switch opts.Kind {
	case KindOpenAI, "":
		return NewOpenAIGeneratorFromEnv(opts.OpenAI)
	case KindAgent:
		return NewAgentGenerator(opts.Agent)
	default:
		return nil, fmt.Errorf("%w: %q (expected %s or %s)", ErrUnknownGenerator, opts.Kind, KindOpenAI, KindAgent)
	}
}
