package config

import (
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/edu-lab/mentor/pkg/service/llm"
	"github.com/edu-lab/mentor/pkg/service/window"
	"github.com/edu-lab/mentor/pkg/usecase"
)

// Tutor holds CLI flags tuning the context assembly pipeline
type Tutor struct {
	retrieveLimit   int
	windowCapacity  int
	maxContextLen   int
	embedTimeout    time.Duration
	generateTimeout time.Duration
}

// Flags returns CLI flags for tutor configuration
func (t *Tutor) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "retrieve-limit",
			Usage:       "Number of long-term records retrieved per exchange",
			Value:       usecase.DefaultRetrieveLimit,
			Sources:     cli.EnvVars("MENTOR_RETRIEVE_LIMIT"),
			Destination: &t.retrieveLimit,
		},
		&cli.IntFlag{
			Name:        "window-capacity",
			Usage:       "Recent turns kept per conversation",
			Value:       window.DefaultCapacity,
			Sources:     cli.EnvVars("MENTOR_WINDOW_CAPACITY"),
			Destination: &t.windowCapacity,
		},
		&cli.IntFlag{
			Name:        "max-context-len",
			Usage:       "Maximum rendered context length in bytes",
			Value:       usecase.DefaultMaxContextLen,
			Sources:     cli.EnvVars("MENTOR_MAX_CONTEXT_LEN"),
			Destination: &t.maxContextLen,
		},
		&cli.DurationFlag{
			Name:        "embed-timeout",
			Usage:       "Timeout for embedding calls",
			Value:       llm.DefaultEmbedTimeout,
			Sources:     cli.EnvVars("MENTOR_EMBED_TIMEOUT"),
			Destination: &t.embedTimeout,
		},
		&cli.DurationFlag{
			Name:        "generate-timeout",
			Usage:       "Timeout for generation calls",
			Value:       llm.DefaultGenerateTimeout,
			Sources:     cli.EnvVars("MENTOR_GENERATE_TIMEOUT"),
			Destination: &t.generateTimeout,
		},
	}
}

// LogValue renders the configuration for the startup log
func (t *Tutor) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("retrieve_limit", t.retrieveLimit),
		slog.Int("window_capacity", t.windowCapacity),
		slog.Int("max_context_len", t.maxContextLen),
		slog.Duration("embed_timeout", t.embedTimeout),
		slog.Duration("generate_timeout", t.generateTimeout),
	)
}

// UseCaseOptions returns the usecase options derived from the flags
func (t *Tutor) UseCaseOptions() []usecase.Option {
	return []usecase.Option{
		usecase.WithRetrieveLimit(t.retrieveLimit),
		usecase.WithWindowCapacity(t.windowCapacity),
		usecase.WithMaxContextLen(t.maxContextLen),
	}
}

// LLMOptions returns the llm client options derived from the flags
func (t *Tutor) LLMOptions() []llm.Option {
	return []llm.Option{
		llm.WithEmbedTimeout(t.embedTimeout),
		llm.WithGenerateTimeout(t.generateTimeout),
	}
}
