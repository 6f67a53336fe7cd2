package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/interfaces"
	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
	"github.com/NandhaKishorM/electron-app-heart/pkg/service/llama"
)

// Generation modes of the llama server client
const (
	LlamaModeChat       = "chat"
	LlamaModeCompletion = "completion"
)

// Llama holds CLI flags for the generation backend
type Llama struct {
	baseURL        string
	modelName      string
	apiKey         string
	mode           string
	timeout        time.Duration
	readyInterval  time.Duration
	readyTimeout   time.Duration
	skipReadyCheck bool
}

// Flags returns CLI flags for the generation backend
func (l *Llama) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "llama-url",
			Usage:       "Base URL of the running llama.cpp server",
			Value:       llama.DefaultBaseURL,
			Category:    "Generation",
			Sources:     cli.EnvVars("ECGASSIST_LLAMA_URL"),
			Destination: &l.baseURL,
		},
		&cli.StringFlag{
			Name:        "llama-model",
			Usage:       "Model name sent with chat requests",
			Value:       llama.DefaultModel,
			Category:    "Generation",
			Sources:     cli.EnvVars("ECGASSIST_LLAMA_MODEL"),
			Destination: &l.modelName,
		},
		&cli.StringFlag{
			Name:        "llama-api-key",
			Usage:       "API key of the llama.cpp server (--api-key)",
			Category:    "Generation",
			Sources:     cli.EnvVars("ECGASSIST_LLAMA_API_KEY"),
			Destination: &l.apiKey,
		},
		&cli.StringFlag{
			Name:        "llama-mode",
			Usage:       "Request API (chat: /v1/chat/completions, completion: /completion)",
			Value:       LlamaModeChat,
			Category:    "Generation",
			Sources:     cli.EnvVars("ECGASSIST_LLAMA_MODE"),
			Destination: &l.mode,
		},
		&cli.DurationFlag{
			Name:        "llama-timeout",
			Usage:       "Upper bound of one generation request",
			Value:       llama.DefaultTimeout,
			Category:    "Generation",
			Sources:     cli.EnvVars("ECGASSIST_LLAMA_TIMEOUT"),
			Destination: &l.timeout,
		},
		&cli.DurationFlag{
			Name:        "llama-ready-interval",
			Usage:       "Polling interval while waiting for the server to become ready",
			Value:       llama.DefaultReadyInterval,
			Category:    "Generation",
			Sources:     cli.EnvVars("ECGASSIST_LLAMA_READY_INTERVAL"),
			Destination: &l.readyInterval,
		},
		&cli.DurationFlag{
			Name:        "llama-ready-timeout",
			Usage:       "Upper bound of waiting for the server to become ready",
			Value:       llama.DefaultReadyTimeout,
			Category:    "Generation",
			Sources:     cli.EnvVars("ECGASSIST_LLAMA_READY_TIMEOUT"),
			Destination: &l.readyTimeout,
		},
		&cli.BoolFlag{
			Name:        "llama-skip-ready-check",
			Usage:       "Do not wait for the server health endpoint at startup",
			Category:    "Generation",
			Sources:     cli.EnvVars("ECGASSIST_LLAMA_SKIP_READY_CHECK"),
			Destination: &l.skipReadyCheck,
		},
	}
}

// LogAttrs returns log attributes for the generation backend configuration
func (l *Llama) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("url", l.baseURL),
		slog.String("model", l.modelName),
		slog.String("mode", l.mode),
		slog.Duration("timeout", l.timeout),
		slog.Bool("api_key_set", l.apiKey != ""),
	}
}

// ReadyInterval returns the health polling interval
func (l *Llama) ReadyInterval() time.Duration {
	return l.readyInterval
}

// ReadyTimeout returns the health polling bound
func (l *Llama) ReadyTimeout() time.Duration {
	return l.readyTimeout
}

// SkipReadyCheck reports whether startup should not wait for the server
func (l *Llama) SkipReadyCheck() bool {
	return l.skipReadyCheck
}

// Configure creates the llama server client and the generator for the
// configured mode.
func (l *Llama) Configure() (*llama.Client, interfaces.Generator, error) {
	if l.baseURL == "" {
		return nil, nil, goerr.Wrap(model.ErrConfig, "llama-url is required", goerr.V(FlagKey, "llama-url"))
	}
	if l.timeout <= 0 {
		return nil, nil, goerr.Wrap(model.ErrConfig, "llama-timeout must be positive", goerr.V(FlagKey, "llama-timeout"))
	}

	opts := []llama.Option{llama.WithTimeout(l.timeout)}
	if l.modelName != "" {
		opts = append(opts, llama.WithModel(l.modelName))
	}
	if l.apiKey != "" {
		opts = append(opts, llama.WithAPIKey(l.apiKey))
	}
	client := llama.New(l.baseURL, opts...)

	switch l.mode {
	case "", LlamaModeChat:
		return client, client, nil
	case LlamaModeCompletion:
		return client, llama.NewCompletionGenerator(client), nil
	default:
		return nil, nil, goerr.Wrap(model.ErrConfig, "invalid llama-mode", goerr.V("mode", l.mode))
	}
}
