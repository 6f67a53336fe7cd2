package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/interfaces"
	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
	"github.com/NandhaKishorM/electron-app-heart/pkg/service/embedding"
	"github.com/NandhaKishorM/electron-app-heart/pkg/service/worker"
)

// Embedding providers
const (
	EmbeddingProviderHash   = "hash"
	EmbeddingProviderOpenAI = "openai"
	EmbeddingProviderGemini = "gemini"
)

// Embedding holds CLI flags for the sentence encoder used by retrieval
type Embedding struct {
	provider  string
	modelName string
	dimension int
	apiKey    string
	baseURL   string
	cacheSize int
}

// Flags returns CLI flags for the sentence encoder
func (e *Embedding) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "embedding-provider",
			Usage:       "Sentence encoder (hash, openai, gemini)",
			Value:       EmbeddingProviderHash,
			Category:    "Retrieval",
			Sources:     cli.EnvVars("ECGASSIST_EMBEDDING_PROVIDER"),
			Destination: &e.provider,
		},
		&cli.StringFlag{
			Name:        "embedding-model",
			Usage:       "Embedding model name (openai, gemini)",
			Category:    "Retrieval",
			Sources:     cli.EnvVars("ECGASSIST_EMBEDDING_MODEL"),
			Destination: &e.modelName,
		},
		&cli.IntFlag{
			Name:        "embedding-dimension",
			Usage:       "Embedding vector dimension",
			Value:       embedding.DefaultHashDimension,
			Category:    "Retrieval",
			Sources:     cli.EnvVars("ECGASSIST_EMBEDDING_DIMENSION"),
			Destination: &e.dimension,
		},
		&cli.StringFlag{
			Name:        "embedding-api-key",
			Usage:       "API key of the OpenAI compatible embedding endpoint",
			Category:    "Retrieval",
			Sources:     cli.EnvVars("ECGASSIST_EMBEDDING_API_KEY"),
			Destination: &e.apiKey,
		},
		&cli.StringFlag{
			Name:        "embedding-base-url",
			Usage:       "API root of the OpenAI compatible embedding endpoint, e.g. http://127.0.0.1:8081/v1",
			Category:    "Retrieval",
			Sources:     cli.EnvVars("ECGASSIST_EMBEDDING_BASE_URL"),
			Destination: &e.baseURL,
		},
		&cli.IntFlag{
			Name:        "embedding-cache-size",
			Usage:       "Number of embeddings kept in the LRU cache (0 disables the cache)",
			Value:       4096,
			Category:    "Retrieval",
			Sources:     cli.EnvVars("ECGASSIST_EMBEDDING_CACHE_SIZE"),
			Destination: &e.cacheSize,
		},
	}
}

// LogAttrs returns log attributes for the sentence encoder configuration
func (e *Embedding) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("provider", e.provider),
		slog.String("model", e.modelName),
		slog.Int("dimension", e.dimension),
		slog.String("base_url", e.baseURL),
		slog.Int("cache_size", e.cacheSize),
	}
}

// Configure validates the flags and returns the loader run by the retrieval
// worker on Init.
func (e *Embedding) Configure(gemini *Gemini) (worker.EncoderLoader, error) {
	if e.dimension <= 0 {
		return nil, goerr.Wrap(model.ErrConfig, "embedding-dimension must be positive",
			goerr.V(FlagKey, "embedding-dimension"),
			goerr.V("dimension", e.dimension))
	}

	var create worker.EncoderLoader
	switch e.provider {
	case "", EmbeddingProviderHash:
		create = func(ctx context.Context) (interfaces.Encoder, error) {
			return embedding.NewHashEncoder(e.dimension), nil
		}

	case EmbeddingProviderOpenAI:
		if e.modelName == "" {
			return nil, goerr.Wrap(model.ErrConfig, "embedding-model is required for openai provider", goerr.V(FlagKey, "embedding-model"))
		}
		create = func(ctx context.Context) (interfaces.Encoder, error) {
			var opts []embedding.OpenAIOption
			if e.baseURL != "" {
				opts = append(opts, embedding.WithBaseURL(e.baseURL))
			}
			enc, err := embedding.NewOpenAIEncoder(e.apiKey, e.modelName, e.dimension, opts...)
			if err != nil {
				return nil, err
			}
			return enc, nil
		}

	case EmbeddingProviderGemini:
		if !gemini.Enabled() {
			return nil, goerr.Wrap(model.ErrConfig, "gemini-project is required for gemini provider", goerr.V(FlagKey, "gemini-project"))
		}
		create = func(ctx context.Context) (interfaces.Encoder, error) {
			client, err := gemini.Configure(ctx)
			if err != nil {
				return nil, err
			}
			enc, err := embedding.NewGollemEncoder(client, e.dimension, e.modelName)
			if err != nil {
				return nil, err
			}
			return enc, nil
		}

	default:
		return nil, goerr.Wrap(model.ErrConfig, "invalid embedding-provider", goerr.V("provider", e.provider))
	}

	if e.cacheSize <= 0 {
		return create, nil
	}
	return func(ctx context.Context) (interfaces.Encoder, error) {
		enc, err := create(ctx)
		if err != nil {
			return nil, err
		}
		cached, err := embedding.NewCachedEncoder(enc, e.cacheSize)
		if err != nil {
			return nil, err
		}
		return cached, nil
	}, nil
}
