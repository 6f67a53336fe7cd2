package embedding

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIEncoder calls an OpenAI compatible /embeddings endpoint. llama.cpp
// servers started with --embedding expose the same API.
type OpenAIEncoder struct {
	client *openai.Client
	model  string
	dim    int
}

// OpenAIOption is a functional option for OpenAIEncoder
type OpenAIOption func(*openai.ClientConfig)

// WithBaseURL points the encoder at a non-default API root, e.g. http://127.0.0.1:8080/v1.
func WithBaseURL(url string) OpenAIOption {
	return func(cfg *openai.ClientConfig) {
		cfg.BaseURL = url
	}
}

// NewOpenAIEncoder creates an encoder for model returning dim-sized vectors.
func NewOpenAIEncoder(apiKey, model string, dim int, opts ...OpenAIOption) (*OpenAIEncoder, error) {
	if model == "" {
		return nil, goerr.New("embedding model is required")
	}
	if dim <= 0 {
		return nil, goerr.New("embedding dimension must be positive", goerr.V("dimension", dim))
	}

	cfg := openai.DefaultConfig(apiKey)
	for _, opt := range opts {
		opt(&cfg)
	}

	return &OpenAIEncoder{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		dim:    dim,
	}, nil
}

func (e *OpenAIEncoder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(e.model),
		Input: texts,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create embeddings", goerr.V("model", e.model))
	}
	if len(resp.Data) != len(texts) {
		return nil, goerr.New("embedding count mismatch",
			goerr.V("expected", len(texts)),
			goerr.V("actual", len(resp.Data)))
	}

	out := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(out) {
			return nil, goerr.New("embedding index out of range", goerr.V("index", d.Index))
		}
		v := make([]float32, len(d.Embedding))
		copy(v, d.Embedding)
		l2normalize(v)
		out[d.Index] = v
	}
	return out, nil
}

func (e *OpenAIEncoder) Dimension() int {
	return e.dim
}

func (e *OpenAIEncoder) ModelInfo() string {
	return "openai-" + e.model
}
