package embedding

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
)

// GollemEncoder produces embeddings through a gollem LLM client such as Gemini.
type GollemEncoder struct {
	client gollem.LLMClient
	dim    int
	name   string
}

// NewGollemEncoder creates an encoder requesting dim-sized vectors from client.
func NewGollemEncoder(client gollem.LLMClient, dim int, name string) (*GollemEncoder, error) {
	if client == nil {
		return nil, goerr.New("LLM client is required")
	}
	if dim <= 0 {
		return nil, goerr.New("embedding dimension must be positive", goerr.V("dimension", dim))
	}
	return &GollemEncoder{client: client, dim: dim, name: name}, nil
}

func (e *GollemEncoder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	vectors, err := e.client.GenerateEmbedding(ctx, e.dim, texts)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate embedding", goerr.V("count", len(texts)))
	}
	if len(vectors) != len(texts) {
		return nil, goerr.New("embedding count mismatch",
			goerr.V("expected", len(texts)),
			goerr.V("actual", len(vectors)))
	}

	out := make([][]float32, len(vectors))
	for i, v64 := range vectors {
		v := make([]float32, len(v64))
		for j := range v64 {
			v[j] = float32(v64[j])
		}
		l2normalize(v)
		out[i] = v
	}
	return out, nil
}

func (e *GollemEncoder) Dimension() int {
	return e.dim
}

func (e *GollemEncoder) ModelInfo() string {
	return "gollem-" + e.name
}
