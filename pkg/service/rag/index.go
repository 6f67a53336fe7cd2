package rag

import (
	"context"
	"math"
	"slices"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/interfaces"
	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// Index is an in-memory vector index over the chunks of one document.
// It is built per request and never persisted.
type Index struct {
	encoder interfaces.Encoder
	chunks  []Chunk
	vectors [][]float32
}

// Build embeds chunks with encoder.
func Build(ctx context.Context, encoder interfaces.Encoder, chunks []Chunk) (*Index, error) {
	if len(chunks) == 0 {
		return nil, goerr.Wrap(ErrEmptyIndex, "cannot build index")
	}

	vectors, err := encoder.Embed(ctx, Texts(chunks))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to embed chunks",
			goerr.V("chunks", len(chunks)),
			goerr.V("encoder", encoder.ModelInfo()))
	}
	if len(vectors) != len(chunks) {
		return nil, goerr.Wrap(ErrDimensionMismatch, "encoder returned wrong number of vectors",
			goerr.V("chunks", len(chunks)),
			goerr.V("vectors", len(vectors)))
	}
	if dim := encoder.Dimension(); dim > 0 {
		for i, v := range vectors {
			if len(v) != dim {
				return nil, goerr.Wrap(ErrDimensionMismatch, "chunk vector has wrong dimension",
					goerr.V("index", i),
					goerr.V("expected", dim),
					goerr.V("actual", len(v)))
			}
		}
	}

	return &Index{
		encoder: encoder,
		chunks:  chunks,
		vectors: vectors,
	}, nil
}

// Len returns the number of indexed chunks.
func (x *Index) Len() int {
	return len(x.chunks)
}

// Query returns up to topK chunks ordered by descending cosine similarity.
// Equal scores keep document order.
func (x *Index) Query(ctx context.Context, query string, topK int) ([]model.RetrievedChunk, error) {
	qv, err := x.encoder.Embed(ctx, []string{query})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to embed query", goerr.V("query", query))
	}
	if len(qv) != 1 || len(qv[0]) != len(x.vectors[0]) {
		return nil, goerr.Wrap(ErrDimensionMismatch, "query vector does not match index")
	}

	results := make([]model.RetrievedChunk, len(x.chunks))
	for i, c := range x.chunks {
		results[i] = model.RetrievedChunk{
			Text:   c.Text,
			Offset: c.Offset,
			Score:  CosineSimilarity(qv[0], x.vectors[i]),
		}
	}

	slices.SortStableFunc(results, func(a, b model.RetrievedChunk) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})

	if topK > 0 && topK < len(results) {
		results = results[:topK]
	}
	return results, nil
}

// CosineSimilarity returns 0 for vectors of different length or zero norm.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
