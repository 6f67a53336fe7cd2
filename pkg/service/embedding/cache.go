package embedding

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/m-mizutani/goerr/v2"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/interfaces"
)

// CachedEncoder memoizes vectors per text. Reports are re-chunked on every
// request, so the same chunks and the default query repeat across cases.
type CachedEncoder struct {
	base  interfaces.Encoder
	cache *lru.Cache[string, []float32]
}

var _ interfaces.Encoder = (*CachedEncoder)(nil)

// NewCachedEncoder wraps base with an LRU cache holding up to size vectors.
func NewCachedEncoder(base interfaces.Encoder, size int) (*CachedEncoder, error) {
	cache, err := lru.New[string, []float32](size)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create embedding cache", goerr.V("size", size))
	}
	return &CachedEncoder{base: base, cache: cache}, nil
}

func (e *CachedEncoder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	var missing []string
	var missingIdx []int
	for i, text := range texts {
		if v, ok := e.cache.Get(text); ok {
			out[i] = v
			continue
		}
		missing = append(missing, text)
		missingIdx = append(missingIdx, i)
	}
	if len(missing) == 0 {
		return out, nil
	}

	vectors, err := e.base.Embed(ctx, missing)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(missing) {
		return nil, goerr.New("embedding count mismatch",
			goerr.V("expected", len(missing)),
			goerr.V("actual", len(vectors)))
	}
	for j, v := range vectors {
		e.cache.Add(missing[j], v)
		out[missingIdx[j]] = v
	}
	return out, nil
}

func (e *CachedEncoder) Dimension() int {
	return e.base.Dimension()
}

func (e *CachedEncoder) ModelInfo() string {
	return e.base.ModelInfo()
}

// Len returns the number of cached vectors.
func (e *CachedEncoder) Len() int {
	return e.cache.Len()
}
