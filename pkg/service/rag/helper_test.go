package rag_test

import (
	"context"
	"errors"
	"strings"
)

var vocabulary = []string{
	"troponin", "potassium", "hemoglobin", "tsh", "creatinine", "cholesterol", "patient", "address",
}

// keywordEncoder counts vocabulary hits so rankings are predictable.
type keywordEncoder struct {
	err       error
	dimension int
	calls     int
}

func (e *keywordEncoder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		lower := strings.ToLower(text)
		v := make([]float32, len(vocabulary))
		for j, w := range vocabulary {
			v[j] = float32(strings.Count(lower, w))
		}
		out[i] = v
	}
	return out, nil
}

func (e *keywordEncoder) Dimension() int {
	if e.dimension != 0 {
		return e.dimension
	}
	return len(vocabulary)
}

func (e *keywordEncoder) ModelInfo() string { return "keyword-test" }

var errEncoderDown = errors.New("encoder unavailable")
