package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// DefaultHashDimension is the vector size of HashEncoder when none is given.
const DefaultHashDimension = 384

// HashEncoder is a dependency-free bag-of-words encoder. Each lowercased
// token is hashed into a signed bucket and the vector is L2 normalized, so
// texts sharing terms score high under cosine similarity.
type HashEncoder struct {
	dim int
}

// NewHashEncoder creates a HashEncoder producing vectors of dimension dim.
func NewHashEncoder(dim int) *HashEncoder {
	if dim <= 0 {
		dim = DefaultHashDimension
	}
	return &HashEncoder{dim: dim}
}

func (e *HashEncoder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = e.embed(text)
	}
	return out, nil
}

func (e *HashEncoder) embed(text string) []float32 {
	vec := make([]float32, e.dim)
	for _, token := range tokenize(text) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(token))
		sum := h.Sum32()
		idx := int(sum % uint32(e.dim))
		if sum&(1<<31) != 0 {
			vec[idx]--
		} else {
			vec[idx]++
		}
	}
	l2normalize(vec)
	return vec
}

func (e *HashEncoder) Dimension() int {
	return e.dim
}

func (e *HashEncoder) ModelInfo() string {
	return "hash-bow-" + strconv.Itoa(e.dim)
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// l2normalize normalizes a vector to unit length
func l2normalize(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	inv := float32(1.0 / math.Sqrt(sum))
	for i := range v {
		v[i] *= inv
	}
}
