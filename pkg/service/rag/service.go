package rag

import (
	"context"
	"strings"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/interfaces"
	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
	"github.com/NandhaKishorM/electron-app-heart/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

const (
	// DefaultQuery targets the lab panels that must surface even without a user question.
	DefaultQuery = "complete blood count cbc hemoglobin thyroid tsh cardiac biomarkers bnp troponin electrolytes potassium magnesium kidney creatinine abnormal high low"

	Separator       = "\n\n---\n\n"
	TruncatedMarker = "...(truncated)"
	DegradedMarker  = "\n...(RAG Failed)..."

	DefaultTopK      = 4
	DefaultMaxChars  = 1000
	DefaultChunkSize = 500
	DefaultOverlap   = 50
)

// Service returns the parts of a report most relevant to a query.
type Service struct {
	encoder   interfaces.Encoder
	topK      int
	maxChars  int
	chunkSize int
	overlap   int
}

// Option is a functional option for Service
type Option func(*Service)

func WithTopK(k int) Option {
	return func(s *Service) {
		s.topK = k
	}
}

func WithMaxChars(n int) Option {
	return func(s *Service) {
		s.maxChars = n
	}
}

func WithChunking(size, overlap int) Option {
	return func(s *Service) {
		s.chunkSize = size
		s.overlap = overlap
	}
}

// New creates a retrieval service backed by encoder.
func New(encoder interfaces.Encoder, opts ...Option) *Service {
	s := &Service{
		encoder:   encoder,
		topK:      DefaultTopK,
		maxChars:  DefaultMaxChars,
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Encoder returns the encoder used to build indexes.
func (s *Service) Encoder() interfaces.Encoder {
	return s.encoder
}

// Search chunks fullText, indexes it and ranks the chunks against query.
// An empty query is replaced by DefaultQuery.
func (s *Service) Search(ctx context.Context, fullText, query string) ([]model.RetrievedChunk, error) {
	if s.encoder == nil {
		return nil, goerr.New("encoder is not configured")
	}
	if strings.TrimSpace(query) == "" {
		query = DefaultQuery
	}

	chunks, err := Split(fullText, s.chunkSize, s.overlap)
	if err != nil {
		return nil, err
	}

	index, err := Build(ctx, s.encoder, chunks)
	if err != nil {
		return nil, err
	}
	return index.Query(ctx, query, s.topK)
}

// Retrieve returns the top ranked chunks joined by Separator and capped at
// maxChars runes. It never fails: on any error the head of fullText is
// returned with DegradedMarker. Blank text yields an empty string.
func (s *Service) Retrieve(ctx context.Context, fullText, query string) string {
	if strings.TrimSpace(fullText) == "" {
		return ""
	}

	hits, err := s.Search(ctx, fullText, query)
	if err != nil {
		logging.From(ctx).Warn("retrieval degraded to raw text",
			"error", goerr.Wrap(model.ErrRetrieval, err.Error()),
			"text_length", len(fullText))
		head, _ := truncate(fullText, s.maxChars)
		return head + DegradedMarker
	}

	texts := make([]string, len(hits))
	for i, h := range hits {
		texts[i] = h.Text
	}
	joined := strings.Join(texts, Separator)
	if head, cut := truncate(joined, s.maxChars); cut {
		joined = head + TruncatedMarker
	}

	logging.From(ctx).Debug("retrieval completed",
		"chunks", len(hits),
		"context_length", len(joined))
	return joined
}

// truncate returns the first n runes of s and whether anything was dropped.
func truncate(s string, n int) (string, bool) {
	runes := []rune(s)
	if len(runes) <= n {
		return s, false
	}
	return string(runes[:n]), true
}
