package rag

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrInvalidConfig is returned for a chunk size or overlap that cannot make progress.
	ErrInvalidConfig = goerr.New("invalid chunker configuration")
	// ErrEmptyIndex is returned when an index is built from no chunks.
	ErrEmptyIndex = goerr.New("no chunks to index")
	// ErrDimensionMismatch is returned when the encoder output does not match its declared dimension.
	ErrDimensionMismatch = goerr.New("embedding dimension mismatch")
)
