package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
	"github.com/NandhaKishorM/electron-app-heart/pkg/service/rag"
	"github.com/NandhaKishorM/electron-app-heart/pkg/service/worker"
)

// Worker holds CLI flags for the background workers and retrieval tuning
type Worker struct {
	readyInterval time.Duration
	readyTimeout  time.Duration
	topK          int
	maxChars      int
	chunkSize     int
	chunkOverlap  int
}

// Flags returns CLI flags for the background workers
func (w *Worker) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:        "worker-ready-interval",
			Usage:       "Polling interval while a worker initializes",
			Value:       worker.DefaultReadyInterval,
			Category:    "Worker",
			Sources:     cli.EnvVars("ECGASSIST_WORKER_READY_INTERVAL"),
			Destination: &w.readyInterval,
		},
		&cli.DurationFlag{
			Name:        "worker-ready-timeout",
			Usage:       "Upper bound of worker initialization",
			Value:       worker.DefaultReadyTimeout,
			Category:    "Worker",
			Sources:     cli.EnvVars("ECGASSIST_WORKER_READY_TIMEOUT"),
			Destination: &w.readyTimeout,
		},
		&cli.IntFlag{
			Name:        "retrieval-top-k",
			Usage:       "Number of report chunks passed to the model",
			Value:       rag.DefaultTopK,
			Category:    "Retrieval",
			Sources:     cli.EnvVars("ECGASSIST_RETRIEVAL_TOP_K"),
			Destination: &w.topK,
		},
		&cli.IntFlag{
			Name:        "retrieval-max-chars",
			Usage:       "Maximum characters of report context",
			Value:       rag.DefaultMaxChars,
			Category:    "Retrieval",
			Sources:     cli.EnvVars("ECGASSIST_RETRIEVAL_MAX_CHARS"),
			Destination: &w.maxChars,
		},
		&cli.IntFlag{
			Name:        "retrieval-chunk-size",
			Usage:       "Chunk size in characters",
			Value:       rag.DefaultChunkSize,
			Category:    "Retrieval",
			Sources:     cli.EnvVars("ECGASSIST_RETRIEVAL_CHUNK_SIZE"),
			Destination: &w.chunkSize,
		},
		&cli.IntFlag{
			Name:        "retrieval-chunk-overlap",
			Usage:       "Overlap between consecutive chunks in characters",
			Value:       rag.DefaultOverlap,
			Category:    "Retrieval",
			Sources:     cli.EnvVars("ECGASSIST_RETRIEVAL_CHUNK_OVERLAP"),
			Destination: &w.chunkOverlap,
		},
	}
}

// LogAttrs returns log attributes for the worker configuration
func (w *Worker) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.Duration("ready_interval", w.readyInterval),
		slog.Duration("ready_timeout", w.readyTimeout),
		slog.Int("top_k", w.topK),
		slog.Int("max_chars", w.maxChars),
		slog.Int("chunk_size", w.chunkSize),
		slog.Int("chunk_overlap", w.chunkOverlap),
	}
}

// Configure validates the flags and returns the options shared by both workers.
func (w *Worker) Configure() ([]worker.Option, error) {
	if w.readyInterval <= 0 || w.readyTimeout <= 0 {
		return nil, goerr.Wrap(model.ErrConfig, "worker readiness interval and timeout must be positive",
			goerr.V("interval", w.readyInterval),
			goerr.V("timeout", w.readyTimeout))
	}
	if w.topK <= 0 || w.maxChars <= 0 {
		return nil, goerr.Wrap(model.ErrConfig, "retrieval-top-k and retrieval-max-chars must be positive",
			goerr.V("top_k", w.topK),
			goerr.V("max_chars", w.maxChars))
	}
	if w.chunkSize <= 0 || w.chunkOverlap < 0 || w.chunkOverlap >= w.chunkSize {
		return nil, goerr.Wrap(model.ErrConfig, "retrieval-chunk-overlap must be smaller than retrieval-chunk-size",
			goerr.V("chunk_size", w.chunkSize),
			goerr.V("chunk_overlap", w.chunkOverlap))
	}

	return []worker.Option{
		worker.WithReadiness(w.readyInterval, w.readyTimeout),
		worker.WithRAGOptions(
			rag.WithTopK(w.topK),
			rag.WithMaxChars(w.maxChars),
			rag.WithChunking(w.chunkSize, w.chunkOverlap),
		),
	}, nil
}
