package interfaces

import (
	"context"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
)

// Encoder turns texts into fixed-dimension vectors.
type Encoder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int
	ModelInfo() string
}

// VisionModel runs the vision encoder on a preprocessed image tensor.
type VisionModel interface {
	Run(ctx context.Context, input model.Tensor) (model.ModelOutputs, error)
	Close() error
}

// VisionWorker analyzes ECG images on a long-lived background worker.
type VisionWorker interface {
	Init(ctx context.Context) error
	Analyze(ctx context.Context, imagePath string) (*model.VisionResult, error)
}

// RetrievalWorker ranks report text against a query on a long-lived background worker.
type RetrievalWorker interface {
	Init(ctx context.Context) error
	Retrieve(ctx context.Context, text, query string) (string, error)
}

// DocumentExtractor returns the plain text of a report document in reading order.
type DocumentExtractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// HeatmapStore persists a rendered heatmap and returns its location.
type HeatmapStore interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
}
