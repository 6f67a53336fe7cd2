package worker_test

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
)

type mockVisionModel struct {
	runFn  func(ctx context.Context, input model.Tensor) (model.ModelOutputs, error)
	closed atomic.Bool
}

func (m *mockVisionModel) Run(ctx context.Context, input model.Tensor) (model.ModelOutputs, error) {
	if m.runFn != nil {
		return m.runFn(ctx, input)
	}
	att := make([]float32, 16)
	for i := range att {
		att[i] = float32(i)
	}
	return model.ModelOutputs{
		{Name: "last_hidden_state", Dims: []int64{1, 16, 2}, Data: make([]float32, 32)},
		{Name: "attention", Dims: []int64{1, 16}, Data: att},
	}, nil
}

func (m *mockVisionModel) Close() error {
	m.closed.Store(true)
	return nil
}

type mockStore struct{}

func (mockStore) Save(_ context.Context, name string, _ []byte) (string, error) {
	return "/heatmaps/" + name, nil
}

type mockEncoder struct {
	embedFn func(ctx context.Context, texts []string) ([][]float32, error)
	calls   atomic.Int32
}

func (e *mockEncoder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	e.calls.Add(1)
	return e.embedFn(ctx, texts)
}

func (e *mockEncoder) Dimension() int    { return 2 }
func (e *mockEncoder) ModelInfo() string { return "mock" }

func writeImage(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	img.Set(3, 3, color.Black)

	path := filepath.Join(t.TempDir(), "ecg.png")
	f, err := os.Create(path)
	gt.NoError(t, err).Required()
	defer f.Close()
	gt.NoError(t, png.Encode(f, img)).Required()
	return path
}
