package vision_test

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
)

// writeTestImage writes a solid gray PNG and returns its path.
func writeTestImage(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 200, B: 200, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "ecg.png")
	f, err := os.Create(path)
	gt.NoError(t, err).Required()
	defer f.Close()
	gt.NoError(t, png.Encode(f, img)).Required()
	return path
}

type mockStore struct {
	saveFn func(ctx context.Context, name string, data []byte) (string, error)
	names  []string
	data   [][]byte
}

func (s *mockStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	s.names = append(s.names, name)
	s.data = append(s.data, data)
	if s.saveFn != nil {
		return s.saveFn(ctx, name, data)
	}
	return "/heatmaps/" + name, nil
}
