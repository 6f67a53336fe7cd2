// Package heatmap persists rendered heatmap overlays.
package heatmap

import (
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/interfaces"
)

// FileStore writes heatmaps into a local directory.
type FileStore struct {
	dir string
}

var _ interfaces.HeatmapStore = (*FileStore)(nil)

// NewFileStore creates dir if needed and returns a store writing into it.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, goerr.New("heatmap directory is not set")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve heatmap directory", goerr.V("dir", dir))
	}
	if err := os.MkdirAll(abs, 0o750); err != nil {
		return nil, goerr.Wrap(err, "failed to create heatmap directory", goerr.V("dir", abs))
	}
	return &FileStore{dir: abs}, nil
}

// Dir returns the absolute output directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Save writes data as name and returns the absolute file path. Existing
// files are never overwritten.
func (s *FileStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	if name == "" || filepath.Base(name) != name {
		return "", goerr.New("invalid heatmap name", goerr.V("name", name))
	}
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create heatmap file", goerr.V("path", path))
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return "", goerr.Wrap(err, "failed to write heatmap file", goerr.V("path", path))
	}
	if err := f.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to close heatmap file", goerr.V("path", path))
	}
	return path, nil
}
