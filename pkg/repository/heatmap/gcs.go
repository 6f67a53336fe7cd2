package heatmap

import (
	"context"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/interfaces"
	"github.com/NandhaKishorM/electron-app-heart/pkg/utils/async"
	"github.com/NandhaKishorM/electron-app-heart/pkg/utils/logging"
)

// GCSStore uploads heatmaps to a Cloud Storage bucket.
type GCSStore struct {
	client *storage.Client
	bucket string
	prefix string
}

var _ interfaces.HeatmapStore = (*GCSStore)(nil)

// NewGCSStore creates a store writing to gs://bucket/prefix.
func NewGCSStore(ctx context.Context, bucket, prefix string) (*GCSStore, error) {
	if bucket == "" {
		return nil, goerr.New("bucket is required")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}
	return &GCSStore{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}, nil
}

func (s *GCSStore) objectName(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}

// Save uploads data and returns its gs:// URL.
func (s *GCSStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	object := s.objectName(name)
	w := s.client.Bucket(s.bucket).Object(object).NewWriter(ctx)
	w.ContentType = "image/png"

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", goerr.Wrap(err, "failed to upload heatmap",
			goerr.V("bucket", s.bucket),
			goerr.V("object", object))
	}
	if err := w.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to finalize heatmap upload",
			goerr.V("bucket", s.bucket),
			goerr.V("object", object))
	}
	return "gs://" + s.bucket + "/" + object, nil
}

// Close releases the storage client.
func (s *GCSStore) Close() error {
	return s.client.Close()
}

// MirrorStore saves to primary and copies every heatmap to secondary in
// the background. The primary location is returned; mirror failures are
// only logged.
type MirrorStore struct {
	primary   interfaces.HeatmapStore
	secondary interfaces.HeatmapStore
}

var _ interfaces.HeatmapStore = (*MirrorStore)(nil)

// NewMirrorStore creates a mirroring store.
func NewMirrorStore(primary, secondary interfaces.HeatmapStore) *MirrorStore {
	return &MirrorStore{primary: primary, secondary: secondary}
}

func (s *MirrorStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	path, err := s.primary.Save(ctx, name, data)
	if err != nil {
		return "", err
	}

	async.Dispatch(ctx, func(ctx context.Context) error {
		location, err := s.secondary.Save(ctx, name, data)
		if err != nil {
			return goerr.Wrap(err, "failed to mirror heatmap", goerr.V("name", name))
		}
		logging.From(ctx).Debug("heatmap mirrored", "name", name, "location", location)
		return nil
	})
	return path, nil
}
