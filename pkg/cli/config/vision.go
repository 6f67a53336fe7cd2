package config

import (
	"context"
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/interfaces"
	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
	"github.com/NandhaKishorM/electron-app-heart/pkg/repository/heatmap"
	"github.com/NandhaKishorM/electron-app-heart/pkg/service/onnx"
	"github.com/NandhaKishorM/electron-app-heart/pkg/service/worker"
	"github.com/NandhaKishorM/electron-app-heart/pkg/utils/logging"
)

// Vision holds CLI flags for the vision encoder and heatmap output
type Vision struct {
	modelPath   string
	libraryPath string
	heatmapDir  string
	gcsBucket   string
	gcsPrefix   string
}

// Flags returns CLI flags for the vision encoder and heatmap output
func (v *Vision) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "vision-model",
			Usage:       "Path to the ONNX vision encoder",
			Category:    "Vision",
			Sources:     cli.EnvVars("ECGASSIST_VISION_MODEL"),
			Destination: &v.modelPath,
		},
		&cli.StringFlag{
			Name:        "onnxruntime-library",
			Usage:       "Path to the onnxruntime shared library",
			Category:    "Vision",
			Sources:     cli.EnvVars("ECGASSIST_ONNXRUNTIME_LIBRARY"),
			Destination: &v.libraryPath,
		},
		&cli.StringFlag{
			Name:        "heatmap-dir",
			Usage:       "Directory heatmap overlays are written to",
			Value:       "heatmaps",
			Category:    "Vision",
			Sources:     cli.EnvVars("ECGASSIST_HEATMAP_DIR"),
			Destination: &v.heatmapDir,
		},
		&cli.StringFlag{
			Name:        "heatmap-gcs-bucket",
			Usage:       "Cloud Storage bucket heatmaps are mirrored to",
			Category:    "Vision",
			Sources:     cli.EnvVars("ECGASSIST_HEATMAP_GCS_BUCKET"),
			Destination: &v.gcsBucket,
		},
		&cli.StringFlag{
			Name:        "heatmap-gcs-prefix",
			Usage:       "Object name prefix in the heatmap bucket",
			Category:    "Vision",
			Sources:     cli.EnvVars("ECGASSIST_HEATMAP_GCS_PREFIX"),
			Destination: &v.gcsPrefix,
		},
	}
}

// LogAttrs returns log attributes for the vision configuration
func (v *Vision) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("model", v.modelPath),
		slog.String("library", v.libraryPath),
		slog.String("heatmap_dir", v.heatmapDir),
		slog.String("gcs_bucket", v.gcsBucket),
	}
}

// Configure validates the model path, prepares the heatmap store and
// returns the loader run by the vision worker on Init. The returned
// function releases the store.
func (v *Vision) Configure(ctx context.Context) (worker.VisionLoader, interfaces.HeatmapStore, func(), error) {
	if v.modelPath == "" {
		return nil, nil, nil, goerr.Wrap(model.ErrConfig, "vision-model is required", goerr.V(FlagKey, "vision-model"))
	}
	if _, err := os.Stat(v.modelPath); err != nil {
		return nil, nil, nil, goerr.Wrap(model.ErrConfig, "vision model is not readable: "+err.Error(), goerr.V("path", v.modelPath))
	}

	files, err := heatmap.NewFileStore(v.heatmapDir)
	if err != nil {
		return nil, nil, nil, goerr.Wrap(err, "failed to prepare heatmap directory")
	}

	var store interfaces.HeatmapStore = files
	closer := func() {}
	if v.gcsBucket != "" {
		gcs, err := heatmap.NewGCSStore(ctx, v.gcsBucket, v.gcsPrefix)
		if err != nil {
			return nil, nil, nil, goerr.Wrap(err, "failed to create heatmap bucket client")
		}
		store = heatmap.NewMirrorStore(files, gcs)
		closer = func() {
			if err := gcs.Close(); err != nil {
				logging.Default().Warn("failed to close heatmap bucket client", "error", err.Error())
			}
		}
	}

	load := func(ctx context.Context) (interfaces.VisionModel, error) {
		m, err := onnx.Load(ctx, v.libraryPath, v.modelPath)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
	return load, store, closer, nil
}
