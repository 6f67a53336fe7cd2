package vision

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/interfaces"
	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
	"github.com/NandhaKishorM/electron-app-heart/pkg/utils/logging"
)

// Analyzer turns vision model outputs into a heatmap overlay and a textual description.
type Analyzer struct {
	store interfaces.HeatmapStore
	now   func() time.Time
}

// AnalyzerOption is a functional option for Analyzer
type AnalyzerOption func(*Analyzer)

// WithClock overrides the time source used for heatmap names.
func WithClock(now func() time.Time) AnalyzerOption {
	return func(a *Analyzer) {
		a.now = now
	}
}

// NewAnalyzer creates an Analyzer persisting heatmaps to store.
func NewAnalyzer(store interfaces.HeatmapStore, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// HeatmapName returns a collision-resistant file name for a heatmap rendered at t.
func HeatmapName(t time.Time) string {
	return fmt.Sprintf("heatmap_%d_%s.png", t.UnixMilli(), uuid.NewString()[:8])
}

// Analyze renders the heatmap for imagePath and describes outputs. When no
// attention tensor is present, HeatmapPath is imagePath itself. Failures
// wrap model.ErrVisionAnalysis.
func (a *Analyzer) Analyze(ctx context.Context, imagePath string, outputs model.ModelOutputs) (*model.VisionResult, error) {
	roles := IdentifyTensors(outputs)
	result := &model.VisionResult{
		HeatmapPath: imagePath,
		Description: Describe(roles),
	}

	if roles.Attention == nil {
		logging.From(ctx).Info("no attention output, skipping heatmap", "path", imagePath)
		return result, nil
	}
	grid := model.NewAttentionGrid(roles.Attention.Data)
	if grid.IsEmpty() {
		logging.From(ctx).Info("empty attention output, skipping heatmap", "path", imagePath)
		return result, nil
	}

	src, err := LoadImage(imagePath)
	if err != nil {
		return nil, err
	}
	data, err := EncodePNG(RenderOverlay(src, grid))
	if err != nil {
		return nil, analysisError(err, "failed to render heatmap", goerr.V("path", imagePath))
	}

	if a.store == nil {
		return nil, goerr.Wrap(model.ErrVisionAnalysis, "heatmap store is not configured")
	}
	path, err := a.store.Save(ctx, HeatmapName(a.now()), data)
	if err != nil {
		return nil, analysisError(err, "failed to save heatmap", goerr.V("path", imagePath))
	}
	result.HeatmapPath = path

	logging.From(ctx).Info("heatmap generated",
		"source", imagePath,
		"heatmap", path,
		"grid_size", grid.Size)
	return result, nil
}
