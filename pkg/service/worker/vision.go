package worker

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/interfaces"
	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
	"github.com/NandhaKishorM/electron-app-heart/pkg/service/vision"
)

// VisionLoader loads the vision model. It runs on the worker goroutine.
type VisionLoader func(ctx context.Context) (interfaces.VisionModel, error)

// Vision runs ECG image analysis on a dedicated worker. The model is
// loaded once by Init and reused for every request.
type Vision struct {
	lifecycle
	load     VisionLoader
	analyzer *vision.Analyzer

	// owned by the worker goroutine
	model interfaces.VisionModel
}

var _ interfaces.VisionWorker = (*Vision)(nil)

// NewVision creates a vision worker. Nothing is loaded until Init.
func NewVision(load VisionLoader, analyzer *vision.Analyzer, opts ...Option) *Vision {
	v := &Vision{
		load:     load,
		analyzer: analyzer,
	}
	v.lifecycle = lifecycle{name: "vision", cfg: newConfig(opts)}
	v.rt = NewRuntime("vision", v.handle)
	return v
}

// Init loads the vision model. Calling it again after success is a no-op.
func (v *Vision) Init(ctx context.Context) error {
	return v.init(ctx)
}

// Analyze preprocesses the image at imagePath, runs the model and renders
// its heatmap and description. The worker is initialized on first use.
func (v *Vision) Analyze(ctx context.Context, imagePath string) (*model.VisionResult, error) {
	if err := v.Init(ctx); err != nil {
		return nil, err
	}

	resp, err := v.rt.Call(ctx, OpAnalyze, imagePath)
	if err != nil {
		return nil, err
	}
	result, ok := resp.(*model.VisionResult)
	if !ok {
		return nil, goerr.Wrap(model.ErrVisionAnalysis, "unexpected worker response", goerr.V("type", resp))
	}
	return result, nil
}

// Close stops the worker and releases the model.
func (v *Vision) Close() error {
	v.rt.Stop()
	if v.model == nil {
		return nil
	}
	if err := v.model.Close(); err != nil {
		return goerr.Wrap(err, "failed to close vision model")
	}
	return nil
}

func (v *Vision) handle(ctx context.Context, op string, payload any) (any, error) {
	switch op {
	case OpInit:
		if v.model != nil {
			return nil, nil
		}
		m, err := v.load(ctx)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to load vision model")
		}
		v.model = m
		return nil, nil

	case OpAnalyze:
		path, ok := payload.(string)
		if !ok {
			return nil, goerr.Wrap(ErrUnknownOp, "analyze expects an image path", goerr.V("payload", payload))
		}
		if v.model == nil {
			return nil, goerr.Wrap(model.ErrWorkerInit, "vision model is not loaded")
		}

		input, err := vision.PreprocessFile(path)
		if err != nil {
			return nil, err
		}
		outputs, err := v.model.Run(ctx, input)
		if err != nil {
			return nil, goerr.Wrap(model.ErrVisionAnalysis, "inference failed: "+err.Error(),
				goerr.V(model.ECGPathKey, path))
		}
		return v.analyzer.Analyze(ctx, path, outputs)

	default:
		return nil, goerr.Wrap(ErrUnknownOp, "vision worker", goerr.V("op", op))
	}
}
