// Package onnx runs the vision encoder with ONNX Runtime.
package onnx

import (
	"context"
	"os"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	ort "github.com/yalue/onnxruntime_go"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/interfaces"
	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
	"github.com/NandhaKishorM/electron-app-heart/pkg/utils/logging"
)

var envMu sync.Mutex

// initEnvironment loads the shared library once per process.
func initEnvironment(libraryPath string) error {
	envMu.Lock()
	defer envMu.Unlock()
	if ort.IsInitialized() {
		return nil
	}
	if libraryPath != "" {
		ort.SetSharedLibraryPath(libraryPath)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return goerr.Wrap(err, "failed to initialize onnxruntime", goerr.V("library", libraryPath))
	}
	return nil
}

// Model is an ONNX vision encoder session with a single image input.
type Model struct {
	path        string
	inputName   string
	outputNames []string

	mu      sync.Mutex
	session *ort.DynamicAdvancedSession
}

var _ interfaces.VisionModel = (*Model)(nil)

// Load opens modelPath with the onnxruntime shared library at libraryPath.
// The first declared input receives the image tensor; every declared
// output is returned by Run in declaration order.
func Load(ctx context.Context, libraryPath, modelPath string) (*Model, error) {
	if modelPath == "" {
		return nil, goerr.Wrap(model.ErrConfig, "vision model path is not set")
	}
	if _, err := os.Stat(modelPath); err != nil {
		return nil, goerr.Wrap(model.ErrConfig, "vision model not found: "+err.Error(), goerr.V("path", modelPath))
	}
	if err := initEnvironment(libraryPath); err != nil {
		return nil, err
	}

	inputs, outputs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read model signature", goerr.V("path", modelPath))
	}
	if len(inputs) == 0 || len(outputs) == 0 {
		return nil, goerr.New("model has no inputs or outputs",
			goerr.V("path", modelPath),
			goerr.V("inputs", len(inputs)),
			goerr.V("outputs", len(outputs)))
	}

	outputNames := make([]string, len(outputs))
	for i, o := range outputs {
		outputNames[i] = o.Name
	}

	session, err := ort.NewDynamicAdvancedSession(modelPath, []string{inputs[0].Name}, outputNames, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create session", goerr.V("path", modelPath))
	}

	logging.From(ctx).Info("vision model loaded",
		"path", modelPath,
		"input", inputs[0].Name,
		"outputs", outputNames)

	return &Model{
		path:        modelPath,
		inputName:   inputs[0].Name,
		outputNames: outputNames,
		session:     session,
	}, nil
}

// Run executes the model. Non-float32 outputs are skipped.
func (m *Model) Run(ctx context.Context, input model.Tensor) (model.ModelOutputs, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil, goerr.New("session is closed", goerr.V("path", m.path))
	}

	in, err := ort.NewTensor(ort.NewShape(input.Dims...), input.Data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create input tensor", goerr.V("dims", input.Dims))
	}
	defer func() { _ = in.Destroy() }()

	outputs := make([]ort.Value, len(m.outputNames))
	if err := m.session.Run([]ort.Value{in}, outputs); err != nil {
		return nil, goerr.Wrap(err, "inference failed", goerr.V("path", m.path))
	}

	result := make(model.ModelOutputs, 0, len(outputs))
	for i, v := range outputs {
		if v == nil {
			continue
		}
		if t, ok := v.(*ort.Tensor[float32]); ok {
			data := t.GetData()
			copied := make([]float32, len(data))
			copy(copied, data)
			result = append(result, model.Tensor{
				Name: m.outputNames[i],
				Dims: append([]int64(nil), t.GetShape()...),
				Data: copied,
			})
		} else {
			logging.From(ctx).Debug("skipping non-float32 output", "name", m.outputNames[i])
		}
		_ = v.Destroy()
	}
	return result, nil
}

// Close releases the session.
func (m *Model) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil
	}
	err := m.session.Destroy()
	m.session = nil
	if err != nil {
		return goerr.Wrap(err, "failed to destroy session")
	}
	return nil
}
