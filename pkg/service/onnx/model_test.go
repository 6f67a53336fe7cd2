package onnx_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
	"github.com/NandhaKishorM/electron-app-heart/pkg/service/onnx"
	"github.com/NandhaKishorM/electron-app-heart/pkg/service/vision"
)

func TestLoad_Config(t *testing.T) {
	_, err := onnx.Load(t.Context(), "", "")
	gt.Error(t, err).Is(model.ErrConfig)

	_, err = onnx.Load(t.Context(), "", filepath.Join(t.TempDir(), "missing.onnx"))
	gt.Error(t, err).Is(model.ErrConfig)
}

func TestModel_Run(t *testing.T) {
	libraryPath := os.Getenv("TEST_ONNX_LIBRARY")
	modelPath := os.Getenv("TEST_ONNX_VISION_MODEL")
	if libraryPath == "" || modelPath == "" {
		t.Skip("TEST_ONNX_LIBRARY and TEST_ONNX_VISION_MODEL must be set")
	}

	m, err := onnx.Load(t.Context(), libraryPath, modelPath)
	gt.NoError(t, err).Required()
	defer func() { gt.NoError(t, m.Close()) }()

	input := model.Tensor{
		Name: vision.InputTensorName,
		Dims: []int64{1, 3, vision.InputSize, vision.InputSize},
		Data: make([]float32, 3*vision.InputSize*vision.InputSize),
	}
	outputs, err := m.Run(t.Context(), input)
	gt.NoError(t, err).Required()
	gt.B(t, len(outputs) > 0).True()
	gt.B(t, vision.IdentifyTensors(outputs).Empty()).False()
}
