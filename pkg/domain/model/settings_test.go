package model_test

import (
	"testing"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
	"github.com/m-mizutani/gt"
)

func TestParseGenerationSettings(t *testing.T) {
	t.Run("defaults when unset", func(t *testing.T) {
		s := model.ParseGenerationSettings(nil)
		gt.Value(t, s).Equal(model.GenerationSettings{
			Temperature:   0.1,
			RepeatPenalty: 1.3,
			MaxTokens:     1024,
			GPULayers:     10,
		})
	})

	t.Run("stored values override defaults", func(t *testing.T) {
		s := model.ParseGenerationSettings(map[string]string{
			model.SettingTemperature:   "0.7",
			model.SettingRepeatPenalty: "1.1",
			model.SettingMaxTokens:     "512",
			model.SettingGPULayers:     "0",
		})
		gt.Value(t, s.Temperature).Equal(0.7)
		gt.Value(t, s.RepeatPenalty).Equal(1.1)
		gt.Value(t, s.MaxTokens).Equal(512)
		gt.Value(t, s.GPULayers).Equal(0)
	})

	t.Run("garbage falls back per key", func(t *testing.T) {
		s := model.ParseGenerationSettings(map[string]string{
			model.SettingTemperature: "hot",
			model.SettingMaxTokens:   "-5",
		})
		gt.Value(t, s.Temperature).Equal(0.1)
		gt.Value(t, s.MaxTokens).Equal(1024)
	})
}

func TestNewGenerateOptions(t *testing.T) {
	opts := model.NewGenerateOptions(model.DefaultGenerationSettings())
	gt.Value(t, opts.TopP).Equal(0.9)
	gt.Value(t, opts.MaxTokens).Equal(1024)
	gt.Array(t, opts.Stop).Equal([]string{"<end_of_turn>", "<eos>", "\n\n\n"})
}

func TestContentPart_DataURI(t *testing.T) {
	p := model.ImagePart("image/png", []byte("abc"))
	gt.Value(t, p.DataURI()).Equal("data:image/png;base64,YWJj")
	gt.B(t, model.UserMessage(model.TextPart("hi"), p).HasImage()).True()
	gt.B(t, model.UserMessage(model.TextPart("hi")).HasImage()).False()
}
