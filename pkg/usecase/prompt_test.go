package usecase_test

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/types"
	"github.com/NandhaKishorM/electron-app-heart/pkg/usecase"
)

func TestBuildPrompt(t *testing.T) {
	t.Run("ECG only omits empty sections", func(t *testing.T) {
		prompt, err := usecase.BuildPrompt(types.PromptTemplateECGOnly, model.EvidenceBundle{ECGPath: "/e.png"}, "")
		gt.NoError(t, err).Required()
		gt.String(t, prompt).Contains("6. Final Diagnosis")
		gt.String(t, prompt).Contains("Do not speculate")
		gt.Bool(t, strings.Contains(prompt, "Vision Encoder Analysis")).False()
		gt.Bool(t, strings.Contains(prompt, "Clinician Request")).False()
	})

	t.Run("combined lists five sections with the report context", func(t *testing.T) {
		prompt, err := usecase.BuildPrompt(types.PromptTemplateCombined, model.EvidenceBundle{
			ECGPath:           "/e.png",
			VisionDescription: "focus lower left",
			ReportContext:     "K+ 2.9 mmol/L",
			HasReport:         true,
		}, "check potassium")
		gt.NoError(t, err).Required()
		gt.String(t, prompt).Contains("5. Lifestyle Recommendations")
		gt.String(t, prompt).Contains("Vision Encoder Analysis:\nfocus lower left")
		gt.String(t, prompt).Contains("Clinical Context from Medical Report:\nK+ 2.9 mmol/L")
		gt.Bool(t, strings.HasSuffix(prompt, "Clinician Request: check potassium")).True()
	})

	t.Run("report only", func(t *testing.T) {
		prompt, err := usecase.BuildPrompt(types.PromptTemplateReportOnly, model.EvidenceBundle{
			ReportContext: "Hb 9.1 g/dL",
			HasReport:     true,
		}, "")
		gt.NoError(t, err).Required()
		gt.Value(t, prompt).Equal("Based on the provided clinical data, produce a detailed diagnostic assessment.\n\nClinical Context from Medical Report:\nHb 9.1 g/dL")
	})

	t.Run("chat has no synthesis template", func(t *testing.T) {
		_, err := usecase.BuildPrompt(types.PromptTemplateChat, model.EvidenceBundle{}, "")
		gt.Value(t, err).NotNil()
	})
}

func TestImageMIMEType(t *testing.T) {
	gt.Value(t, usecase.ImageMIMEType("/a/ECG.PNG")).Equal("image/png")
	gt.Value(t, usecase.ImageMIMEType("/a/ecg.webp")).Equal("image/webp")
	gt.Value(t, usecase.ImageMIMEType("/a/ecg.jpg")).Equal("image/jpeg")
	gt.Value(t, usecase.ImageMIMEType("/a/ecg")).Equal("image/jpeg")
}
