package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/m-mizutani/goerr/v2"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/types"
	"github.com/NandhaKishorM/electron-app-heart/pkg/utils/logging"
)

//go:embed prompt/ecg_only.md
var ecgOnlyPromptTmpl string

//go:embed prompt/combined.md
var combinedPromptTmpl string

//go:embed prompt/report_only.md
var reportOnlyPromptTmpl string

var promptTemplates = map[types.PromptTemplate]*template.Template{
	types.PromptTemplateECGOnly:    template.Must(template.New("ecg_only").Parse(ecgOnlyPromptTmpl)),
	types.PromptTemplateCombined:   template.Must(template.New("combined").Parse(combinedPromptTmpl)),
	types.PromptTemplateReportOnly: template.Must(template.New("report_only").Parse(reportOnlyPromptTmpl)),
}

type promptData struct {
	VisionDescription string
	ReportContext     string
	UserQuery         string
}

// buildPrompt renders the synthesis prompt for the evidence of one ECG cycle.
func buildPrompt(tmpl types.PromptTemplate, evidence model.EvidenceBundle, query string) (string, error) {
	t, ok := promptTemplates[tmpl]
	if !ok {
		return "", goerr.New("no prompt template", goerr.V("template", tmpl))
	}

	data := promptData{
		VisionDescription: evidence.VisionDescription,
		UserQuery:         query,
	}
	if evidence.HasReport {
		data.ReportContext = evidence.ReportContext
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to render prompt", goerr.V("template", tmpl))
	}
	return strings.TrimSpace(buf.String()), nil
}

// buildMessages returns the single user turn sent for synthesis. The ECG
// image, when readable, is attached ahead of the text.
func buildMessages(ctx context.Context, prompt string, evidence model.EvidenceBundle) []model.Message {
	if !evidence.HasECG() {
		return []model.Message{model.UserMessage(model.TextPart(prompt))}
	}

	data, err := os.ReadFile(evidence.ECGPath)
	if err != nil {
		logging.From(ctx).Warn("ECG image not attached",
			"path", evidence.ECGPath,
			"error", err.Error())
		return []model.Message{model.UserMessage(model.TextPart(prompt))}
	}

	return []model.Message{model.UserMessage(
		model.ImagePart(imageMIMEType(evidence.ECGPath), data),
		model.TextPart(prompt),
	)}
}

func imageMIMEType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	default:
		return "image/jpeg"
	}
}
