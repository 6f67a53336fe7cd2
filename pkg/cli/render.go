package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/types"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	labelColor   = color.New(color.Faint)
	errorColor   = color.New(color.FgRed, color.Bold)
	doneColor    = color.New(color.FgGreen)
)

// renderResult writes one case result in a human readable layout.
func renderResult(w io.Writer, r *model.CaseResult) {
	if r.Template == types.PromptTemplateChat {
		fmt.Fprintln(w, r.Reply)
		if r.Error != "" {
			errorColor.Fprintln(w, r.Error)
		}
		return
	}

	if r.ECGPath != "" {
		labelColor.Fprintf(w, "ECG: %s\n", r.ECGPath)
	}
	if r.HeatmapPath != "" {
		labelColor.Fprintf(w, "Heatmap: %s\n", r.HeatmapPath)
	}
	labelColor.Fprintf(w, "States: %s\n\n", joinStates(r.States))

	renderSection(w, "ECG Findings", r.Sections.ECGFindings)
	renderSection(w, "Clinical Assessment", r.Sections.ClinicalAssessment)
	renderList(w, "Next Steps", r.Sections.NextSteps)
	renderList(w, "Lifestyle Recommendations", r.Sections.LifestyleRecommendations)

	if r.Error != "" {
		errorColor.Fprintf(w, "Error: %s\n", r.Error)
	}
}

func renderSection(w io.Writer, title, body string) {
	headingColor.Fprintln(w, title)
	fmt.Fprintln(w, strings.TrimSpace(body))
	fmt.Fprintln(w)
}

func renderList(w io.Writer, title string, items []string) {
	headingColor.Fprintln(w, title)
	for _, item := range items {
		fmt.Fprintln(w, item)
	}
	fmt.Fprintln(w)
}

func renderProgress(w io.Writer, done, total int, r *model.CaseResult) {
	name := r.ECGPath
	if name == "" {
		name = "report"
	}
	if r.State == types.CaseStateError {
		errorColor.Fprintf(w, "[%d/%d] %s failed\n", done, total, name)
		return
	}
	doneColor.Fprintf(w, "[%d/%d] %s done\n", done, total, name)
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return goerr.Wrap(err, "failed to encode output")
	}
	return nil
}

func joinStates(states []types.CaseState) string {
	names := make([]string, len(states))
	for i, s := range states {
		names[i] = s.String()
	}
	return strings.Join(names, " -> ")
}
