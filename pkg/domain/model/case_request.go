package model

import (
	"regexp"
	"strings"
)

var (
	ecgMarker    = regexp.MustCompile(`\[ECG:\s*(.*?)\]`)
	reportMarker = regexp.MustCompile(`\[Report:\s*(.*?)\]`)
	spaces       = regexp.MustCompile(`\s+`)
)

// CaseRequest is one user request. ECG and report references are
// carried in the message content as "[ECG: path]" and "[Report: path]".
type CaseRequest struct {
	ECGPaths    []string `json:"ecg_paths,omitempty"`
	ReportPaths []string `json:"report_paths,omitempty"`
	UserQuery   string   `json:"user_query,omitempty"`
}

// ParseCaseRequest extracts the markers of content in order of appearance.
// The remaining text, with whitespace collapsed, becomes the user query.
func ParseCaseRequest(content string) CaseRequest {
	var req CaseRequest
	for _, m := range ecgMarker.FindAllStringSubmatch(content, -1) {
		if p := strings.TrimSpace(m[1]); p != "" {
			req.ECGPaths = append(req.ECGPaths, p)
		}
	}
	for _, m := range reportMarker.FindAllStringSubmatch(content, -1) {
		if p := strings.TrimSpace(m[1]); p != "" {
			req.ReportPaths = append(req.ReportPaths, p)
		}
	}

	query := ecgMarker.ReplaceAllString(content, " ")
	query = reportMarker.ReplaceAllString(query, " ")
	req.UserQuery = strings.TrimSpace(spaces.ReplaceAllString(query, " "))
	return req
}

// IsChat reports whether the request carries no evidence and goes straight to the backend.
func (r CaseRequest) IsChat() bool {
	return len(r.ECGPaths) == 0 && len(r.ReportPaths) == 0
}

// HasReport reports whether at least one report path was supplied.
func (r CaseRequest) HasReport() bool {
	return len(r.ReportPaths) > 0
}

// Content renders the request back into marker form.
func (r CaseRequest) Content() string {
	var parts []string
	for _, p := range r.ECGPaths {
		parts = append(parts, "[ECG: "+p+"]")
	}
	for _, p := range r.ReportPaths {
		parts = append(parts, "[Report: "+p+"]")
	}
	if r.UserQuery != "" {
		parts = append(parts, r.UserQuery)
	}
	return strings.Join(parts, " ")
}
