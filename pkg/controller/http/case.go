package http

import (
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
	"github.com/NandhaKishorM/electron-app-heart/pkg/usecase"
	"github.com/NandhaKishorM/electron-app-heart/pkg/utils/errutil"
)

type analyzeRequest struct {
	Content     string   `json:"content,omitempty"`
	ECGPaths    []string `json:"ecg_paths,omitempty"`
	ReportPaths []string `json:"report_paths,omitempty"`
	Query       string   `json:"query,omitempty"`
}

type analyzeResponse struct {
	Results []*model.CaseResult `json:"results"`
}

// handleAnalyze runs a case. Either content in marker form or explicit
// path lists may be given.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	var (
		results []*model.CaseResult
		err     error
	)
	if req.Content != "" {
		results, err = s.uc.Case.Handle(r.Context(), req.Content, nil)
	} else {
		results, err = s.uc.Case.Analyze(r.Context(), model.CaseRequest{
			ECGPaths:    req.ECGPaths,
			ReportPaths: req.ReportPaths,
			UserQuery:   req.Query,
		}, nil)
	}
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, usecase.ErrEmptyRequest) {
			status = http.StatusBadRequest
		}
		errutil.HandleHTTP(r.Context(), w, err, status)
		return
	}

	writeJSON(w, r, http.StatusOK, analyzeResponse{Results: results})
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Role    string            `json:"role"`
	Content string            `json:"content"`
	Result  *model.CaseResult `json:"result"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	result, err := s.uc.Case.Chat(r.Context(), req.Message)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, usecase.ErrEmptyRequest) {
			status = http.StatusBadRequest
		}
		errutil.HandleHTTP(r.Context(), w, err, status)
		return
	}

	writeJSON(w, r, http.StatusOK, chatResponse{
		Role:    string(model.RoleAssistant),
		Content: result.Reply,
		Result:  result,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.uc.Health.Check(r.Context())
	status := http.StatusOK
	if !report.Ready() {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, r, status, report)
}
