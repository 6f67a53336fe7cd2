package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/types"
)

// CaseID identifies one case result
type CaseID string

// NewCaseID generates a new time-ordered CaseID
func NewCaseID() CaseID {
	id, err := uuid.NewV7()
	if err != nil {
		return CaseID(uuid.New().String())
	}
	return CaseID(id.String())
}

// ClinicalSections is the structured form of one generated clinical narrative.
type ClinicalSections struct {
	ECGFindings              string   `json:"ecg_findings"`
	ClinicalAssessment       string   `json:"clinical_assessment"`
	NextSteps                []string `json:"next_steps"`
	LifestyleRecommendations []string `json:"lifestyle_recommendations"`
}

// CaseResult is the outcome of one case cycle. A multi-ECG request yields
// one result per ECG.
type CaseResult struct {
	ID                CaseID               `json:"id"`
	State             types.CaseState      `json:"state"`
	States            []types.CaseState    `json:"states"`
	Template          types.PromptTemplate `json:"template,omitempty"`
	ECGPath           string               `json:"ecg_path,omitempty"`
	Sections          ClinicalSections     `json:"sections"`
	HeatmapPath       string               `json:"heatmap_path,omitempty"`
	ReportContext     string               `json:"report_context,omitempty"`
	VisionDescription string               `json:"vision_description,omitempty"`
	RawResponse       string               `json:"raw_response,omitempty"`
	Reply             string               `json:"reply,omitempty"`
	Error             string               `json:"error,omitempty"`
	CreatedAt         time.Time            `json:"created_at"`
}

// NewCaseResult returns a result in ROUTING state.
func NewCaseResult() *CaseResult {
	return &CaseResult{
		ID:        NewCaseID(),
		State:     types.CaseStateRouting,
		States:    []types.CaseState{types.CaseStateRouting},
		CreatedAt: time.Now().UTC(),
	}
}

// Transition moves the result to next and records it in the state trail.
func (r *CaseResult) Transition(next types.CaseState) error {
	if !r.State.CanTransitionTo(next) {
		return goerr.Wrap(ErrInvalidTransition, "cannot change case state",
			goerr.V(CaseIDKey, r.ID),
			goerr.V("from", r.State),
			goerr.V("to", next))
	}
	r.State = next
	r.States = append(r.States, next)
	return nil
}

// Fail moves the result to ERROR and records msg. Evidence already
// gathered on the result is kept.
func (r *CaseResult) Fail(msg string) {
	if r.State.CanTransitionTo(types.CaseStateError) {
		r.State = types.CaseStateError
		r.States = append(r.States, types.CaseStateError)
	}
	r.Error = msg
}

// ApplyEvidence copies evidence fields onto the result.
func (r *CaseResult) ApplyEvidence(e EvidenceBundle) {
	r.ECGPath = e.ECGPath
	if e.HasHeatmap() {
		r.HeatmapPath = e.HeatmapPath
	}
	r.VisionDescription = e.VisionDescription
	r.ReportContext = e.ReportContext
}
