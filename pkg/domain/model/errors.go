package model

import "github.com/m-mizutani/goerr/v2"

// Error taxonomy of the case pipeline. Callers match with errors.Is.
var (
	// ErrConfig reports a missing or invalid required setting (model path, backend URL). Fatal at startup.
	ErrConfig = goerr.New("invalid configuration")
	// ErrWorkerInit reports that a background worker failed to load. Fatal at startup.
	ErrWorkerInit = goerr.New("worker initialization failed")
	// ErrVisionAnalysis reports a preprocessing or inference failure for one image.
	ErrVisionAnalysis = goerr.New("vision analysis failed")
	// ErrRetrieval reports an embedding or indexing failure. Always recovered.
	ErrRetrieval = goerr.New("retrieval failed")
	// ErrGeneration reports an unreachable, timed out or failing generation backend.
	ErrGeneration = goerr.New("generation failed")
	// ErrParse reports a response the classifier could not structure. Always recovered.
	ErrParse = goerr.New("response parse failed")
	// ErrInvalidTransition reports a state change the case state machine does not allow.
	ErrInvalidTransition = goerr.New("invalid case state transition")
)

// Context keys for error values
const (
	CaseIDKey     = "case_id"
	ECGPathKey    = "ecg_path"
	ReportPathKey = "report_path"
	StateKey      = "state"
)
