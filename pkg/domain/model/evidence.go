package model

// EvidenceBundle is the evidence gathered for one ECG before synthesis.
// It is built once by the orchestrator and only read afterwards.
type EvidenceBundle struct {
	ECGPath           string
	HeatmapPath       string
	VisionDescription string
	ReportContext     string
	HasReport         bool
}

// HasECG reports whether an ECG image is part of the evidence.
func (e EvidenceBundle) HasECG() bool {
	return e.ECGPath != ""
}

// HasHeatmap reports whether a heatmap overlay was produced. The vision
// analyzer returns the source image path when no attention output exists.
func (e EvidenceBundle) HasHeatmap() bool {
	return e.HeatmapPath != "" && e.HeatmapPath != e.ECGPath
}
