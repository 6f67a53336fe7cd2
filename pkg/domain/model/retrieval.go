package model

// RetrievedChunk is a ranked chunk of report text.
type RetrievedChunk struct {
	Text   string
	Offset int
	Score  float64
}

// VisionResult is the output of analyzing one ECG image.
type VisionResult struct {
	HeatmapPath string `json:"heatmap_path"`
	Description string `json:"description"`
}
