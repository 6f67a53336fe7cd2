package vision

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
)

// NoOutputDescription is returned when no tensor role could be identified.
const NoOutputDescription = "No analyzable vision model output."

// analysisError tags err as model.ErrVisionAnalysis and keeps its message.
func analysisError(err error, msg string, opts ...goerr.Option) error {
	return goerr.Wrap(model.ErrVisionAnalysis, msg+": "+err.Error(), opts...)
}
