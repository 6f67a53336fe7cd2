package interfaces

import (
	"context"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/types"
)

// Generator produces text from role-tagged messages. Images travel as
// typed content parts of the message.
type Generator interface {
	Generate(ctx context.Context, messages []model.Message, opts model.GenerateOptions) (string, error)
}

// HealthChecker reports the readiness of the generation backend.
type HealthChecker interface {
	Health(ctx context.Context) (types.HealthStatus, error)
}
