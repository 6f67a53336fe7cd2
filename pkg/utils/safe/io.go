package safe

import (
	"context"
	"io"

	"github.com/NandhaKishorM/electron-app-heart/pkg/utils/logging"
)

// Close closes closer and logs a failure. A nil closer is ignored.
func Close(ctx context.Context, closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.From(ctx).Warn("failed to close", "error", err.Error())
	}
}
