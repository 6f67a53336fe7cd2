package async

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"

	"github.com/NandhaKishorM/electron-app-heart/pkg/utils/errutil"
)

// Dispatch runs handler in a new goroutine with a context that keeps the
// values of ctx but is never cancelled by it. Errors and panics are
// reported through errutil.Handle.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	bgCtx := context.WithoutCancel(ctx)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				errutil.Handle(bgCtx, goerr.New(fmt.Sprintf("panic in async handler: %v", r)), "async handler panicked")
			}
		}()

		if err := handler(bgCtx); err != nil {
			errutil.Handle(bgCtx, err, "async handler failed")
		}
	}()
}
