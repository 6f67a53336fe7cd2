package async_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/NandhaKishorM/electron-app-heart/pkg/utils/async"
)

type ctxKey struct{}

func TestDispatch(t *testing.T) {
	t.Run("handler outlives the caller context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.WithValue(context.Background(), ctxKey{}, "case-1"))
		done := make(chan error, 1)

		async.Dispatch(ctx, func(ctx context.Context) error {
			<-time.After(10 * time.Millisecond)
			if ctx.Value(ctxKey{}) != "case-1" {
				done <- errors.New("context value lost")
				return nil
			}
			done <- ctx.Err()
			return nil
		})
		cancel()

		select {
		case err := <-done:
			gt.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("handler did not run")
		}
	})

	t.Run("panics are recovered", func(t *testing.T) {
		ran := make(chan struct{})
		async.Dispatch(context.Background(), func(ctx context.Context) error {
			close(ran)
			panic("boom")
		})

		select {
		case <-ran:
		case <-time.After(time.Second):
			t.Fatal("handler did not run")
		}
	})
}
