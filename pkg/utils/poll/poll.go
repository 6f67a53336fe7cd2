package poll

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// ErrTimeout is returned by Until when the deadline passes before ready reports true.
var ErrTimeout = goerr.New("poll timed out")

// Until calls ready immediately and then every interval until it returns
// true, returns an error, timeout passes or ctx is done.
func Until(ctx context.Context, interval, timeout time.Duration, ready func(ctx context.Context) (bool, error)) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		ok, err := ready(ctx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			if ctx.Err() == context.DeadlineExceeded {
				return goerr.Wrap(ErrTimeout, "readiness not reached",
					goerr.V("timeout", timeout.String()))
			}
			return goerr.Wrap(ctx.Err(), "polling cancelled")
		}
	}
}
