package llama

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/types"
	"github.com/NandhaKishorM/electron-app-heart/pkg/utils/logging"
	"github.com/NandhaKishorM/electron-app-heart/pkg/utils/poll"
	"github.com/NandhaKishorM/electron-app-heart/pkg/utils/safe"
)

const (
	healthRequestTimeout = 5 * time.Second

	DefaultReadyInterval = time.Second
	DefaultReadyTimeout  = 2 * time.Minute
)

type healthResponse struct {
	Status string    `json:"status"`
	Error  *apiError `json:"error,omitempty"`
}

// Health queries /health. An unreachable server or an unparsable answer
// is HealthStatusNotReady with no error; errors are returned only for
// requests that cannot be built.
func (c *Client) Health(ctx context.Context) (types.HealthStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, healthRequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return types.HealthStatusNotReady, goerr.Wrap(err, "failed to create request")
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		logging.From(ctx).Debug("health check failed", "error", err.Error())
		return types.HealthStatusNotReady, nil
	}
	defer safe.Close(ctx, resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return types.HealthStatusNotReady, nil
	}

	var h healthResponse
	if err := json.Unmarshal(body, &h); err != nil {
		return types.HealthStatusNotReady, nil
	}
	return parseHealth(resp.StatusCode, h), nil
}

func parseHealth(code int, h healthResponse) types.HealthStatus {
	switch h.Status {
	case "ok":
		return types.HealthStatusOK
	case "no slot available":
		return types.HealthStatusNoSlot
	case "loading model":
		return types.HealthStatusLoading
	}
	if code == http.StatusServiceUnavailable && h.Error != nil && h.Error.Message == "Loading model" {
		return types.HealthStatusLoading
	}
	return types.HealthStatusNotReady
}

// WaitReady polls Health every interval until the server is ready or
// timeout passes. Timing out wraps model.ErrWorkerInit.
func (c *Client) WaitReady(ctx context.Context, interval, timeout time.Duration) error {
	last := types.HealthStatusNotReady
	err := poll.Until(ctx, interval, timeout, func(ctx context.Context) (bool, error) {
		status, err := c.Health(ctx)
		if err != nil {
			return false, err
		}
		if status != last {
			logging.From(ctx).Info("generation backend status", "status", status.String())
			last = status
		}
		return status.IsReady(), nil
	})
	if err != nil {
		return goerr.Wrap(model.ErrWorkerInit, "generation backend not ready: "+err.Error(),
			goerr.V("base_url", c.baseURL),
			goerr.V("last_status", last.String()))
	}
	return nil
}
