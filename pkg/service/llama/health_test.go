package llama_test

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/types"
	"github.com/NandhaKishorM/electron-app-heart/pkg/service/llama"
)

func TestClient_Health(t *testing.T) {
	testCases := []struct {
		name   string
		code   int
		body   string
		expect types.HealthStatus
	}{
		{name: "ok", code: 200, body: `{"status":"ok"}`, expect: types.HealthStatusOK},
		{name: "no slot", code: 503, body: `{"status":"no slot available"}`, expect: types.HealthStatusNoSlot},
		{name: "legacy loading", code: 503, body: `{"status":"loading model"}`, expect: types.HealthStatusLoading},
		{name: "loading error object", code: 503, body: `{"error":{"code":503,"message":"Loading model","type":"unavailable_error"}}`, expect: types.HealthStatusLoading},
		{name: "garbage", code: 200, body: `<html>`, expect: types.HealthStatusNotReady},
		{name: "unknown status", code: 200, body: `{"status":"warming"}`, expect: types.HealthStatusNotReady},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gt.Value(t, r.URL.Path).Equal("/health")
				w.WriteHeader(tc.code)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			status, err := llama.New(srv.URL).Health(t.Context())
			gt.NoError(t, err).Required()
			gt.Value(t, status).Equal(tc.expect)
		})
	}

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		status, err := llama.New(url).Health(t.Context())
		gt.NoError(t, err)
		gt.Value(t, status).Equal(types.HealthStatusNotReady)
	})
}

func TestClient_WaitReady(t *testing.T) {
	t.Run("becomes ready", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"status":"loading model"}`))
				return
			}
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		}))
		defer srv.Close()

		err := llama.New(srv.URL).WaitReady(t.Context(), time.Millisecond, time.Second)
		gt.NoError(t, err)
		gt.Value(t, calls.Load()).Equal(int32(3))
	})

	t.Run("times out", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"loading model"}`))
		}))
		defer srv.Close()

		err := llama.New(srv.URL).WaitReady(t.Context(), time.Millisecond, 20*time.Millisecond)
		gt.Error(t, err).Is(model.ErrWorkerInit)
		gt.String(t, err.Error()).Contains("not ready")
	})
}
