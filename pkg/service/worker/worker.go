package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
	"github.com/NandhaKishorM/electron-app-heart/pkg/service/rag"
	"github.com/NandhaKishorM/electron-app-heart/pkg/utils/logging"
)

// Worker operations.
const (
	OpInit     = "init"
	OpAnalyze  = "analyze"
	OpRetrieve = "retrieve"
)

const (
	DefaultReadyInterval = time.Second
	DefaultReadyTimeout  = 2 * time.Minute
)

type config struct {
	readyInterval time.Duration
	readyTimeout  time.Duration
	ragOptions    []rag.Option
}

// Option configures a Vision or Retrieval worker.
type Option func(*config)

// WithReadiness sets how often and how long Init polls for the worker to become ready.
func WithReadiness(interval, timeout time.Duration) Option {
	return func(c *config) {
		c.readyInterval = interval
		c.readyTimeout = timeout
	}
}

// WithRAGOptions passes options to the retrieval service built by the Retrieval worker.
func WithRAGOptions(opts ...rag.Option) Option {
	return func(c *config) {
		c.ragOptions = append(c.ragOptions, opts...)
	}
}

func newConfig(opts []Option) config {
	c := config{
		readyInterval: DefaultReadyInterval,
		readyTimeout:  DefaultReadyTimeout,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// lifecycle owns the runtime of a worker and guards its one-time initialization.
type lifecycle struct {
	name string
	rt   *Runtime
	cfg  config

	mu    sync.Mutex
	ready atomic.Bool
}

// init starts the runtime and sends OpInit once. Later calls return nil
// without touching the worker. A failed init may be retried.
func (l *lifecycle) init(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ready.Load() {
		return nil
	}

	if err := l.rt.Start(ctx); err != nil {
		return goerr.Wrap(model.ErrWorkerInit, "failed to start worker: "+err.Error(), goerr.V("worker", l.name))
	}

	started := time.Now()
	ctx, cancel := context.WithTimeout(ctx, l.cfg.readyTimeout)
	defer cancel()

	pending := l.rt.Submit(ctx, OpInit, nil)
	if err := l.await(ctx, pending); err != nil {
		return goerr.Wrap(model.ErrWorkerInit, "failed to initialize worker: "+err.Error(),
			goerr.V("worker", l.name),
			goerr.V("timeout", l.cfg.readyTimeout.String()))
	}

	l.ready.Store(true)
	logging.From(ctx).Info("worker ready", "worker", l.name, "duration", time.Since(started).String())
	return nil
}

// await blocks until the init response arrives or ctx ends. The ready
// interval only paces progress logs.
func (l *lifecycle) await(ctx context.Context, pending <-chan Response) error {
	ticker := time.NewTicker(l.cfg.readyInterval)
	defer ticker.Stop()

	for {
		select {
		case resp := <-pending:
			if resp.Status == StatusError {
				return resp.Err
			}
			return nil
		case <-ticker.C:
			logging.From(ctx).Debug("waiting for worker", "worker", l.name)
		case <-ctx.Done():
			if ctx.Err() == context.DeadlineExceeded {
				return goerr.Wrap(ErrInitTimeout, "worker not ready", goerr.V("worker", l.name))
			}
			return goerr.Wrap(ctx.Err(), "worker init cancelled", goerr.V("worker", l.name))
		}
	}
}

// Ready reports whether Init has completed.
func (l *lifecycle) Ready() bool {
	return l.ready.Load()
}
