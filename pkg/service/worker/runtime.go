package worker

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/NandhaKishorM/electron-app-heart/pkg/utils/logging"
)

// Status tags a Response as success or error.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Request is one message to a worker. ID correlates the Response.
type Request struct {
	ID      uuid.UUID
	Op      string
	Payload any

	ctx   context.Context
	reply chan Response
}

// Response answers the Request with the same ID.
type Response struct {
	ID      uuid.UUID
	Status  Status
	Payload any
	Err     error
}

// Handler processes one operation inside the worker goroutine.
type Handler func(ctx context.Context, op string, payload any) (any, error)

var (
	// ErrNotRunning is returned when a request is sent to a stopped or unstarted runtime.
	ErrNotRunning = goerr.New("worker is not running")
	// ErrUnknownOp is returned by handlers for operations they do not serve.
	ErrUnknownOp = goerr.New("unknown worker operation")
	// ErrInitTimeout is returned when initialization outlasts the ready timeout.
	ErrInitTimeout = goerr.New("worker init timed out")
)

// Runtime is a long-lived goroutine serving requests one at a time.
// Concurrent callers queue on the request channel.
type Runtime struct {
	name    string
	handler Handler
	reqCh   chan *Request
	stopCh  chan struct{}
	doneCh  chan struct{}

	mu      sync.Mutex
	started bool
	stopped bool
}

// NewRuntime creates a runtime named name dispatching to handler.
func NewRuntime(name string, handler Handler) *Runtime {
	return &Runtime{
		name:    name,
		handler: handler,
		reqCh:   make(chan *Request),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

// Start launches the worker loop. Calling Start on a running runtime is a no-op.
func (r *Runtime) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return goerr.Wrap(ErrNotRunning, "runtime already stopped", goerr.V("worker", r.name))
	}
	if r.started {
		return nil
	}
	r.started = true

	logging.From(ctx).Info("worker starting", "worker", r.name)
	go r.run()
	return nil
}

// Stop signals the worker to stop and waits for the loop to exit.
func (r *Runtime) Stop() {
	r.mu.Lock()
	if !r.started || r.stopped {
		r.stopped = true
		r.mu.Unlock()
		return
	}
	r.stopped = true
	r.mu.Unlock()

	close(r.stopCh)
	<-r.doneCh
	logging.Default().Info("worker stopped", "worker", r.name)
}

// Submit sends a request and returns a channel that receives exactly one
// Response. The request waits in the queue until the worker takes it or
// ctx is done.
func (r *Runtime) Submit(ctx context.Context, op string, payload any) <-chan Response {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	req := &Request{
		ID:      id,
		Op:      op,
		Payload: payload,
		ctx:     ctx,
		reply:   make(chan Response, 1),
	}

	select {
	case r.reqCh <- req:
	case <-r.stopCh:
		req.reply <- errorResponse(id, goerr.Wrap(ErrNotRunning, "worker stopped",
			goerr.V("worker", r.name), goerr.V("op", op)))
	case <-ctx.Done():
		req.reply <- errorResponse(id, goerr.Wrap(ctx.Err(), "request not accepted",
			goerr.V("worker", r.name), goerr.V("op", op)))
	}
	return req.reply
}

// Call sends a request and waits for its response.
func (r *Runtime) Call(ctx context.Context, op string, payload any) (any, error) {
	r.mu.Lock()
	running := r.started && !r.stopped
	r.mu.Unlock()
	if !running {
		return nil, goerr.Wrap(ErrNotRunning, "cannot call worker",
			goerr.V("worker", r.name), goerr.V("op", op))
	}

	select {
	case resp := <-r.Submit(ctx, op, payload):
		if resp.Status == StatusError {
			return nil, resp.Err
		}
		return resp.Payload, nil
	case <-ctx.Done():
		return nil, goerr.Wrap(ctx.Err(), "worker call cancelled",
			goerr.V("worker", r.name), goerr.V("op", op))
	}
}

func (r *Runtime) run() {
	defer close(r.doneCh)

	for {
		select {
		case req := <-r.reqCh:
			req.reply <- r.process(req)
		case <-r.stopCh:
			return
		}
	}
}

func (r *Runtime) process(req *Request) (resp Response) {
	ctx := req.ctx
	logger := logging.From(ctx).With("worker", r.name, "op", req.Op, "request_id", req.ID.String())

	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("panic in worker handler", "panic", rec)
			resp = errorResponse(req.ID, goerr.New(fmt.Sprintf("worker panic: %v", rec),
				goerr.V("worker", r.name), goerr.V("op", req.Op)))
		}
	}()

	payload, err := r.handler(ctx, req.Op, req.Payload)
	if err != nil {
		logger.Debug("worker request failed", "error", err.Error())
		return errorResponse(req.ID, err)
	}
	return Response{ID: req.ID, Status: StatusSuccess, Payload: payload}
}

func errorResponse(id uuid.UUID, err error) Response {
	return Response{ID: id, Status: StatusError, Err: err}
}
