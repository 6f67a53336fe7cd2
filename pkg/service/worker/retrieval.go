package worker

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/interfaces"
	"github.com/NandhaKishorM/electron-app-heart/pkg/service/rag"
)

// EncoderLoader creates the sentence encoder. It runs on the worker goroutine.
type EncoderLoader func(ctx context.Context) (interfaces.Encoder, error)

// RetrieveRequest is the payload of OpRetrieve.
type RetrieveRequest struct {
	Text  string
	Query string
}

// Retrieval ranks report text against a query on a dedicated worker.
type Retrieval struct {
	lifecycle
	load EncoderLoader

	// owned by the worker goroutine
	service *rag.Service
}

var _ interfaces.RetrievalWorker = (*Retrieval)(nil)

// NewRetrieval creates a retrieval worker. The encoder is created by Init.
func NewRetrieval(load EncoderLoader, opts ...Option) *Retrieval {
	r := &Retrieval{load: load}
	r.lifecycle = lifecycle{name: "retrieval", cfg: newConfig(opts)}
	r.rt = NewRuntime("retrieval", r.handle)
	return r
}

// Init creates and warms up the encoder. Calling it again after success is a no-op.
func (r *Retrieval) Init(ctx context.Context) error {
	return r.init(ctx)
}

// Retrieve returns the context string for text and query. Retrieval
// failures inside the worker degrade to truncated text; an error is
// returned only when the worker itself is unavailable.
func (r *Retrieval) Retrieve(ctx context.Context, text, query string) (string, error) {
	if err := r.Init(ctx); err != nil {
		return "", err
	}

	resp, err := r.rt.Call(ctx, OpRetrieve, RetrieveRequest{Text: text, Query: query})
	if err != nil {
		return "", err
	}
	out, ok := resp.(string)
	if !ok {
		return "", goerr.New("unexpected worker response", goerr.V("type", resp))
	}
	return out, nil
}

// Close stops the worker.
func (r *Retrieval) Close() error {
	r.rt.Stop()
	return nil
}

func (r *Retrieval) handle(ctx context.Context, op string, payload any) (any, error) {
	switch op {
	case OpInit:
		if r.service != nil {
			return nil, nil
		}
		enc, err := r.load(ctx)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create encoder")
		}
		if _, err := enc.Embed(ctx, []string{rag.DefaultQuery}); err != nil {
			return nil, goerr.Wrap(err, "encoder warm-up failed", goerr.V("model", enc.ModelInfo()))
		}
		r.service = rag.New(enc, r.cfg.ragOptions...)
		return nil, nil

	case OpRetrieve:
		req, ok := payload.(RetrieveRequest)
		if !ok {
			return nil, goerr.Wrap(ErrUnknownOp, "retrieve expects a RetrieveRequest", goerr.V("payload", payload))
		}
		if r.service == nil {
			return nil, goerr.New("retrieval encoder is not loaded")
		}
		return r.service.Retrieve(ctx, req.Text, req.Query), nil

	default:
		return nil, goerr.Wrap(ErrUnknownOp, "retrieval worker", goerr.V("op", op))
	}
}
