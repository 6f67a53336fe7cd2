package llama

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
)

type extensionKey struct{}

// withExtensions attaches llama.cpp request fields that the OpenAI schema lacks.
func withExtensions(ctx context.Context, fields map[string]any) context.Context {
	return context.WithValue(ctx, extensionKey{}, fields)
}

// extensionDoer merges llama.cpp extension fields from the request context
// into the JSON body before sending.
type extensionDoer struct {
	base *http.Client
}

func (d *extensionDoer) Do(req *http.Request) (*http.Response, error) {
	fields, _ := req.Context().Value(extensionKey{}).(map[string]any)
	if len(fields) == 0 || req.Body == nil {
		return d.base.Do(req)
	}

	raw, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read request body")
	}
	_ = req.Body.Close()

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, goerr.Wrap(err, "failed to decode request body")
	}
	for k, v := range fields {
		body[k] = v
	}
	merged, err := json.Marshal(body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode request body")
	}

	req.Body = io.NopCloser(bytes.NewReader(merged))
	req.ContentLength = int64(len(merged))
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(merged)), nil
	}
	return d.base.Do(req)
}
