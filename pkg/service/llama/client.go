// Package llama talks to a llama.cpp server: OpenAI-compatible chat
// completions, the native /completion endpoint and /health.
package llama

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sashabaranov/go-openai"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
)

const (
	DefaultBaseURL = "http://127.0.0.1:8080"
	DefaultModel   = "medgemma"
	DefaultTimeout = 5 * time.Minute
)

// Client is a llama.cpp server client.
type Client struct {
	baseURL string
	model   string
	apiKey  string
	timeout time.Duration
	doer    *http.Client
	chat    *openai.Client
}

// Option is a functional option for Client
type Option func(*Client)

func WithModel(name string) Option {
	return func(c *Client) {
		c.model = name
	}
}

// WithAPIKey sets the bearer token for servers started with --api-key.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithTimeout bounds every generation request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client. Its Timeout is
// overwritten by the generation timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.doer = hc
	}
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   DefaultModel,
		timeout: DefaultTimeout,
		doer:    &http.Client{},
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	for _, opt := range opts {
		opt(c)
	}

	hc := *c.doer
	hc.Timeout = c.timeout
	c.doer = &hc

	cfg := openai.DefaultConfig(c.apiKey)
	cfg.BaseURL = c.baseURL + "/v1"
	cfg.HTTPClient = &extensionDoer{base: c.doer}
	c.chat = openai.NewClientWithConfig(cfg)
	return c
}

// BaseURL returns the server address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// generationError tags err as model.ErrGeneration. Deadline errors are
// reported as timeouts.
func (c *Client) generationError(err error, endpoint string) error {
	msg := err.Error()
	var apiErr *openai.APIError
	switch {
	case errors.Is(err, context.DeadlineExceeded), isTimeout(err):
		msg = "request timed out after " + c.timeout.String()
	case errors.As(err, &apiErr):
		msg = "LlamaServer API error: " + apiErr.Message
	}
	return goerr.Wrap(model.ErrGeneration, msg,
		goerr.V("endpoint", endpoint),
		goerr.V("base_url", c.baseURL))
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
