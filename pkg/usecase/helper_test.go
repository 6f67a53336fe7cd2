package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/types"
	"github.com/NandhaKishorM/electron-app-heart/pkg/repository/memory"
	"github.com/NandhaKishorM/electron-app-heart/pkg/usecase"
)

type generateCall struct {
	messages []model.Message
	opts     model.GenerateOptions
}

type mockGenerator struct {
	generateFn func(ctx context.Context, messages []model.Message, opts model.GenerateOptions) (string, error)

	mu    sync.Mutex
	calls []generateCall
}

func (m *mockGenerator) Generate(ctx context.Context, messages []model.Message, opts model.GenerateOptions) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, generateCall{messages: messages, opts: opts})
	m.mu.Unlock()
	if m.generateFn != nil {
		return m.generateFn(ctx, messages, opts)
	}
	return "", nil
}

func (m *mockGenerator) Calls() []generateCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]generateCall(nil), m.calls...)
}

type mockVision struct {
	analyzeFn func(ctx context.Context, imagePath string) (*model.VisionResult, error)
	ready     bool

	mu    sync.Mutex
	paths []string
}

func (m *mockVision) Init(ctx context.Context) error {
	return nil
}

func (m *mockVision) Analyze(ctx context.Context, imagePath string) (*model.VisionResult, error) {
	m.mu.Lock()
	m.paths = append(m.paths, imagePath)
	m.mu.Unlock()
	if m.analyzeFn != nil {
		return m.analyzeFn(ctx, imagePath)
	}
	return &model.VisionResult{HeatmapPath: imagePath, Description: "No analyzable output."}, nil
}

func (m *mockVision) Ready() bool {
	return m.ready
}

func (m *mockVision) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.paths...)
}

type mockRetrieval struct {
	retrieveFn func(ctx context.Context, text, query string) (string, error)
	ready      bool
	calls      atomic.Int32
}

func (m *mockRetrieval) Init(ctx context.Context) error {
	return nil
}

func (m *mockRetrieval) Retrieve(ctx context.Context, text, query string) (string, error) {
	m.calls.Add(1)
	if m.retrieveFn != nil {
		return m.retrieveFn(ctx, text, query)
	}
	return text, nil
}

func (m *mockRetrieval) Ready() bool {
	return m.ready
}

type mockExtractor struct {
	extractFn func(ctx context.Context, path string) (string, error)
	calls     atomic.Int32
}

func (m *mockExtractor) Extract(ctx context.Context, path string) (string, error) {
	m.calls.Add(1)
	if m.extractFn != nil {
		return m.extractFn(ctx, path)
	}
	return "report text of " + filepath.Base(path), nil
}

type mockHealthChecker struct {
	healthFn func(ctx context.Context) (types.HealthStatus, error)
}

func (m *mockHealthChecker) Health(ctx context.Context) (types.HealthStatus, error) {
	return m.healthFn(ctx)
}

type fixture struct {
	repo      *memory.Memory
	generator *mockGenerator
	vision    *mockVision
	retrieval *mockRetrieval
	extractor *mockExtractor
	uc        *usecase.UseCases
}

func newFixture(t *testing.T, response string) *fixture {
	t.Helper()
	f := &fixture{
		repo: memory.New(),
		generator: &mockGenerator{
			generateFn: func(ctx context.Context, messages []model.Message, opts model.GenerateOptions) (string, error) {
				return response, nil
			},
		},
		vision:    &mockVision{},
		retrieval: &mockRetrieval{},
		extractor: &mockExtractor{},
	}
	f.uc = usecase.New(f.repo, f.generator, f.vision, f.retrieval, f.extractor)
	return f
}

// writeECG writes a placeholder image file and returns its path.
func writeECG(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	gt.NoError(t, os.WriteFile(path, []byte("image-bytes-"+name), 0o600)).Required()
	return path
}

func textOf(msg model.Message) string {
	for _, p := range msg.Parts {
		if p.Type == model.PartTypeText {
			return p.Text
		}
	}
	return ""
}
