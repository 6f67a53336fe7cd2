package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/NandhaKishorM/electron-app-heart/pkg/cli/config"
	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/interfaces"
	"github.com/NandhaKishorM/electron-app-heart/pkg/service/document"
	"github.com/NandhaKishorM/electron-app-heart/pkg/service/llama"
	"github.com/NandhaKishorM/electron-app-heart/pkg/service/vision"
	"github.com/NandhaKishorM/electron-app-heart/pkg/service/worker"
	"github.com/NandhaKishorM/electron-app-heart/pkg/usecase"
	"github.com/NandhaKishorM/electron-app-heart/pkg/utils/logging"
	"github.com/NandhaKishorM/electron-app-heart/pkg/utils/safe"
)

// pipelineConfig gathers the flags every case command shares.
type pipelineConfig struct {
	repo      config.Repository
	llama     config.Llama
	embedding config.Embedding
	gemini    config.Gemini
	vision    config.Vision
	worker    config.Worker
}

func (p *pipelineConfig) Flags() []cli.Flag {
	var flags []cli.Flag
	flags = append(flags, p.repo.Flags()...)
	flags = append(flags, p.llama.Flags()...)
	flags = append(flags, p.vision.Flags()...)
	flags = append(flags, p.embedding.Flags()...)
	flags = append(flags, p.gemini.Flags()...)
	flags = append(flags, p.worker.Flags()...)
	return flags
}

// pipeline is the wired case pipeline. Close releases everything build created.
type pipeline struct {
	repo      interfaces.Repository
	client    *llama.Client
	vision    *worker.Vision
	retrieval *worker.Retrieval
	uc        *usecase.UseCases

	closers []func()
}

func (p *pipelineConfig) build(ctx context.Context) (*pipeline, error) {
	logger := logging.From(ctx)
	logger.Info("Pipeline configuration",
		slog.Any("repository", p.repo.LogAttrs()),
		slog.Any("llama", p.llama.LogAttrs()),
		slog.Any("vision", p.vision.LogAttrs()),
		slog.Any("embedding", p.embedding.LogAttrs()),
		slog.Any("worker", p.worker.LogAttrs()),
	)

	client, generator, err := p.llama.Configure()
	if err != nil {
		return nil, err
	}
	workerOpts, err := p.worker.Configure()
	if err != nil {
		return nil, err
	}
	encoderLoader, err := p.embedding.Configure(&p.gemini)
	if err != nil {
		return nil, err
	}

	pl := &pipeline{client: client}

	visionLoader, store, closeStore, err := p.vision.Configure(ctx)
	if err != nil {
		return nil, err
	}
	pl.closers = append(pl.closers, closeStore)

	repo, err := p.repo.Configure(ctx)
	if err != nil {
		pl.Close(ctx)
		return nil, goerr.Wrap(err, "failed to initialize repository")
	}
	pl.repo = repo
	pl.closers = append(pl.closers, func() { safe.Close(ctx, repo) })

	pl.vision = worker.NewVision(visionLoader, vision.NewAnalyzer(store), workerOpts...)
	pl.retrieval = worker.NewRetrieval(encoderLoader, workerOpts...)
	pl.closers = append(pl.closers,
		func() { safe.Close(ctx, pl.vision) },
		func() { safe.Close(ctx, pl.retrieval) },
	)

	pl.uc = usecase.New(repo, generator, pl.vision, pl.retrieval, document.NewExtractor())
	return pl, nil
}

// waitBackend blocks until the generation backend reports ready unless the
// check is disabled.
func (p *pipelineConfig) waitBackend(ctx context.Context, client *llama.Client) error {
	if p.llama.SkipReadyCheck() {
		logging.From(ctx).Warn("Skipping generation backend readiness check")
		return nil
	}
	return client.WaitReady(ctx, p.llama.ReadyInterval(), p.llama.ReadyTimeout())
}

// init loads both workers concurrently. Any failure is fatal to the caller.
func (pl *pipeline) init(ctx context.Context) error {
	var eg errgroup.Group
	eg.Go(func() error { return pl.vision.Init(ctx) })
	eg.Go(func() error { return pl.retrieval.Init(ctx) })
	return eg.Wait()
}

// Close runs the registered closers in reverse order.
func (pl *pipeline) Close(ctx context.Context) {
	for i := len(pl.closers) - 1; i >= 0; i-- {
		pl.closers[i]()
	}
	pl.closers = nil
	logging.From(ctx).Debug("Pipeline closed")
}
