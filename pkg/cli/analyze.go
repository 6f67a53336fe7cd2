package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
	"github.com/NandhaKishorM/electron-app-heart/pkg/usecase"
)

func cmdAnalyze() *cli.Command {
	var ecgPaths []string
	var reportPaths []string
	var query string
	var asJSON bool
	var pc pipelineConfig

	flags := []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "ecg",
			Aliases:     []string{"e"},
			Usage:       "ECG image path (repeatable, one case per image)",
			Destination: &ecgPaths,
		},
		&cli.StringSliceFlag{
			Name:        "report",
			Aliases:     []string{"r"},
			Usage:       "Medical report path, PDF or text (repeatable)",
			Destination: &reportPaths,
		},
		&cli.StringFlag{
			Name:        "query",
			Aliases:     []string{"q"},
			Usage:       "Clinician question sent with the case",
			Value:       usecase.AnalyzeCaseQuery,
			Destination: &query,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Print results as JSON",
			Destination: &asJSON,
		},
	}
	flags = append(flags, pc.Flags()...)

	return &cli.Command{
		Name:    "analyze",
		Aliases: []string{"a"},
		Usage:   "Analyze ECG images and medical reports",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			req := model.CaseRequest{
				ECGPaths:    ecgPaths,
				ReportPaths: reportPaths,
				UserQuery:   query,
			}
			if req.IsChat() {
				return goerr.Wrap(usecase.ErrEmptyRequest, "at least one --ecg or --report is required")
			}

			pl, err := pc.build(ctx)
			if err != nil {
				return err
			}
			defer pl.Close(ctx)

			if err := pc.waitBackend(ctx, pl.client); err != nil {
				return err
			}
			if err := pl.init(ctx); err != nil {
				return err
			}

			var progress usecase.ProgressFunc
			if !asJSON {
				progress = func(done, total int, r *model.CaseResult) {
					renderProgress(os.Stderr, done, total, r)
				}
			}

			results, err := pl.uc.Case.Analyze(ctx, req, progress)
			if err != nil {
				return err
			}

			if asJSON {
				return renderJSON(os.Stdout, map[string]any{"results": results})
			}
			for _, r := range results {
				renderResult(os.Stdout, r)
			}
			return nil
		},
	}
}
