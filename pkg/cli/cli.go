package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/NandhaKishorM/electron-app-heart/pkg/cli/config"
	"github.com/NandhaKishorM/electron-app-heart/pkg/utils/errutil"
	"github.com/NandhaKishorM/electron-app-heart/pkg/utils/logging"
)

func Run(ctx context.Context, args []string, version string) error {
	var loggerCfg config.Logger
	var sentryCfg config.Sentry
	var closers []func()

	flags := append(loggerCfg.Flags(), sentryCfg.Flags()...)

	app := &cli.Command{
		Name:    "ecgassist",
		Usage:   "ECG and lab report clinical assistant backed by a local llama.cpp server",
		Version: version,
		Flags:   flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			f, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closers = append(closers, f)

			flush, err := sentryCfg.Configure(version)
			if err != nil {
				return ctx, err
			}
			closers = append(closers, flush)

			logging.Default().Info("Starting ecgassist",
				"version", version,
				"logger", loggerCfg,
				"sentry", sentryCfg.LogAttrs(),
			)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdServe(),
			cmdAnalyze(),
			cmdChat(),
			cmdHealth(),
			cmdSettings(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		return errutil.Handle(ctx, err, "failed to run app")
	}

	return nil
}
