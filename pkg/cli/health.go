package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/NandhaKishorM/electron-app-heart/pkg/cli/config"
	"github.com/NandhaKishorM/electron-app-heart/pkg/repository/memory"
	"github.com/NandhaKishorM/electron-app-heart/pkg/usecase"
)

func cmdHealth() *cli.Command {
	var llamaCfg config.Llama

	return &cli.Command{
		Name:  "health",
		Usage: "Check whether the generation backend is ready",
		Flags: llamaCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			client, generator, err := llamaCfg.Configure()
			if err != nil {
				return err
			}

			uc := usecase.New(memory.New(), generator, nil, nil, nil, usecase.WithHealthChecker(client))
			report := uc.Health.Check(ctx)
			if err := renderJSON(os.Stdout, report); err != nil {
				return err
			}

			if !report.Ready() {
				return goerr.New("generation backend is not ready", goerr.V("status", report.Backend))
			}
			return nil
		},
	}
}
