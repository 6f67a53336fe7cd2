package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/NandhaKishorM/electron-app-heart/pkg/cli/config"
	"github.com/NandhaKishorM/electron-app-heart/pkg/usecase"
	"github.com/NandhaKishorM/electron-app-heart/pkg/utils/safe"
)

func cmdSettings() *cli.Command {
	var repoCfg config.Repository

	// withSettings opens the settings store for one subcommand
	withSettings := func(fn func(ctx context.Context, c *cli.Command, uc *usecase.SettingsUseCase) error) cli.ActionFunc {
		return func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)
			return fn(ctx, c, usecase.NewSettingsUseCase(repo.Setting()))
		}
	}

	return &cli.Command{
		Name:  "settings",
		Usage: "Read and write generation settings",
		Flags: repoCfg.Flags(),
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Print one setting",
				ArgsUsage: "<key>",
				Action: withSettings(func(ctx context.Context, c *cli.Command, uc *usecase.SettingsUseCase) error {
					s, err := uc.Get(ctx, c.Args().First())
					if err != nil {
						return err
					}
					fmt.Fprintln(os.Stdout, s.Value)
					return nil
				}),
			},
			{
				Name:      "set",
				Usage:     "Store one setting",
				ArgsUsage: "<key> <value>",
				Action: withSettings(func(ctx context.Context, c *cli.Command, uc *usecase.SettingsUseCase) error {
					if c.Args().Len() != 2 {
						return goerr.Wrap(usecase.ErrInvalidSetting, "usage: settings set <key> <value>")
					}
					s, err := uc.Set(ctx, c.Args().Get(0), c.Args().Get(1))
					if err != nil {
						return err
					}
					return renderJSON(os.Stdout, s)
				}),
			},
			{
				Name:  "list",
				Usage: "Print all settings and the resolved generation parameters",
				Action: withSettings(func(ctx context.Context, c *cli.Command, uc *usecase.SettingsUseCase) error {
					settings, err := uc.List(ctx)
					if err != nil {
						return err
					}
					return renderJSON(os.Stdout, map[string]any{
						"settings":   settings,
						"generation": uc.Generation(ctx),
					})
				}),
			},
		},
	}
}
