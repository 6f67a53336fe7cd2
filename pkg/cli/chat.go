package cli

import (
	"context"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/NandhaKishorM/electron-app-heart/pkg/cli/config"
	"github.com/NandhaKishorM/electron-app-heart/pkg/usecase"
	"github.com/NandhaKishorM/electron-app-heart/pkg/utils/safe"
)

func cmdChat() *cli.Command {
	var repoCfg config.Repository
	var llamaCfg config.Llama

	var flags []cli.Flag
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, llamaCfg.Flags()...)

	return &cli.Command{
		Name:      "chat",
		Usage:     "Send one message to the generation backend",
		ArgsUsage: "<message>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			text := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if text == "" {
				return goerr.Wrap(usecase.ErrEmptyRequest, "message is required")
			}

			_, generator, err := llamaCfg.Configure()
			if err != nil {
				return err
			}
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			uc := usecase.New(repo, generator, nil, nil, nil)
			result, err := uc.Case.Chat(ctx, text)
			if err != nil {
				return err
			}

			renderResult(os.Stdout, result)
			if result.Error != "" {
				return goerr.New("chat request failed", goerr.V("error", result.Error))
			}
			return nil
		},
	}
}
