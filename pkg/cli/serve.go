package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	httpctrl "github.com/NandhaKishorM/electron-app-heart/pkg/controller/http"
	"github.com/NandhaKishorM/electron-app-heart/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var apiToken string
	var pc pipelineConfig

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       "127.0.0.1:8000",
			Sources:     cli.EnvVars("ECGASSIST_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "api-token",
			Usage:       "Bearer token required on /api routes (disabled when empty)",
			Sources:     cli.EnvVars("ECGASSIST_API_TOKEN"),
			Destination: &apiToken,
		},
	}
	flags = append(flags, pc.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
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

			var httpOpts []httpctrl.Options
			if apiToken != "" {
				httpOpts = append(httpOpts, httpctrl.WithAPIToken(apiToken))
				logging.Default().Info("API token authentication enabled")
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(pl.uc, httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
