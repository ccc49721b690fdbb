package cli

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/hospitalops/pulse/pkg/cli/config"
	server "github.com/hospitalops/pulse/pkg/controller/http"
	websocket_controller "github.com/hospitalops/pulse/pkg/controller/websocket"
	"github.com/hospitalops/pulse/pkg/usecase"
	"github.com/hospitalops/pulse/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var (
		addr         string
		repoCfg      config.Repository
		authCfg      config.Auth
		sentryCfg    config.Sentry
		analyticsCfg config.Analytics
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Aliases:     []string{"a"},
				Sources:     cli.EnvVars("PULSE_ADDR"),
				Usage:       "Listen address (default: 127.0.0.1:8080)",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
		},
		repoCfg.Flags(),
		authCfg.Flags(),
		sentryCfg.Flags(),
		analyticsCfg.Flags(),
	)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Run the dashboard server",
		Flags:   flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logging.Default().Info("starting server",
				"addr", addr,
				"repository", repoCfg,
				"auth", authCfg,
				"sentry", sentryCfg,
				"analytics", analyticsCfg,
			)

			if err := authCfg.Validate(); err != nil {
				return err
			}
			if err := sentryCfg.Configure(); err != nil {
				return err
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return err
			}

			wsHub := websocket_controller.NewHub(ctx)
			go wsHub.Run()

			ucOptions := []usecase.Option{
				usecase.WithNotifier(wsHub),
			}
			if analyticsClient := analyticsCfg.Configure(); analyticsClient != nil {
				ucOptions = append(ucOptions, usecase.WithAnalytics(analyticsClient))
			}
			uc := usecase.New(repo, ucOptions...)

			wsHandler := websocket_controller.NewHandler(wsHub, uc)
			httpServer := http.Server{
				Addr: addr,
				Handler: server.New(uc,
					server.WithAuthSecret(authCfg.Secret()),
					server.WithNoAuthorization(authCfg.NoAuth()),
					server.WithWebSocketHandler(wsHandler),
				),
				ReadTimeout:       30 * time.Second,
				ReadHeaderTimeout: 10 * time.Second,
				BaseContext: func(l net.Listener) context.Context {
					return ctx
				},
			}

			errCh := make(chan error, 1)
			go func() {
				defer close(errCh)
				if err := httpServer.ListenAndServe(); err != nil {
					errCh <- err
				}
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case <-sigCh:
				if err := wsHub.Close(); err != nil {
					logging.From(ctx).Error("failed to close WebSocket hub", "error", err)
				}

				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return httpServer.Shutdown(ctx)
			}
		},
	}
}
