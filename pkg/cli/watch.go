package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/hospitalops/pulse/pkg/cli/config"
	"github.com/hospitalops/pulse/pkg/client/cache"
	"github.com/hospitalops/pulse/pkg/client/push"
	"github.com/hospitalops/pulse/pkg/utils/logging"
)

// cmdWatch runs a headless dashboard session: seed the cache over REST,
// follow the push stream, and print every change.
func cmdWatch() *cli.Command {
	var apiCfg config.API

	return &cli.Command{
		Name:  "watch",
		Usage: "Follow the live alert stream",
		Flags: apiCfg.Flags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger := logging.From(ctx)

			restClient := apiCfg.RESTClient()
			channel := apiCfg.PushChannel(push.WithOnStale(func() {
				logger.Warn("live updates are stale, refresh recommended")
			}))
			defer channel.Disconnect()

			c := cache.New(restClient, channel, cache.WithOnChange(func(snap cache.Snapshot) {
				if snap.Loading {
					return
				}
				if snap.Err != nil {
					fmt.Fprintf(os.Stderr, "error: %v\n", snap.Err)
					return
				}
				fmt.Printf("--- %d alert(s), %d unread ---\n", len(snap.Alerts), snap.UnreadCount)
				for _, a := range snap.Alerts {
					printAlert(a)
				}
			}))
			defer c.Close()

			if err := c.Start(ctx); err != nil {
				return err
			}
			if err := channel.Connect(ctx); err != nil {
				return err
			}

			logger.Info("watching alert stream, Ctrl-C to stop")

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			select {
			case <-sigCh:
			case <-ctx.Done():
			}
			return nil
		},
	}
}
