package config

import (
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hospitalops/pulse/pkg/client/push"
	"github.com/hospitalops/pulse/pkg/client/rest"
)

// API carries the client-side connection settings used by commands that
// talk to a running server.
type API struct {
	baseURL string
	token   string
}

func (x *API) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "api-url",
			Category:    "api",
			Usage:       "Base URL of the server (e.g. http://localhost:8080)",
			Value:       "http://localhost:8080",
			Sources:     cli.EnvVars("PULSE_API_URL"),
			Destination: &x.baseURL,
		},
		&cli.StringFlag{
			Name:        "api-token",
			Category:    "api",
			Usage:       "Bearer token for the server",
			Sources:     cli.EnvVars("PULSE_API_TOKEN"),
			Destination: &x.token,
		},
	}
}

func (x API) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("base_url", x.baseURL),
		slog.Bool("token_set", x.token != ""),
	)
}

func (x *API) RESTClient() *rest.Client {
	return rest.New(strings.TrimRight(x.baseURL, "/")+"/api", rest.WithToken(x.token))
}

func (x *API) PushChannel(opts ...push.Option) *push.Channel {
	wsURL := strings.TrimRight(x.baseURL, "/")
	wsURL = strings.Replace(wsURL, "https://", "wss://", 1)
	wsURL = strings.Replace(wsURL, "http://", "ws://", 1)
	return push.New(wsURL+"/ws/alerts", x.token, opts...)
}
