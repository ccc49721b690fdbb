package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/hospitalops/pulse/pkg/service/analytics"
)

type Analytics struct {
	endpoint string
}

func (x *Analytics) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "analytics-url",
			Category:    "analytics",
			Usage:       "Base URL of the analytics service (empty disables optimization)",
			Sources:     cli.EnvVars("PULSE_ANALYTICS_URL"),
			Destination: &x.endpoint,
		},
	}
}

func (x Analytics) LogValue() slog.Value {
	return slog.GroupValue(slog.String("endpoint", x.endpoint))
}

// Configure returns nil when no endpoint is set; the optimize API then
// reports itself unavailable.
func (x *Analytics) Configure() *analytics.Client {
	if x.endpoint == "" {
		return nil
	}
	return analytics.New(x.endpoint)
}
