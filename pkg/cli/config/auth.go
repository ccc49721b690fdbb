package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

type Auth struct {
	secret string
	noAuth bool
}

func (x *Auth) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "auth-secret",
			Category:    "auth",
			Usage:       "HMAC secret for bearer tokens",
			Sources:     cli.EnvVars("PULSE_AUTH_SECRET"),
			Destination: &x.secret,
		},
		&cli.BoolFlag{
			Name:        "no-auth",
			Category:    "auth",
			Usage:       "Disable authentication (development only)",
			Sources:     cli.EnvVars("PULSE_NO_AUTH"),
			Destination: &x.noAuth,
		},
	}
}

func (x Auth) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("secret_set", x.secret != ""),
		slog.Bool("no_auth", x.noAuth),
	)
}

func (x *Auth) Secret() []byte {
	return []byte(x.secret)
}

func (x *Auth) NoAuth() bool {
	return x.noAuth
}

func (x *Auth) Validate() error {
	if x.secret == "" && !x.noAuth {
		return goerr.New("auth-secret is required unless no-auth is set")
	}
	return nil
}
