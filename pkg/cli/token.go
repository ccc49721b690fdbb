package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hospitalops/pulse/pkg/domain/model/auth"
	"github.com/hospitalops/pulse/pkg/domain/types"
	"github.com/hospitalops/pulse/pkg/utils/clock"
)

func cmdToken() *cli.Command {
	var (
		secret string
		userID string
		name   string
	)

	return &cli.Command{
		Name:  "token",
		Usage: "Issue a bearer token for a dashboard user",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "auth-secret",
				Usage:       "HMAC secret of the server",
				Required:    true,
				Sources:     cli.EnvVars("PULSE_AUTH_SECRET"),
				Destination: &secret,
			},
			&cli.StringFlag{
				Name:        "user",
				Aliases:     []string{"u"},
				Usage:       "User ID",
				Required:    true,
				Destination: &userID,
			},
			&cli.StringFlag{
				Name:        "name",
				Aliases:     []string{"n"},
				Usage:       "Display name",
				Destination: &name,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			token, err := auth.IssueToken(types.UserID(userID), name, []byte(secret), clock.Now(ctx))
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}
}
