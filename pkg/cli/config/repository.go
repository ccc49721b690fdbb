package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/hospitalops/pulse/pkg/domain/interfaces"
	"github.com/hospitalops/pulse/pkg/repository/memory"
	"github.com/hospitalops/pulse/pkg/repository/redis"
)

// Repository selects the alert store backend: in-memory for development,
// Redis for deployments where dashboards share state across instances.
type Repository struct {
	backend       string
	redisAddr     string
	redisPassword string
	redisDB       int
}

func (x *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository",
			Category:    "repository",
			Usage:       "Repository backend [memory|redis]",
			Value:       "memory",
			Sources:     cli.EnvVars("PULSE_REPOSITORY"),
			Destination: &x.backend,
		},
		&cli.StringFlag{
			Name:        "redis-addr",
			Category:    "repository",
			Usage:       "Redis address (host:port)",
			Value:       "localhost:6379",
			Sources:     cli.EnvVars("PULSE_REDIS_ADDR"),
			Destination: &x.redisAddr,
		},
		&cli.StringFlag{
			Name:        "redis-password",
			Category:    "repository",
			Usage:       "Redis password",
			Sources:     cli.EnvVars("PULSE_REDIS_PASSWORD"),
			Destination: &x.redisPassword,
		},
		&cli.IntFlag{
			Name:        "redis-db",
			Category:    "repository",
			Usage:       "Redis database number",
			Sources:     cli.EnvVars("PULSE_REDIS_DB"),
			Destination: &x.redisDB,
		},
	}
}

func (x Repository) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", x.backend),
		slog.String("redis_addr", x.redisAddr),
		slog.Int("redis_db", x.redisDB),
	)
}

func (x *Repository) Configure(ctx context.Context) (interfaces.Repository, error) {
	switch x.backend {
	case "memory", "":
		return memory.New(), nil
	case "redis":
		return redis.New(ctx, x.redisAddr, x.redisPassword, x.redisDB)
	default:
		return nil, goerr.New("unknown repository backend", goerr.V("backend", x.backend))
	}
}
