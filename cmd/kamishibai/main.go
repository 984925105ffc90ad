// @title			Kamishibai API
// @version		1.0
// @description	Kamishibai boards: RED/GREEN check cards with daily automatic reset and an audit trail.
// @BasePath		/api/v1

package main

import (
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/mtlprog/kamishibai/internal/config"
	"github.com/mtlprog/kamishibai/internal/events"
	"github.com/mtlprog/kamishibai/internal/logger"
)

func main() {
	if err := loadEnvFile(os.Args[1:]); err != nil {
		slog.Error("failed to load env file", "error", err)
		os.Exit(1)
	}

	app := &cli.App{
		Name:  "kamishibai",
		Usage: "Kamishibai boards with daily card resets",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Value:   logger.FormatJSON,
				Usage:   "Log format (json, text)",
				EnvVars: []string{"LOG_FORMAT"},
			},
			&cli.StringFlag{
				Name:    "env-file",
				Usage:   "Dotenv file loaded before flags are resolved (default .env if present)",
				EnvVars: []string{"ENV_FILE"},
			},
			&cli.StringFlag{
				Name:    "store",
				Value:   config.DefaultStore,
				Usage:   "Store backend (postgres, memory)",
				EnvVars: []string{"STORE"},
			},
			&cli.StringFlag{
				Name:    "database-url",
				Aliases: []string{"d"},
				Value:   config.DefaultDatabaseURL,
				Usage:   "PostgreSQL database URL",
				EnvVars: []string{"DATABASE_URL"},
			},
			&cli.DurationFlag{
				Name:    "lock-timeout",
				Value:   config.DefaultLockTimeout,
				Usage:   "How long a card update waits for a concurrent one",
				EnvVars: []string{"LOCK_TIMEOUT"},
			},
			&cli.StringFlag{
				Name:    "timezone",
				Value:   config.DefaultTimezone,
				Usage:   "IANA timezone reset times are evaluated in",
				EnvVars: []string{"TZ_NAME"},
			},
			&cli.StringFlag{
				Name:    "nats-url",
				Usage:   "NATS server URL for transition notifications (disabled when empty)",
				EnvVars: []string{"NATS_URL"},
			},
			&cli.StringFlag{
				Name:    "nats-token",
				Usage:   "NATS auth token",
				EnvVars: []string{"NATS_TOKEN"},
			},
			&cli.StringFlag{
				Name:    "nats-subject",
				Value:   events.DefaultSubject,
				Usage:   "NATS subject transitions are published on",
				EnvVars: []string{"NATS_SUBJECT"},
			},
		},
		Before: func(c *cli.Context) error {
			logger.Setup(logger.ParseLevel(c.String("log-level")), c.String("log-format"), os.Stdout)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the web server and the reset scheduler",
				Flags:  serveFlags(),
				Action: runServe,
			},
			{
				Name:   "sweep",
				Usage:  "Reset every card that is due and exit",
				Action: runSweep,
			},
			{
				Name:   "migrate",
				Usage:  "Apply database migrations and exit",
				Action: runMigrate,
			},
		},
		Action: runServe,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func serveFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "port",
			Aliases: []string{"p"},
			Value:   config.DefaultPort,
			Usage:   "HTTP server port",
			EnvVars: []string{"PORT"},
		},
		&cli.DurationFlag{
			Name:    "sweep-interval",
			Value:   config.DefaultSweepInterval,
			Usage:   "How often due card resets are swept",
			EnvVars: []string{"SWEEP_INTERVAL"},
		},
		&cli.IntFlag{
			Name:    "rate-limit",
			Value:   config.DefaultRateLimit,
			Usage:   "API requests per minute per client IP (0 disables)",
			EnvVars: []string{"RATE_LIMIT"},
		},
		&cli.StringSliceFlag{
			Name:    "cors-origins",
			Usage:   "Origins allowed to call the API from a browser",
			EnvVars: []string{"CORS_ORIGINS"},
		},
	}
}
