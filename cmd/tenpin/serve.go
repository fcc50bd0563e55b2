package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Black-And-White-Club/tenpin/app"
	"github.com/Black-And-White-Club/tenpin/config"
	"github.com/urfave/cli/v2"
)

func newServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the games HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yaml",
				Usage:   "path to the configuration `FILE`",
				EnvVars: []string{"CONFIG_PATH"},
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadConfig(c.String("config"))
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			application, err := app.NewApp(ctx, cfg, os.Stdout)
			if err != nil {
				return err
			}
			return application.Run(ctx)
		},
	}
}
