package main

import (
	"fmt"

	exhale "github.com/0xalexb/hjarta-exhale"
	"github.com/0xalexb/hjarta-exhale/listener"

	"github.com/urfave/cli/v2"
)

func newServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve the validation API over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "address",
				Aliases: []string{"a"},
				Value:   listener.DefaultAddress,
				Usage:   "listen address",
				EnvVars: []string{"EXHALE_ADDRESS"},
			},
			&cli.Int64Flag{
				Name:  "max-request-bytes",
				Value: listener.DefaultMaxRequestBytes,
				Usage: "largest accepted request body",
			},
			&cli.DurationFlag{
				Name:  "request-timeout",
				Value: listener.DefaultRequestTimeout,
				Usage: "request handling deadline",
			},
			&cli.StringFlag{
				Name:  "settings",
				Usage: "settings file validated before the listener starts",
			},
			sectionFlag(),
		},
		Action: serveMain,
	}
}

func serveMain(c *cli.Context) error {
	logCfg := loggerConfig(c)

	opts := []exhale.Option{
		exhale.WithLogLevel(logCfg.Level),
		exhale.WithLogFormat(logCfg.Format),
		exhale.WithLogWriter(c.App.ErrWriter),
		exhale.WithValidationListener("validate",
			listener.WithAddress(c.String("address")),
			listener.WithMaxRequestBytes(c.Int64("max-request-bytes")),
			listener.WithRequestTimeout(c.Duration("request-timeout")),
		),
	}

	if settings := c.String("settings"); settings != "" {
		opts = append(opts, exhale.WithSettingsFile(settings, c.String(flagSection)))
	}

	app := exhale.NewApp(opts...)

	err := app.Start()
	if err != nil {
		return cli.Exit(fmt.Sprintf("serve: %v", err), 1)
	}

	waitErr := app.Wait(c.Context)

	stopErr := app.Stop()
	if waitErr != nil {
		return waitErr //nolint:wrapcheck
	}

	return stopErr //nolint:wrapcheck
}
