package main

import (
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/urfave/cli/v2"
)

const (
	outputYAML = "yaml"
	outputJSON = "json"
)

func newShowCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "print the effective settings after validation and auto-population",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			sectionFlag(),
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   outputYAML,
				Usage:   "output format: yaml or json",
			},
		},
		Action: showMain,
	}
}

func showMain(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("show: exactly one FILE is required", 2)
	}

	document, err := loadSettings(c.Args().First(), c.String(flagSection))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	var out []byte

	switch output := c.String("output"); output {
	case outputYAML:
		out, err = yaml.Marshal(document.Validated)
	case outputJSON:
		out, err = json.MarshalIndent(document.Validated, "", "  ")
		out = append(out, '\n')
	default:
		return cli.Exit(fmt.Sprintf("show: unknown output %q, want yaml or json", output), 2)
	}

	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	_, err = c.App.Writer.Write(out)

	return err //nolint:wrapcheck
}
