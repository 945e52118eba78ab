package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/0xalexb/hjarta-exhale/conf"
	"github.com/0xalexb/hjarta-exhale/config"
	filefetcher "github.com/0xalexb/hjarta-exhale/config/fetcher/file"
	"github.com/0xalexb/hjarta-exhale/config/parser"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
)

func newCheckCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Aliases:   []string{"c"},
		Usage:     "validate one or more settings files",
		ArgsUsage: "FILE...",
		Flags:     []cli.Flag{sectionFlag()},
		Action:    checkMain,
	}
}

// loadSettings reads, decodes and validates one settings file.
func loadSettings(path, section string) (*conf.Document, error) {
	settingsParser, err := parser.ForFile(path)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	fetcher, err := filefetcher.NewFetcher(path)()
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return config.Provider(&conf.Document{}, section)(settingsParser, fetcher) //nolint:wrapcheck
}

type statusPrinter struct {
	w    io.Writer
	ok   *color.Color
	fail *color.Color
}

func newStatusPrinter(w io.Writer) *statusPrinter {
	printer := &statusPrinter{
		w:    w,
		ok:   color.New(color.FgGreen, color.Bold),
		fail: color.New(color.FgRed, color.Bold),
	}

	if !isTerminal(w) {
		printer.ok.DisableColor()
		printer.fail.DisableColor()
	}

	return printer
}

func (p *statusPrinter) valid(path string, validated *conf.Validated) {
	_, _ = p.ok.Fprint(p.w, "ok")
	_, _ = fmt.Fprintf(p.w, "   %s (%d project(s))\n", path, len(validated.Projects))
}

func (p *statusPrinter) invalid(path string, err error) {
	_, _ = p.fail.Fprint(p.w, "FAIL")
	_, _ = fmt.Fprintf(p.w, " %s: %v\n", path, err)
}

func checkMain(c *cli.Context) error {
	paths := c.Args().Slice()
	if len(paths) == 0 {
		return cli.Exit("check: at least one FILE is required", 2)
	}

	printer := newStatusPrinter(c.App.Writer)

	var errs error

	for _, path := range paths {
		document, err := loadSettings(path, c.String(flagSection))
		if err != nil {
			attrs := []any{slog.String("file", path), slog.String("error", err.Error())}
			if confErr, ok := conf.AsError(err); ok {
				attrs = append(attrs, slog.String("kind", string(confErr.Kind)), slog.String("setting", confErr.Setting))
			}

			slog.Warn("settings invalid", attrs...)
			printer.invalid(path, err)

			errs = multierr.Append(errs, fmt.Errorf("%s: %w", path, err))

			continue
		}

		slog.Debug("settings valid", slog.String("file", path), slog.Any("projects", document.Validated.ProjectNames()))
		printer.valid(path, document.Validated)
	}

	if errs != nil {
		return cli.Exit(fmt.Sprintf("%d of %d settings file(s) invalid", len(multierr.Errors(errs)), len(paths)), 1)
	}

	return nil
}
