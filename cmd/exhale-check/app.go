package main

import (
	"io"
	"log/slog"
	"os"

	exhale "github.com/0xalexb/hjarta-exhale"
	"github.com/0xalexb/hjarta-exhale/logging"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
)

const (
	flagLogLevel  = "log-level"
	flagLogFormat = "log-format"
	flagSection   = "section"
)

// newApp builds the command tree writing results to stdout and logs to stderr.
// Exit codes travel back to main as cli.ExitCoder errors.
func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "exhale-check",
		Usage:     "validate exhale documentation settings",
		Version:   exhale.VersionString(),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagLogLevel,
				Value:   "info",
				Usage:   "log level: debug, info, warn or error",
				EnvVars: []string{"EXHALE_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    flagLogFormat,
				Value:   logging.FormatJSON,
				Usage:   "log format: json or text",
				EnvVars: []string{"EXHALE_LOG_FORMAT"},
			},
		},
		Before: func(c *cli.Context) error {
			slog.SetDefault(logging.NewLogger(loggerConfig(c), c.App.ErrWriter))

			return nil
		},
		Commands: []*cli.Command{
			newCheckCommand(),
			newShowCommand(),
			newServeCommand(),
		},
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

func loggerConfig(c *cli.Context) logging.LoggerConfig {
	return logging.LoggerConfig{
		Level:  c.String(flagLogLevel),
		Format: c.String(flagLogFormat),
	}
}

func sectionFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    flagSection,
		Aliases: []string{"s"},
		Usage:   "colon separated path to the settings inside the file, e.g. tool:exhale",
	}
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)

	return ok && isatty.IsTerminal(file.Fd())
}
