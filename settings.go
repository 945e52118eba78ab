package exhale

import (
	"log/slog"

	"github.com/0xalexb/hjarta-exhale/conf"
	"github.com/0xalexb/hjarta-exhale/config"
	filefetcher "github.com/0xalexb/hjarta-exhale/config/fetcher/file"
	"github.com/0xalexb/hjarta-exhale/config/parser"

	"go.uber.org/fx"
)

// NewSettingsModule creates an Fx module that reads the settings file at path,
// validates it and provides the resulting *conf.Document and *conf.Validated.
// A validation failure aborts application start with the validator message.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewSettingsModule(path, section string) fx.Option {
	settingsParser, err := parser.ForFile(path)
	if err != nil {
		return fx.Error(err)
	}

	return fx.Module("settings",
		fx.Provide(
			fx.Private,
			func() config.Parser { return settingsParser },
			fx.Annotate(filefetcher.NewFetcher(path), fx.As(new(config.DataFetcher))),
		),
		fx.Provide(config.Provider(&conf.Document{}, section)),
		fx.Provide(func(document *conf.Document) *conf.Validated {
			return document.Validated
		}),
		fx.Invoke(logSettings),
	)
}

func logSettings(logger *slog.Logger, validated *conf.Validated) {
	logger.Info("settings valid",
		slog.Any("projects", validated.ProjectNames()),
		slog.String("default_project", validated.DefaultProject),
		slog.Any("extensions", validated.Extensions),
		slog.Bool("single_project", validated.SingleProject))
}
