// Package logging builds the process logger on log/slog.
// JSON output is the default. The "text" format uses github.com/lmittmann/tint and
// adds color only when writing to a terminal.
package logging
