package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

const validSettings = `
exhale_args:
  containmentFolder: ./api
  rootFileName: library_root.rst
  rootFileTitle: Library API
  doxygenStripFromPath: ..
breathe_projects:
  c_maths: ./_doxygen/xml
extensions:
  - sphinx.ext.mathjax
  - exhale
`

const pyproject = `
[tool.exhale.exhale_projects.lib]
containmentFolder = "./lib_api"
rootFileName = "lib_root.rst"
rootFileTitle = "Lib"
doxygenStripFromPath = ".."

[tool.exhale.breathe_projects]
lib = "./_doxygen/lib/xml"
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

// run executes the CLI and returns stdout, stderr and the exit code.
func run(t *testing.T, ctx context.Context, args ...string) (string, string, int) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	err := newApp(&stdout, &stderr).RunContext(ctx, append([]string{"exhale-check"}, args...))

	code := 0

	if err != nil {
		code = 1

		var exitErr cli.ExitCoder
		if assert.ErrorAs(t, err, &exitErr) {
			code = exitErr.ExitCode()
		}

		stderr.WriteString(err.Error())
	}

	return stdout.String(), stderr.String(), code
}

func TestCheck(t *testing.T) { //nolint:paralleltest // the CLI replaces the global slog default
	dir := t.TempDir()
	valid := writeFile(t, dir, "exhale.yaml", validSettings)
	invalid := writeFile(t, dir, "broken.yml", "exhale_args: {containmentFolder: ./api}\nexhale_projects: {lib: {}}\n")
	toml := writeFile(t, dir, "pyproject.toml", pyproject)

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout []string
		wantStderr []string
	}{
		{
			name:       "single valid file",
			args:       []string{"check", valid},
			wantStdout: []string{"ok   " + valid + " (1 project(s))"},
		},
		{
			name:       "toml section",
			args:       []string{"check", "--section", "tool:exhale", toml},
			wantStdout: []string{"ok   " + toml},
		},
		{
			name:     "one invalid file among several",
			args:     []string{"--log-format", "text", "check", valid, invalid},
			wantCode: 1,
			wantStdout: []string{
				"ok   " + valid,
				"FAIL " + invalid + ": `exhale_args` and `exhale_projects` may not both be specified.",
			},
			wantStderr: []string{"settings invalid", "kind=ConfigExclusivityError", "1 of 2 settings file(s) invalid"},
		},
		{
			name:       "unsupported extension",
			args:       []string{"check", filepath.Join(dir, "conf.py")},
			wantCode:   1,
			wantStdout: []string{"unknown format"},
		},
		{
			name:       "missing file",
			args:       []string{"check", filepath.Join(dir, "missing.yaml")},
			wantCode:   1,
			wantStdout: []string{"FAIL", "stat file"},
		},
		{
			name:       "no files",
			args:       []string{"check"},
			wantCode:   2,
			wantStderr: []string{"at least one FILE is required"},
		},
	}

	for _, testInfo := range tests {
		t.Run(testInfo.name, func(t *testing.T) {
			stdout, stderr, code := run(t, context.Background(), testInfo.args...)

			assert.Equal(t, testInfo.wantCode, code, stderr)

			for _, want := range testInfo.wantStdout {
				assert.Contains(t, stdout, want)
			}

			for _, want := range testInfo.wantStderr {
				assert.Contains(t, stderr, want)
			}
		})
	}
}

func TestShow(t *testing.T) { //nolint:paralleltest // the CLI replaces the global slog default
	dir := t.TempDir()
	valid := writeFile(t, dir, "exhale.yaml", validSettings)

	t.Run("json", func(t *testing.T) {
		stdout, stderr, code := run(t, context.Background(), "show", "--output", "json", valid)
		require.Equal(t, 0, code, stderr)

		var shown map[string]any

		require.NoError(t, json.Unmarshal([]byte(stdout), &shown))
		assert.Equal(t, "c_maths", shown["breathe_default_project"])
		assert.Equal(t, []any{"sphinx.ext.mathjax", "exhale", "breathe"}, shown["extensions"])
		assert.Equal(t, true, shown["single_project"])
	})

	t.Run("json without extensions", func(t *testing.T) {
		bare := writeFile(t, dir, "bare.yaml", "exhale_args:\n  containmentFolder: ./api\n  rootFileName: library_root.rst\n"+
			"  rootFileTitle: Library API\n  doxygenStripFromPath: ..\n")

		stdout, stderr, code := run(t, context.Background(), "show", "--output", "json", bare)
		require.Equal(t, 0, code, stderr)

		var shown map[string]any

		require.NoError(t, json.Unmarshal([]byte(stdout), &shown))
		assert.Equal(t, []any{}, shown["extensions"])
	})

	t.Run("yaml", func(t *testing.T) {
		stdout, stderr, code := run(t, context.Background(), "show", valid)
		require.Equal(t, 0, code, stderr)

		assert.Contains(t, stdout, "breathe_default_project: c_maths")
		assert.Contains(t, stdout, "containmentFolder: ./api")
	})

	t.Run("unknown output", func(t *testing.T) {
		_, stderr, code := run(t, context.Background(), "show", "-o", "xml", valid)
		assert.Equal(t, 2, code)
		assert.Contains(t, stderr, `unknown output "xml"`)
	})

	t.Run("invalid settings", func(t *testing.T) {
		invalid := writeFile(t, dir, "list.yaml", "exhale_args: [api]\n")

		_, stderr, code := run(t, context.Background(), "show", invalid)
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "`exhale_args` in `conf.py` must be a dictionary, but was `list`.")
	})

	t.Run("argument count", func(t *testing.T) {
		_, _, code := run(t, context.Background(), "show")
		assert.Equal(t, 2, code)
	})
}

func freeAddress(t *testing.T) string {
	t.Helper()

	listenCfg := net.ListenConfig{}

	ln, err := listenCfg.Listen(context.Background(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)

	defer func() { _ = ln.Close() }()

	return ln.Addr().String()
}

func TestServe(t *testing.T) { //nolint:paralleltest // the CLI replaces the global slog default
	addr := freeAddress(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan int, 1)

	go func() {
		_, _, code := run(t, ctx, "serve", "--address", addr, "--request-timeout", "5s")
		done <- code
	}()

	require.Eventually(t, func() bool {
		req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://"+addr+"/healthz", nil)
		if err != nil {
			return false
		}

		resp, err := http.DefaultClient.Do(req) //nolint:gosec // G704: test code, URL from test server
		if err != nil {
			return false
		}

		defer func() { _ = resp.Body.Close() }()

		body, _ := io.ReadAll(resp.Body)

		return resp.StatusCode == http.StatusOK && string(body) == "ok"
	}, 5*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case code := <-done:
		assert.Equal(t, 0, code)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop after cancellation")
	}
}

func TestServe_InvalidSettingsFailsStart(t *testing.T) { //nolint:paralleltest // the CLI replaces the global slog default
	invalid := writeFile(t, t.TempDir(), "exhale.yaml", "extensions: [breathe, exhale]\nexhale_args: {containmentFolder: ./api}\n")

	_, stderr, code := run(t, context.Background(), "serve", "--address", freeAddress(t), "--settings", invalid)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "`breathe` must appear *AFTER* `exhale`")
}

func TestVersionFlag(t *testing.T) { //nolint:paralleltest // the CLI replaces the global slog default
	stdout, _, code := run(t, context.Background(), "--version")

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "exhale-check version dev")
}
