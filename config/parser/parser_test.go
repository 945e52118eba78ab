package parser

import (
	"testing"

	"github.com/0xalexb/hjarta-exhale/config/parser/toml"
	"github.com/0xalexb/hjarta-exhale/config/parser/yaml"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format string
		want   any
	}{
		{format: "yaml", want: &yaml.Parser{}},
		{format: "yml", want: &yaml.Parser{}},
		{format: "YAML", want: &yaml.Parser{}},
		{format: "toml", want: &toml.Parser{}},
		{format: " toml ", want: &toml.Parser{}},
	}

	for _, testInfo := range tests {
		t.Run(testInfo.format, func(t *testing.T) {
			t.Parallel()

			parser, err := ForFormat(testInfo.format)
			require.NoError(t, err)
			assert.IsType(t, testInfo.want, parser)
		})
	}
}

func TestForFormat_Unknown(t *testing.T) {
	t.Parallel()

	parser, err := ForFormat("ini")
	require.ErrorIs(t, err, ErrUnknownFormat)
	assert.Nil(t, parser)
	assert.Contains(t, err.Error(), `"ini"`)
}

func TestForFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		want    any
		wantErr error
	}{
		{path: "docs/exhale.yaml", want: &yaml.Parser{}},
		{path: "docs/exhale.yml", want: &yaml.Parser{}},
		{path: "pyproject.toml", want: &toml.Parser{}},
		{path: "conf.py", wantErr: ErrUnknownFormat},
		{path: "Makefile", wantErr: ErrUnknownFormat},
	}

	for _, testInfo := range tests {
		t.Run(testInfo.path, func(t *testing.T) {
			t.Parallel()

			parser, err := ForFile(testInfo.path)
			if testInfo.wantErr != nil {
				require.ErrorIs(t, err, testInfo.wantErr)

				return
			}

			require.NoError(t, err)
			assert.IsType(t, testInfo.want, parser)
		})
	}
}
