package config_test

import (
	"fmt"
	"testing"

	"github.com/0xalexb/hjarta-exhale/conf"
	"github.com/0xalexb/hjarta-exhale/config"
	filefetcher "github.com/0xalexb/hjarta-exhale/config/fetcher/file"
	tomlparser "github.com/0xalexb/hjarta-exhale/config/parser/toml"
	yamlparser "github.com/0xalexb/hjarta-exhale/config/parser/yaml"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// StaticDataFetcher implements config.DataFetcher with static data.
type StaticDataFetcher struct {
	Data []byte
}

// Fetch returns the static data.
func (f *StaticDataFetcher) Fetch() ([]byte, error) {
	return f.Data, nil
}

// Source names the fetcher in load errors.
func (f *StaticDataFetcher) Source() string {
	return "static"
}

func ExampleProvider() {
	provider := config.Provider(&conf.Document{}, "")

	fetcher := &StaticDataFetcher{
		Data: []byte(`
exhale_args:
  containmentFolder: ./api
  rootFileName: library_root.rst
  rootFileTitle: Library API
  doxygenStripFromPath: ..
breathe_projects:
  c_maths: ./_doxygen/xml
extensions: [exhale]
`),
	}

	document, err := provider(yamlparser.NewParser(), fetcher)
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	fmt.Printf("Default: %s, Extensions: %v\n", document.Validated.DefaultProject, document.Validated.Extensions)
	// Output: Default: c_maths, Extensions: [exhale breathe]
}

func ExampleProvider_validationError() {
	provider := config.Provider(&conf.Document{}, "")

	fetcher := &StaticDataFetcher{
		Data: []byte("exhale_args: {containmentFolder: ./api}\nexhale_projects: {lib: {}}\n"),
	}

	_, err := provider(yamlparser.NewParser(), fetcher)
	fmt.Println(err)
	// Output: `exhale_args` and `exhale_projects` may not both be specified.  Using `exhale_args` implies a single project.
}

func ExampleProvider_toml() {
	provider := config.Provider(&conf.Document{}, "tool:exhale")

	fetcher := &StaticDataFetcher{
		Data: []byte(`
[tool.exhale.exhale_projects.lib]
containmentFolder = "./lib_api"
rootFileName = "lib_root.rst"
rootFileTitle = "Lib"
doxygenStripFromPath = ".."

[tool.exhale.breathe_projects]
lib = "./_doxygen/lib/xml"
`),
	}

	document, err := provider(tomlparser.NewParser(), fetcher)
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	fmt.Printf("Projects: %v\n", document.Validated.ProjectNames())
	// Output: Projects: [lib]
}

func ExampleProvider_fileDataFetcher() {
	// In production the fetcher reads a file:
	//
	//	fetcher, err := filefetcher.NewFetcher("docs/exhale.yaml")()
	_ = filefetcher.NewFetcher("docs/exhale.yaml")

	provider := config.Provider(&conf.Document{}, "docs:exhale")

	fetcher := &StaticDataFetcher{
		Data: []byte(`
docs:
  exhale:
    exhale_args:
      containmentFolder: ./api
      rootFileName: root.rst
      rootFileTitle: API
      doxygenStripFromPath: ..
`),
	}

	document, err := provider(yamlparser.NewParser(), fetcher)
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	fmt.Printf("Breathe: %v\n", document.Validated.BreatheProjects)
	// Output: Breathe: map[default:_doxygen/default/xml]
}

func TestProvider_DocumentAcrossFormats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		parser config.Parser
		data   string
	}{
		{
			name:   "yaml",
			parser: yamlparser.NewParser(),
			data:   "exhale_args: 42\n",
		},
		{
			name:   "toml",
			parser: tomlparser.NewParser(),
			data:   "exhale_args = 42\n",
		},
	}

	for _, testInfo := range tests {
		t.Run(testInfo.name, func(t *testing.T) {
			t.Parallel()

			provider := config.Provider(&conf.Document{}, "")

			_, err := provider(testInfo.parser, &StaticDataFetcher{Data: []byte(testInfo.data)})
			require.ErrorIs(t, err, conf.ErrConfigType)

			var loadErr *config.LoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, config.StageValidate, loadErr.Stage)
			assert.Equal(t, "static", loadErr.Source)
			assert.Equal(t, "`exhale_args` in `conf.py` must be a dictionary, but was `int`.", err.Error())
		})
	}
}
