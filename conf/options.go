package conf

import (
	"path"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
)

// Defaults applied to options a project leaves out.
const (
	DefaultFullToctreeMaxDepth = 5
	DefaultContentsTitle       = "Contents"
	DefaultFullAPITitle        = "Full API"
)

// ProjectOptions are the effective exhale options of one project:
// `exhale_global_args` overlaid by the project's own options.
type ProjectOptions struct {
	ContainmentFolder    string `json:"containmentFolder"    yaml:"containmentFolder"`
	RootFileName         string `json:"rootFileName"         yaml:"rootFileName"`
	RootFileTitle        string `json:"rootFileTitle"        yaml:"rootFileTitle"`
	DoxygenStripFromPath string `json:"doxygenStripFromPath" yaml:"doxygenStripFromPath"`

	AfterTitleDescription     string   `json:"afterTitleDescription,omitempty"     yaml:"afterTitleDescription,omitempty"`
	AfterHierarchyDescription string   `json:"afterHierarchyDescription,omitempty" yaml:"afterHierarchyDescription,omitempty"`
	FullAPISubSectionTitle    string   `json:"fullApiSubSectionTitle"              yaml:"fullApiSubSectionTitle"`
	AfterBodySummary          string   `json:"afterBodySummary,omitempty"          yaml:"afterBodySummary,omitempty"`
	FullToctreeMaxDepth       int      `json:"fullToctreeMaxDepth"                 yaml:"fullToctreeMaxDepth"`
	ListingExclude            []string `json:"listingExclude,omitempty"            yaml:"listingExclude,omitempty"`
	UnabridgedOrphanKinds     []string `json:"unabridgedOrphanKinds,omitempty"     yaml:"unabridgedOrphanKinds,omitempty"`

	CreateTreeView      bool `json:"createTreeView"      yaml:"createTreeView"`
	MinifyTreeView      bool `json:"minifyTreeView"      yaml:"minifyTreeView"`
	TreeViewIsBootstrap bool `json:"treeViewIsBootstrap" yaml:"treeViewIsBootstrap"`

	IncludeTemplateParamOrderList bool              `json:"includeTemplateParamOrderList"         yaml:"includeTemplateParamOrderList"`
	PageLevelConfigMeta           string            `json:"pageLevelConfigMeta,omitempty"         yaml:"pageLevelConfigMeta,omitempty"`
	ContentsDirectives            bool              `json:"contentsDirectives"                    yaml:"contentsDirectives"`
	ContentsTitle                 string            `json:"contentsTitle"                         yaml:"contentsTitle"`
	KindsWithContentsDirectives   []string          `json:"kindsWithContentsDirectives,omitempty" yaml:"kindsWithContentsDirectives,omitempty"`
	LexerMapping                  map[string]string `json:"lexerMapping,omitempty"                yaml:"lexerMapping,omitempty"`

	ExhaleExecutesDoxygen bool   `json:"exhaleExecutesDoxygen"        yaml:"exhaleExecutesDoxygen"`
	ExhaleUseDoxyfile     bool   `json:"exhaleUseDoxyfile"            yaml:"exhaleUseDoxyfile"`
	ExhaleDoxygenStdin    string `json:"exhaleDoxygenStdin,omitempty" yaml:"exhaleDoxygenStdin,omitempty"`
	ExhaleSilentDoxygen   bool   `json:"exhaleSilentDoxygen"          yaml:"exhaleSilentDoxygen"`

	VerboseBuild                  bool `json:"verboseBuild"                  yaml:"verboseBuild"`
	AlwaysColorize                bool `json:"alwaysColorize"                yaml:"alwaysColorize"`
	GenerateBreatheFileDirectives bool `json:"generateBreatheFileDirectives" yaml:"generateBreatheFileDirectives"`
}

func defaultProjectOptions() ProjectOptions {
	return ProjectOptions{
		FullAPISubSectionTitle:      DefaultFullAPITitle,
		FullToctreeMaxDepth:         DefaultFullToctreeMaxDepth,
		UnabridgedOrphanKinds:       []string{"dir", "file"},
		ContentsDirectives:          true,
		ContentsTitle:               DefaultContentsTitle,
		KindsWithContentsDirectives: []string{"file", "namespace"},
		AlwaysColorize:              true,
	}
}

type optionKind int

const (
	optionString optionKind = iota
	optionBool
	optionInt
	optionStringList
	optionStringMap
)

func (k optionKind) String() string {
	switch k {
	case optionString:
		return "string"
	case optionBool:
		return "bool"
	case optionInt:
		return "int"
	case optionStringList:
		return "list"
	case optionStringMap:
		return "dict"
	default:
		return "unknown"
	}
}

type optionSpec struct {
	name     string
	kind     optionKind
	required bool
	assign   func(*ProjectOptions, any)
}

//nolint:gochecknoglobals,forcetypeassert // values are converted by coerceOption before assign
var projectOptionSchema = []optionSpec{
	{"containmentFolder", optionString, true, func(o *ProjectOptions, v any) { o.ContainmentFolder = v.(string) }},
	{"rootFileName", optionString, true, func(o *ProjectOptions, v any) { o.RootFileName = v.(string) }},
	{"rootFileTitle", optionString, true, func(o *ProjectOptions, v any) { o.RootFileTitle = v.(string) }},
	{"doxygenStripFromPath", optionString, true, func(o *ProjectOptions, v any) { o.DoxygenStripFromPath = v.(string) }},
	{"afterTitleDescription", optionString, false, func(o *ProjectOptions, v any) { o.AfterTitleDescription = v.(string) }},
	{"afterHierarchyDescription", optionString, false, func(o *ProjectOptions, v any) {
		o.AfterHierarchyDescription = v.(string)
	}},
	{"fullApiSubSectionTitle", optionString, false, func(o *ProjectOptions, v any) { o.FullAPISubSectionTitle = v.(string) }},
	{"afterBodySummary", optionString, false, func(o *ProjectOptions, v any) { o.AfterBodySummary = v.(string) }},
	{"fullToctreeMaxDepth", optionInt, false, func(o *ProjectOptions, v any) { o.FullToctreeMaxDepth = v.(int) }},
	{"listingExclude", optionStringList, false, func(o *ProjectOptions, v any) { o.ListingExclude = v.([]string) }},
	{"unabridgedOrphanKinds", optionStringList, false, func(o *ProjectOptions, v any) {
		o.UnabridgedOrphanKinds = v.([]string)
	}},
	{"createTreeView", optionBool, false, func(o *ProjectOptions, v any) { o.CreateTreeView = v.(bool) }},
	{"minifyTreeView", optionBool, false, func(o *ProjectOptions, v any) { o.MinifyTreeView = v.(bool) }},
	{"treeViewIsBootstrap", optionBool, false, func(o *ProjectOptions, v any) { o.TreeViewIsBootstrap = v.(bool) }},
	{"includeTemplateParamOrderList", optionBool, false, func(o *ProjectOptions, v any) {
		o.IncludeTemplateParamOrderList = v.(bool)
	}},
	{"pageLevelConfigMeta", optionString, false, func(o *ProjectOptions, v any) { o.PageLevelConfigMeta = v.(string) }},
	{"contentsDirectives", optionBool, false, func(o *ProjectOptions, v any) { o.ContentsDirectives = v.(bool) }},
	{"contentsTitle", optionString, false, func(o *ProjectOptions, v any) { o.ContentsTitle = v.(string) }},
	{"kindsWithContentsDirectives", optionStringList, false, func(o *ProjectOptions, v any) {
		o.KindsWithContentsDirectives = v.([]string)
	}},
	{"lexerMapping", optionStringMap, false, func(o *ProjectOptions, v any) { o.LexerMapping = v.(map[string]string) }},
	{"exhaleExecutesDoxygen", optionBool, false, func(o *ProjectOptions, v any) { o.ExhaleExecutesDoxygen = v.(bool) }},
	{"exhaleUseDoxyfile", optionBool, false, func(o *ProjectOptions, v any) { o.ExhaleUseDoxyfile = v.(bool) }},
	{"exhaleDoxygenStdin", optionString, false, func(o *ProjectOptions, v any) { o.ExhaleDoxygenStdin = v.(string) }},
	{"exhaleSilentDoxygen", optionBool, false, func(o *ProjectOptions, v any) { o.ExhaleSilentDoxygen = v.(bool) }},
	{"verboseBuild", optionBool, false, func(o *ProjectOptions, v any) { o.VerboseBuild = v.(bool) }},
	{"alwaysColorize", optionBool, false, func(o *ProjectOptions, v any) { o.AlwaysColorize = v.(bool) }},
	{"generateBreatheFileDirectives", optionBool, false, func(o *ProjectOptions, v any) {
		o.GenerateBreatheFileDirectives = v.(bool)
	}},
}

func lookupOption(name string) (optionSpec, bool) {
	idx := slices.IndexFunc(projectOptionSchema, func(spec optionSpec) bool {
		return spec.name == name
	})
	if idx < 0 {
		return optionSpec{}, false
	}

	return projectOptionSchema[idx], true
}

// checkOptionEntries rejects unknown option names and values of the wrong type.
func checkOptionEntries(setting string, entries []entry) error {
	for _, e := range entries {
		name, _ := e.key.(string)

		spec, known := lookupOption(name)
		if !known {
			return newError(KindValue, setting, "`%s` has unknown key `%s`.", setting, name)
		}

		_, err := coerceOption(setting, spec, e.value)
		if err != nil {
			return err
		}
	}

	return nil
}

// coerceOption converts value to the Go type of spec.kind.
func coerceOption(setting string, spec optionSpec, value any) (any, error) {
	wrongType := func() error {
		return newError(KindValue, setting, "`%s['%s']` must be of type `%s`, but was `%s`.",
			setting, spec.name, spec.kind, TypeName(value))
	}

	switch spec.kind {
	case optionString:
		if s, ok := value.(string); ok {
			return s, nil
		}
	case optionBool:
		if b, ok := value.(bool); ok {
			return b, nil
		}
	case optionInt:
		if n, ok := asInt(value); ok {
			return n, nil
		}
	case optionStringList:
		items, ok := asList(value)
		if !ok {
			return nil, wrongType()
		}

		out := make([]string, 0, len(items))

		for _, item := range items {
			s, isString := item.(string)
			if !isString {
				return nil, newError(KindValue, setting, "`%s['%s']` had item `%s` of type `%s`, but only strings are allowed.",
					setting, spec.name, KeyRepr(item), TypeName(item))
			}

			out = append(out, s)
		}

		return out, nil
	case optionStringMap:
		entries, ok := asMapping(value)
		if !ok {
			return nil, wrongType()
		}

		out := make(map[string]string, len(entries))

		for _, e := range entries {
			key, keyOK := e.key.(string)
			val, valOK := e.value.(string)

			if !keyOK || !valOK {
				return nil, newError(KindValue, setting, "`%s['%s']` must map strings to strings.", setting, spec.name)
			}

			out[key] = val
		}

		return out, nil
	}

	return nil, wrongType()
}

func asInt(value any) (int, bool) {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		return 0, false
	}

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int(rv.Uint()), true //nolint:gosec // option values are small
	default:
		return 0, false
	}
}

// decodeOptions checks the merged options of one project and converts them.
func decodeOptions(setting string, merged map[string]any) (ProjectOptions, error) {
	options := defaultProjectOptions()

	for _, spec := range projectOptionSchema {
		value, present := merged[spec.name]
		if !present {
			if spec.required {
				return ProjectOptions{}, newError(KindValue, setting, "`%s` must contain key `%s`.", setting, spec.name)
			}

			continue
		}

		converted, err := coerceOption(setting, spec, value)
		if err != nil {
			return ProjectOptions{}, err
		}

		spec.assign(&options, converted)
	}

	err := checkOptionValues(setting, &options)
	if err != nil {
		return ProjectOptions{}, err
	}

	return options, nil
}

func checkOptionValues(setting string, options *ProjectOptions) error {
	folder := filepath.ToSlash(options.ContainmentFolder)
	if path.IsAbs(folder) || filepath.IsAbs(options.ContainmentFolder) {
		return newError(KindValue, setting,
			"`%s['containmentFolder']` must be relative to the directory containing `conf.py`, but was `%s`.",
			setting, options.ContainmentFolder)
	}

	if cleaned := path.Clean(folder); cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return newError(KindValue, setting,
			"`%s['containmentFolder']` must be a subdirectory of the directory containing `conf.py`, but was `%s`.",
			setting, options.ContainmentFolder)
	}

	if !strings.HasSuffix(options.RootFileName, ".rst") {
		return newError(KindValue, setting, "`%s['rootFileName']` must end with `.rst`, but was `%s`.",
			setting, options.RootFileName)
	}

	if strings.TrimSpace(options.RootFileTitle) == "" {
		return newError(KindValue, setting, "`%s['rootFileTitle']` must not be empty.", setting)
	}

	return checkDoxygenOptions(setting, options)
}

func checkDoxygenOptions(setting string, options *ProjectOptions) error {
	usesStdin := options.ExhaleDoxygenStdin != ""

	switch {
	case options.ExhaleUseDoxyfile && usesStdin:
		return newError(KindExclusivity, setting,
			"`%s` may not specify both `exhaleUseDoxyfile` and `exhaleDoxygenStdin`.", setting)
	case options.ExhaleExecutesDoxygen && !options.ExhaleUseDoxyfile && !usesStdin:
		return newError(KindValue, setting,
			"`%s` sets `exhaleExecutesDoxygen`, so one of `exhaleUseDoxyfile` or `exhaleDoxygenStdin` must be given.",
			setting)
	case !options.ExhaleExecutesDoxygen && options.ExhaleUseDoxyfile:
		return newError(KindValue, setting, "`%s` sets `exhaleUseDoxyfile` without `exhaleExecutesDoxygen`.", setting)
	case !options.ExhaleExecutesDoxygen && usesStdin:
		return newError(KindValue, setting, "`%s` sets `exhaleDoxygenStdin` without `exhaleExecutesDoxygen`.", setting)
	default:
		return nil
	}
}
