package conf

import (
	"fmt"
	"maps"
	"path"
	"slices"
	"strings"
)

const (
	// ExtensionName is the name this extension is registered under.
	ExtensionName = "exhale"
	// CompanionExtensionName is the breathe extension, set up after exhale.
	CompanionExtensionName = "breathe"
	// DefaultProjectName names the project synthesized from `exhale_args`
	// when breathe does not name one.
	DefaultProjectName = "default"
	// DoxygenOutputRoot is the directory auto-populated breathe projects point into.
	DoxygenOutputRoot = "_doxygen"
)

const (
	msgNeedDict       = "`%s` in `conf.py` must be a dictionary, but was `%s`."
	msgNeedStringKeys = "`%s` had key `%s` of type `%s`, but only strings are allowed."
	msgAPICrossover   = "`exhale_args` and `%s` may not both be specified.  " +
		"Using `exhale_args` implies a single project."
	msgDefaultProject = "`breathe_default_project` must be a key in `breathe_projects`.  *INSTEAD* " +
		"of fixing this, please consider letting Exhale automatically populate " +
		"these for you (delete both from `conf.py`)."
	msgProjectMismatch = "exhale_projects.keys() must be identical to breathe_projects.keys()."
	msgExtensionOrder  = "As of exhale v1.0.0, `breathe` must appear *AFTER* `exhale` in the " +
		"`extensions` list in `conf.py`.  Unfortunately, this cannot be fixed " +
		"automatically by exhale, by the time this code is executing it is already " +
		"too late.  Please *DELETE* `breathe` to allow exhale to fix this for you " +
		"(exhale will setup breathe internally).  Your new `extensions` list " +
		"should look like:\n\n%s"
)

// dictSettings are the exhale settings that must hold a mapping, in check order.
//
//nolint:gochecknoglobals
var dictSettings = []string{SettingArgs, SettingProjects, SettingGlobalArgs}

// Validated is the outcome of a successful validation.
type Validated struct {
	Projects        map[string]ProjectOptions `json:"projects"                          yaml:"projects"`
	BreatheProjects map[string]string         `json:"breathe_projects"                  yaml:"breathe_projects"`
	DefaultProject  string                    `json:"breathe_default_project,omitempty" yaml:"breathe_default_project,omitempty"`
	Extensions      []string                  `json:"extensions"                        yaml:"extensions"`
	SingleProject   bool                      `json:"single_project"                    yaml:"single_project"`
}

// ProjectNames returns the project names in sorted order.
func (v *Validated) ProjectNames() []string {
	return slices.Sorted(maps.Keys(v.Projects))
}

// Validate checks raw, using extensions as the host's ordered list of enabled
// extensions. The first violated rule is returned as an *Error. raw is never modified.
func Validate(raw Raw, extensions []string) (*Validated, error) {
	return newValidator(raw, func() ([]string, error) {
		return extensions, nil
	}).run()
}

// Check is Validate with the extension list taken from the `extensions` setting.
func Check(raw Raw) (*Validated, error) {
	return newValidator(raw, raw.Extensions).run()
}

type validator struct {
	raw        Raw
	extensions func() ([]string, error)

	// projects holds each project's own option entries once populated.
	projects map[string][]entry
}

func newValidator(raw Raw, extensions func() ([]string, error)) *validator {
	return &validator{
		raw:        raw,
		extensions: extensions,
		projects:   make(map[string][]entry),
	}
}

func (v *validator) run() (*Validated, error) {
	steps := []func(*Validated) error{
		v.checkDictTypes,
		v.checkStringKeys,
		v.checkCrossover,
		v.checkDefaultProject,
		v.populate,
		v.checkProjectSets,
		v.checkExtensionOrder,
		v.checkBreatheSettings,
		v.checkProjectOptions,
	}

	result := &Validated{}

	for _, step := range steps {
		err := step(result)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (v *validator) checkDictTypes(_ *Validated) error {
	for _, name := range dictSettings {
		value := v.raw[name]
		if !isSet(value) {
			continue
		}

		if _, ok := asMapping(value); !ok {
			return newError(KindType, name, msgNeedDict, name, TypeName(value))
		}
	}

	return nil
}

func (v *validator) checkStringKeys(_ *Validated) error {
	for _, name := range dictSettings {
		entries, ok := asMapping(v.raw[name])
		if !ok {
			continue
		}

		err := requireStringKeys(name, entries)
		if err != nil {
			return err
		}

		if name == SettingProjects {
			err = checkProjectMappings(entries)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func requireStringKeys(setting string, entries []entry) error {
	for _, e := range entries {
		if _, ok := e.key.(string); !ok {
			return newError(KindKeyType, setting, msgNeedStringKeys, setting, KeyRepr(e.key), TypeName(e.key))
		}
	}

	return nil
}

func checkProjectMappings(projects []entry) error {
	for _, project := range projects {
		setting := projectSetting(project.key.(string)) //nolint:forcetypeassert // keys checked by requireStringKeys

		options, ok := asMapping(project.value)
		if !ok {
			return newError(KindType, setting, msgNeedDict, setting, TypeName(project.value))
		}

		err := requireStringKeys(setting, options)
		if err != nil {
			return err
		}
	}

	return nil
}

// checkBreatheSettings runs once the exhale checks have passed. populate and
// checkDefaultProject read `breathe_projects` leniently, so a malformed value
// surfaces here unless an earlier check already reported it.
func (v *validator) checkBreatheSettings(_ *Validated) error {
	value := v.raw[SettingBreatheProjects]
	if !isSet(value) {
		return nil
	}

	projects, ok := asMapping(value)
	if !ok {
		return newError(KindType, SettingBreatheProjects, msgNeedDict, SettingBreatheProjects, TypeName(value))
	}

	err := requireStringKeys(SettingBreatheProjects, projects)
	if err != nil {
		return err
	}

	return checkBreathePaths(projects)
}

func checkBreathePaths(projects []entry) error {
	for _, project := range projects {
		if _, ok := project.value.(string); !ok {
			setting := fmt.Sprintf("%s['%s']", SettingBreatheProjects, project.key)

			return newError(KindType, setting,
				"`%s` in `conf.py` must be a string, but was `%s`.", setting, TypeName(project.value))
		}
	}

	return nil
}

func (v *validator) checkCrossover(_ *Validated) error {
	if !isSet(v.raw[SettingArgs]) {
		return nil
	}

	// exhale_projects is reported first when both are present.
	for _, other := range []string{SettingProjects, SettingGlobalArgs} {
		if isSet(v.raw[other]) {
			return newError(KindExclusivity, other, msgAPICrossover, other)
		}
	}

	return nil
}

func (v *validator) checkDefaultProject(_ *Validated) error {
	value := v.raw[SettingBreatheDefaultProject]
	if !isSet(value) {
		return nil
	}

	// A non-string name can never be a key of breathe_projects.
	name, ok := value.(string)
	breathe, _ := asMapping(v.raw[SettingBreatheProjects])

	if !ok || !hasKey(breathe, name) {
		return newError(KindReference, SettingBreatheDefaultProject, "%s", msgDefaultProject)
	}

	return nil
}

// populate derives the exhale and breathe project sets. It never fails; the
// derived sets are cross-checked by checkProjectSets.
func (v *validator) populate(result *Validated) error {
	if name, ok := v.raw[SettingBreatheDefaultProject].(string); ok {
		result.DefaultProject = name
	}

	breathe, _ := asMapping(v.raw[SettingBreatheProjects])

	if args := v.raw[SettingArgs]; isSet(args) {
		result.SingleProject = true

		name := result.DefaultProject
		if name == "" && len(breathe) == 1 {
			name = KeyRepr(breathe[0].key)
		}

		if name == "" {
			name = DefaultProjectName
		}

		v.projects[name], _ = asMapping(args)
	} else {
		projects, _ := asMapping(v.raw[SettingProjects])
		for _, project := range projects {
			name, _ := project.key.(string)
			v.projects[name], _ = asMapping(project.value)
		}
	}

	result.BreatheProjects = make(map[string]string, len(v.projects))

	if len(breathe) > 0 {
		for _, project := range breathe {
			result.BreatheProjects[KeyRepr(project.key)], _ = project.value.(string)
		}
	} else {
		for name := range v.projects {
			result.BreatheProjects[name] = path.Join(DoxygenOutputRoot, name, "xml")
		}
	}

	if result.DefaultProject == "" && len(result.BreatheProjects) == 1 {
		for name := range result.BreatheProjects {
			result.DefaultProject = name
		}
	}

	return nil
}

func (v *validator) checkProjectSets(result *Validated) error {
	exhaleNames := slices.Sorted(maps.Keys(v.projects))
	breatheNames := slices.Sorted(maps.Keys(result.BreatheProjects))

	if !slices.Equal(exhaleNames, breatheNames) {
		return newError(KindReference, SettingProjects, "%s", msgProjectMismatch)
	}

	return nil
}

func (v *validator) checkExtensionOrder(result *Validated) error {
	extensions, err := v.extensions()
	if err != nil {
		return err
	}

	exhaleAt := slices.Index(extensions, ExtensionName)
	breatheAt := slices.Index(extensions, CompanionExtensionName)

	if exhaleAt >= 0 && breatheAt >= 0 && breatheAt < exhaleAt {
		return newError(KindExtensionOrder, SettingExtensions, msgExtensionOrder, extensionsLiteral(extensions))
	}

	result.Extensions = append([]string{}, extensions...)
	if exhaleAt >= 0 && breatheAt < 0 {
		result.Extensions = slices.Insert(result.Extensions, exhaleAt+1, CompanionExtensionName)
	}

	return nil
}

// extensionsLiteral renders the corrected `extensions` list: breathe removed,
// one quoted name per line.
func extensionsLiteral(extensions []string) string {
	quoted := make([]string, 0, len(extensions))

	for _, name := range extensions {
		if name == CompanionExtensionName {
			continue
		}

		quoted = append(quoted, "'"+name+"'")
	}

	return "extensions = [\n    " + strings.Join(quoted, ",\n    ") + "\n]"
}

func (v *validator) checkProjectOptions(result *Validated) error {
	if len(v.projects) == 0 {
		return newError(KindValue, SettingArgs, "You must set `exhale_args` or `exhale_projects` in `conf.py`.")
	}

	global, _ := asMapping(v.raw[SettingGlobalArgs])

	err := checkOptionEntries(SettingGlobalArgs, global)
	if err != nil {
		return err
	}

	result.Projects = make(map[string]ProjectOptions, len(v.projects))

	for _, name := range slices.Sorted(maps.Keys(v.projects)) {
		setting := SettingArgs
		if !result.SingleProject {
			setting = projectSetting(name)
		}

		err := checkOptionEntries(setting, v.projects[name])
		if err != nil {
			return err
		}

		options, err := decodeOptions(setting, mergeOptions(global, v.projects[name]))
		if err != nil {
			return err
		}

		result.Projects[name] = options
	}

	return nil
}

func projectSetting(name string) string {
	return fmt.Sprintf("%s['%s']", SettingProjects, name)
}

// mergeOptions overlays a project's own options on the global ones.
func mergeOptions(global, project []entry) map[string]any {
	merged := make(map[string]any, len(global)+len(project))

	for _, layer := range [][]entry{global, project} {
		for _, e := range layer {
			name, _ := e.key.(string)
			merged[name] = e.value
		}
	}

	return merged
}
