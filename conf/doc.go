// Package conf validates the exhale settings of a documentation build.
//
// The settings arrive as a Raw mapping, the way the host build exposes its
// configuration namespace: `exhale_args` (single project), `exhale_projects`
// and `exhale_global_args` (multiple projects), the breathe settings
// `breathe_projects` and `breathe_default_project`, and the ordered
// `extensions` list.
//
// Validation is a fixed chain of checks. The first violated check stops the
// chain and is returned as an *Error whose Kind tags the failure and whose
// message is shown to the user verbatim:
//
//  1. ConfigTypeError: a dictionary setting holds something else.
//  2. ConfigKeyTypeError: a dictionary setting has a non-string key
//     (one level deep inside `exhale_projects`).
//  3. ConfigExclusivityError: `exhale_args` is combined with `exhale_projects`
//     or `exhale_global_args`.
//  4. ConfigReferenceError: `breathe_default_project` is not a key of
//     `breathe_projects`.
//  5. ConfigReferenceError: the exhale and breathe project names differ after
//     auto-population.
//  6. ExtensionOrderError: `breathe` is listed before `exhale`.
//  7. ConfigTypeError or ConfigKeyTypeError: `breathe_projects` is not a
//     mapping of strings to strings.
//
// The breathe settings are checked after the exhale checks so that a bad
// breathe value never hides one of the errors above. The per-project options
// are checked last (ConfigValueError).
//
// # Type names and keys
//
// Messages embed the observed type of the offending value, rendered by
// TypeName with a stable vocabulary: null, bool, int, float, string, bytes,
// list and dict. Values outside that vocabulary render as their Go type.
//
// Offending keys are rendered by KeyRepr in the host's literal form, so a
// YAML key `true` reads `True`, a null key `None` and a whole float `3.0`.
//
// # Example
//
//	validated, err := conf.Check(conf.Raw{
//	    "exhale_args": map[string]any{
//	        "containmentFolder":    "./api",
//	        "rootFileName":         "library_root.rst",
//	        "rootFileTitle":        "Library API",
//	        "doxygenStripFromPath": "..",
//	    },
//	    "extensions": []string{"exhale"},
//	})
package conf
