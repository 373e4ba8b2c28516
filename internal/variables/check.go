// Package variables analyzes identifier usage inside template expressions
// and cross-references it against a provided data context.
package variables

import (
	"fmt"
	"sort"
	"strings"

	"github.com/docxtools/docxlint/internal/types"
)

// CheckUndefined flags template references with no corresponding entry in
// the data context. These are warnings, not errors: silent and
// missing-marker render modes succeed with undefined variables, and only
// the external renderer's strict mode treats them as fatal.
//
// Loop-bound names are resolved through their binding: when a template
// says "for item in participants" and participants is a list of objects
// in the data, "item.role" is checked against the union of element keys
// and a missing field is reported as "role", not "item".
func CheckUndefined(tokens []types.TemplateToken, data map[string]any) []types.LintWarning {
	var warnings []types.LintWarning
	reported := make(map[string]bool)

	report := func(name string, ref Reference, message string) {
		if reported[name] {
			return
		}
		reported[name] = true
		warnings = append(warnings, types.LintWarning{
			LineNumber:  ref.lineOrNil(),
			WarningType: types.UndefinedVariableWarn,
			Message:     message,
			Context:     ref.Context,
			Suggestion:  "Check that template variables match the provided data",
		})
	}

	for _, ref := range Analyze(tokens) {
		if ref.Bound {
			// Loop variable: validate element-level field access when the
			// bound collection is resolvable in the data. A nil binding
			// means the loop source named nothing checkable.
			if len(ref.Path) < 2 || ref.Binding == nil {
				continue
			}
			keys, ok := elementKeys(resolvePath(data, ref.Binding))
			if !ok {
				continue
			}
			field := ref.Path[1]
			if !keys[field] {
				report(field, ref, fmt.Sprintf(
					"Undefined variable: field '%s' is not present in any element of '%s'",
					field, joinPath(ref.Binding)))
			}
			continue
		}

		if _, ok := data[ref.Name]; !ok {
			report(ref.Name, ref, fmt.Sprintf("Undefined variable: '%s' is not present in the provided data", ref.Name))
		}
	}

	return warnings
}

// CheckUnused flags data keys that the template never references.
// A quality warning, not a correctness issue.
func CheckUnused(tokens []types.TemplateToken, data map[string]any) []types.LintWarning {
	referenced := make(map[string]bool)
	for _, ref := range Analyze(tokens) {
		if ref.Bound {
			if len(ref.Binding) > 0 {
				referenced[ref.Binding[0]] = true
			}
			continue
		}
		referenced[ref.Name] = true
	}

	var unused []string
	for key := range data {
		if !referenced[key] {
			unused = append(unused, key)
		}
	}
	sort.Strings(unused)

	var warnings []types.LintWarning
	for _, key := range unused {
		warnings = append(warnings, types.LintWarning{
			WarningType: types.UnusedVariable,
			Message:     fmt.Sprintf("Data key '%s' is never referenced in the template", key),
			Suggestion:  "Remove the unused key or reference it in the template",
		})
	}
	return warnings
}

func joinPath(path []string) string {
	return strings.Join(path, ".")
}

// lineOrNil converts the reference line to the optional pointer form used
// by diagnostics.
func (r Reference) lineOrNil() *int {
	if r.Line == types.LineUnknown {
		return nil
	}
	n := r.Line
	return &n
}

// resolvePath walks a dotted path through nested maps in the data context.
func resolvePath(data map[string]any, path []string) any {
	if len(path) == 0 {
		return nil
	}
	var current any = data
	for _, segment := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = m[segment]
		if !ok {
			return nil
		}
	}
	return current
}

// elementKeys returns the union of object keys across the elements of a
// collection. Reports ok=false when the value is not a list of objects,
// in which case element accesses cannot be judged.
func elementKeys(v any) (map[string]bool, bool) {
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	keys := make(map[string]bool)
	sawObject := false
	for _, elem := range list {
		if m, ok := elem.(map[string]any); ok {
			sawObject = true
			for k := range m {
				keys[k] = true
			}
		}
	}
	if !sawObject {
		return nil, false
	}
	return keys, true
}
