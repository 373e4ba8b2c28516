package variables

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docxtools/docxlint/internal/scanner"
	"github.com/docxtools/docxlint/internal/types"
)

func TestCheckUndefined_KnownKeyProducesNothing(t *testing.T) {
	scan := scanner.Scan("{{ farmer.name }}")
	data := map[string]any{"farmer": map[string]any{"name": "Asha"}}
	assert.Empty(t, CheckUndefined(scan.Tokens, data))
}

func TestCheckUndefined_MissingTopLevelKey(t *testing.T) {
	scan := scanner.Scan("{{ organization.name }} {{ farmer.name }}")
	data := map[string]any{"farmer": map[string]any{"name": "Asha"}}
	warnings := CheckUndefined(scan.Tokens, data)
	require.Len(t, warnings, 1)
	assert.Equal(t, types.UndefinedVariableWarn, warnings[0].WarningType)
	assert.Contains(t, warnings[0].Message, "'organization'")
}

func TestCheckUndefined_ReportsEachNameOnce(t *testing.T) {
	scan := scanner.Scan("{{ missing }} {{ missing.a }} {{ missing.b }}")
	warnings := CheckUndefined(scan.Tokens, map[string]any{})
	assert.Len(t, warnings, 1)
}

func TestCheckUndefined_LoopVariableFieldAccess(t *testing.T) {
	scan := scanner.Scan("{%tr for item in participants %}{{ item.role }}{%tr endfor %}")
	data := map[string]any{
		"participants": []any{
			map[string]any{"name": "Asha", "phone": "123"},
			map[string]any{"name": "Benoit"},
		},
	}
	warnings := CheckUndefined(scan.Tokens, data)
	require.Len(t, warnings, 1)
	// The missing field is reported, not the loop variable.
	assert.Contains(t, warnings[0].Message, "'role'")
	assert.Contains(t, warnings[0].Message, "'participants'")
	assert.NotContains(t, warnings[0].Message, "'item'")
}

func TestCheckUndefined_LoopVariableFieldPresent(t *testing.T) {
	scan := scanner.Scan("{% for item in participants %}{{ item.name }}{% endfor %}")
	data := map[string]any{
		"participants": []any{map[string]any{"name": "Asha"}},
	}
	assert.Empty(t, CheckUndefined(scan.Tokens, data))
}

func TestCheckUndefined_UnresolvableCollectionIsSkipped(t *testing.T) {
	// The bound collection is not in the data at all; the loop variable's
	// accesses cannot be judged and produce no noise beyond the missing
	// collection itself.
	scan := scanner.Scan("{% for item in rows %}{{ item.x }}{% endfor %}")
	warnings := CheckUndefined(scan.Tokens, map[string]any{"other": 1})
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "'rows'")
}

func TestCheckUndefined_RangeLoopVariableNotFlagged(t *testing.T) {
	// The loop source has no data reference at all; the bound name must
	// not fall through to the top-level key check.
	scan := scanner.Scan("{% for i in range(5) %}{{ i }}{% endfor %}")
	warnings := CheckUndefined(scan.Tokens, map[string]any{"title": "x"})
	assert.Empty(t, warnings)
}

func TestCheckUndefined_LoopMetadataAlwaysDefined(t *testing.T) {
	scan := scanner.Scan("{% for x in xs %}{{ loop.index }}{% endfor %}")
	data := map[string]any{"xs": []any{map[string]any{"a": 1}}}
	assert.Empty(t, CheckUndefined(scan.Tokens, data))
}

func TestCheckUnused(t *testing.T) {
	scan := scanner.Scan("{{ farmer.name }}{% for p in participants %}{{ p.x }}{% endfor %}")
	data := map[string]any{
		"farmer":       map[string]any{"name": "Asha"},
		"participants": []any{},
		"organization": map[string]any{},
		"extra":        1,
	}
	warnings := CheckUnused(scan.Tokens, data)
	require.Len(t, warnings, 2)
	assert.Equal(t, types.UnusedVariable, warnings[0].WarningType)
	assert.Contains(t, warnings[0].Message, "'extra'")
	assert.Contains(t, warnings[1].Message, "'organization'")
}

func TestCheckUnused_AllReferenced(t *testing.T) {
	scan := scanner.Scan("{{ a }}{% if b %}{% endif %}")
	data := map[string]any{"a": 1, "b": true}
	assert.Empty(t, CheckUnused(scan.Tokens, data))
}
