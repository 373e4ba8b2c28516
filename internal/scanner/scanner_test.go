package scanner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docxtools/docxlint/internal/types"
)

func TestScan_VariableExpression(t *testing.T) {
	res := Scan("Hello {{ farmer.name }}!")
	require.Len(t, res.Tokens, 1)
	tok := res.Tokens[0]
	assert.Equal(t, types.VariableExpr, tok.Kind)
	assert.Equal(t, "farmer.name", tok.Expression)
	assert.Equal(t, "{{ farmer.name }}", tok.RawText)
	assert.Equal(t, 1, tok.LineNumber)
	assert.Empty(t, res.Errors)
}

func TestScan_BlockTokenKinds(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		kind    types.TokenKind
		tagName string
	}{
		{"if opens", "{% if x %}", types.BlockOpen, "if"},
		{"for opens", "{% for item in items %}", types.BlockOpen, "for"},
		{"with opens", "{% with a %}", types.BlockOpen, "with"},
		{"endif closes", "{% endif %}", types.BlockClose, "if"},
		{"endfor closes", "{% endfor %}", types.BlockClose, "for"},
		{"else", "{% else %}", types.BlockElse, "else"},
		{"elif", "{% elif y %}", types.BlockElse, "elif"},
		{"include standalone", "{% include 'x' %}", types.Standalone, "include"},
		{"set standalone", "{% set a = 1 %}", types.Standalone, "set"},
		{"break standalone", "{% break %}", types.Standalone, "break"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Scan(tt.text)
			require.Len(t, res.Tokens, 1)
			assert.Equal(t, tt.kind, res.Tokens[0].Kind)
			assert.Equal(t, tt.tagName, res.Tokens[0].TagName)
		})
	}
}

func TestScan_DocxtplPrefixes(t *testing.T) {
	res := Scan("{%tr for item in rows %}\n{%tr endfor %}")
	require.Len(t, res.Tokens, 2)
	assert.Equal(t, types.BlockOpen, res.Tokens[0].Kind)
	assert.Equal(t, "for", res.Tokens[0].TagName)
	assert.Equal(t, "tr", res.Tokens[0].Prefix)
	assert.Equal(t, types.BlockClose, res.Tokens[1].Kind)
	assert.Equal(t, "tr", res.Tokens[1].Prefix)
}

func TestScan_CommentsAreSkippedButCounted(t *testing.T) {
	res := Scan("{# note to self #}{{ a }}")
	require.Len(t, res.Tokens, 1)
	assert.Equal(t, types.VariableExpr, res.Tokens[0].Kind)
	assert.Equal(t, 2, res.TagCount)
}

func TestScan_LineNumbersAreMonotonic(t *testing.T) {
	text := "{{ a }}\ntext\n{% if b %}\n{{ c }}\n{% endif %}"
	res := Scan(text)
	require.Len(t, res.Tokens, 4)
	lines := []int{res.Tokens[0].LineNumber, res.Tokens[1].LineNumber, res.Tokens[2].LineNumber, res.Tokens[3].LineNumber}
	assert.Equal(t, []int{1, 3, 4, 5}, lines)
}

// Tags folded into the same physical line as a table-row marker get an
// unknown line rather than a fabricated one; the tr tag itself keeps its
// line as the row anchor.
func TestScan_TableRowShorthandBlanksLines(t *testing.T) {
	res := Scan("{%tr for p in participants %}{{ p.role }}{%tr endfor %}")
	require.Len(t, res.Tokens, 3)
	assert.Equal(t, 1, res.Tokens[0].LineNumber)
	assert.Equal(t, types.LineUnknown, res.Tokens[1].LineNumber)
	assert.Nil(t, res.Tokens[1].Line())
	assert.Equal(t, 1, res.Tokens[2].LineNumber)
}

func TestScan_UnknownTagKeywordProducesNoToken(t *testing.T) {
	// Unknown keywords are the engine parser's to report; the scanner
	// just refuses to classify them.
	res := Scan("{%invalid %}")
	assert.Empty(t, res.Tokens)
	assert.Empty(t, res.Errors)
	assert.Equal(t, 1, res.TagCount)
}

func TestScan_MalformedEmptyBlockTag(t *testing.T) {
	res := Scan("{% %}")
	assert.Empty(t, res.Tokens)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, types.SyntaxError, res.Errors[0].ErrorType)
	assert.Contains(t, res.Errors[0].Message, "Malformed block tag")
}

func TestScan_UnbalancedDelimiters(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"open variable", "Hello {{ name"},
		{"close variable", "name }} trailing"},
		{"open block", "{% if x"},
		{"close block", "x %} trailing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Scan(tt.text)
			require.Len(t, res.Errors, 1)
			assert.Equal(t, types.SyntaxError, res.Errors[0].ErrorType)
			assert.Contains(t, res.Errors[0].Message, "Unbalanced tag delimiter")
			require.NotNil(t, res.Errors[0].LineNumber)
			assert.Equal(t, 1, *res.Errors[0].LineNumber)
		})
	}
}

func TestScan_ContinuesPastMalformedTokens(t *testing.T) {
	res := Scan("{{ broken\n{% if ok %}{{ fine }}{% endif %}")
	require.Len(t, res.Errors, 1)
	assert.Len(t, res.Tokens, 3)
}

func TestScan_TokensInDocumentOrder(t *testing.T) {
	res := Scan("{% for x in xs %}{{ x }}{% endfor %}")
	require.Len(t, res.Tokens, 3)
	assert.Equal(t, types.BlockOpen, res.Tokens[0].Kind)
	assert.Equal(t, types.VariableExpr, res.Tokens[1].Kind)
	assert.Equal(t, types.BlockClose, res.Tokens[2].Kind)
}

func TestCountTags(t *testing.T) {
	text := strings.Repeat("{{ x }} {% if a %}{% endif %} {# c #}\n", 3)
	assert.Equal(t, 12, CountTags(text))
}

func TestScan_IdempotentAcrossRuns(t *testing.T) {
	text := "{% if a %}{{ b }}{% endif %}\n{{ c"
	first := Scan(text)
	second := Scan(text)
	assert.Equal(t, first.Tokens, second.Tokens)
	assert.Equal(t, first.Errors, second.Errors)
	assert.Equal(t, first.TagCount, second.TagCount)
}
