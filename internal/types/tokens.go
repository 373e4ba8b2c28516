// Package types provides type definitions for structured data used throughout the docxlint system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// TokenKind identifies the directive family a template token belongs to.
type TokenKind string

const (
	BlockOpen    TokenKind = "block_open"    // {% if ... %}, {% for ... %}, ...
	BlockClose   TokenKind = "block_close"   // {% endif %}, {% endfor %}, ...
	BlockElse    TokenKind = "block_else"    // {% else %}, {% elif ... %}
	Standalone   TokenKind = "standalone"    // {% include ... %}, {% set ... %}, ...
	VariableExpr TokenKind = "variable_expr" // {{ ... }}
)

// LineUnknown marks a token whose source line could not be determined.
// Tokens inside table-row shorthand constructs fold multiple template
// source lines into one physical line, so an exact number would be a guess.
const LineUnknown = 0

// TemplateToken is one recognized directive in the extracted template text.
type TemplateToken struct {
	Kind       TokenKind `json:"kind"`
	TagName    string    `json:"tag_name,omitempty"` // Directive keyword ("if", "endfor", ...); empty for VariableExpr
	Prefix     string    `json:"prefix,omitempty"`   // docxtpl placement prefix: "p", "tr", "tc" or "r"
	RawText    string    `json:"raw_text"`
	LineNumber int       `json:"line_number"` // 1-based, or LineUnknown
	Expression string    `json:"expression,omitempty"`
}

// Line returns the token's line number as an optional pointer,
// nil when the line is unknown.
func (t TemplateToken) Line() *int {
	if t.LineNumber == LineUnknown {
		return nil
	}
	n := t.LineNumber
	return &n
}
