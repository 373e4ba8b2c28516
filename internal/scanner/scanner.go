// Package scanner tokenizes extracted template text into a linear
// sequence of Jinja directives with source line numbers.
package scanner

import (
	"fmt"
	"strings"

	"github.com/docxtools/docxlint/internal/types"
)

// Result holds the ordered token stream plus any diagnostics the scan
// itself produced. Scanning never aborts on a bad token; it records the
// problem and continues so one pass surfaces as many issues as possible.
type Result struct {
	Tokens   []types.TemplateToken
	Errors   []types.LintError
	TagCount int
}

// Scan tokenizes the flattened template text.
func Scan(text string) *Result {
	res := &Result{TagCount: CountTags(text)}

	// Mask complete tags as they are consumed; whatever delimiter
	// fragments remain afterwards are malformed.
	masked := []byte(text)

	for _, loc := range anyTag.FindAllStringIndex(text, -1) {
		raw := text[loc[0]:loc[1]]
		line := lineAt(text, loc[0])
		mask(masked, loc[0], loc[1])

		switch {
		case strings.HasPrefix(raw, "{#"):
			// Comments are recognized and skipped.
		case strings.HasPrefix(raw, "{{"):
			expr := strings.TrimSpace(raw[2 : len(raw)-2])
			res.Tokens = append(res.Tokens, types.TemplateToken{
				Kind:       types.VariableExpr,
				RawText:    raw,
				LineNumber: line,
				Expression: expr,
			})
		default:
			res.scanBlockTag(raw, line)
		}
	}

	res.scanLooseDelimiters(text, masked)
	res.blankTableRowLines()
	return res
}

// scanBlockTag classifies one {% ... %} tag into open/close/else/standalone,
// or records a diagnostic for empty and unknown keywords.
func (r *Result) scanBlockTag(raw string, line int) {
	m := blockInner.FindStringSubmatch(raw)
	if m == nil {
		r.Errors = append(r.Errors, types.LintError{
			LineNumber: types.IntPtr(line),
			ErrorType:  types.SyntaxError,
			Message:    fmt.Sprintf("Malformed block tag: %s", raw),
			Context:    raw,
			Suggestion: "Block tags must have the form {% keyword ... %}",
		})
		return
	}
	prefix, keyword, expr := m[1], strings.ToLower(m[2]), m[3]

	tok := types.TemplateToken{
		TagName:    keyword,
		Prefix:     prefix,
		RawText:    raw,
		LineNumber: line,
		Expression: expr,
	}

	switch {
	case pairedTags[keyword]:
		tok.Kind = types.BlockOpen
	case strings.HasPrefix(keyword, "end") && pairedTags[keyword[3:]]:
		tok.Kind = types.BlockClose
		tok.TagName = keyword[3:]
	case elseTags[keyword]:
		tok.Kind = types.BlockElse
	case standaloneTags[keyword]:
		tok.Kind = types.Standalone
	default:
		r.Errors = append(r.Errors, types.LintError{
			LineNumber: types.IntPtr(line),
			ErrorType:  types.SyntaxError,
			Message:    fmt.Sprintf("Unknown Jinja tag: %s", keyword),
			Context:    raw,
			TagName:    keyword,
			Suggestion: "Check if tag name is spelled correctly",
		})
		return
	}

	r.Tokens = append(r.Tokens, tok)
}

// scanLooseDelimiters reports delimiter fragments not consumed by any
// complete tag: an unbalanced {{, }}, {% or %}.
func (r *Result) scanLooseDelimiters(text string, masked []byte) {
	for _, loc := range looseDelimiter.FindAllIndex(masked, -1) {
		frag := text[loc[0]:loc[1]]
		r.Errors = append(r.Errors, types.LintError{
			LineNumber: types.IntPtr(lineAt(text, loc[0])),
			Column:     types.IntPtr(columnAt(text, loc[0])),
			ErrorType:  types.SyntaxError,
			Message:    fmt.Sprintf("Unbalanced tag delimiter %q", frag),
			Context:    lineText(text, loc[0]),
			Suggestion: "Every {{ needs a matching }} and every {% a matching %}",
		})
	}
}

// blankTableRowLines clears the line attribution of tokens that share a
// physical line with a table-row (tr) or table-cell (tc) placement tag.
// Row-repeat markup folds multiple template source lines into one physical
// line, so an exact number there would be a fabrication; the tr/tc tag
// itself keeps its line as the row anchor.
func (r *Result) blankTableRowLines() {
	folded := make(map[int]bool)
	for _, tok := range r.Tokens {
		if tok.Prefix == "tr" || tok.Prefix == "tc" {
			folded[tok.LineNumber] = true
		}
	}
	if len(folded) == 0 {
		return
	}
	for i, tok := range r.Tokens {
		if folded[tok.LineNumber] && tok.Prefix != "tr" && tok.Prefix != "tc" {
			r.Tokens[i].LineNumber = types.LineUnknown
		}
	}
}

// lineAt returns the 1-based line number of a byte offset.
func lineAt(text string, offset int) int {
	return strings.Count(text[:offset], "\n") + 1
}

// columnAt returns the 0-based column of a byte offset within its line.
func columnAt(text string, offset int) int {
	if i := strings.LastIndexByte(text[:offset], '\n'); i >= 0 {
		return offset - i - 1
	}
	return offset
}

// lineText returns the full text of the line containing the given offset.
func lineText(text string, offset int) string {
	start := 0
	if i := strings.LastIndexByte(text[:offset], '\n'); i >= 0 {
		start = i + 1
	}
	end := len(text)
	if i := strings.IndexByte(text[offset:], '\n'); i >= 0 {
		end = offset + i
	}
	return strings.TrimSpace(text[start:end])
}

// mask overwrites a consumed span with spaces so loose-delimiter detection
// only sees unconsumed fragments.
func mask(b []byte, start, end int) {
	for i := start; i < end; i++ {
		b[i] = ' '
	}
}
