// Package variables analyzes identifier usage inside template expressions
// and cross-references it against a provided data context.
package variables

import (
	"regexp"
	"strings"

	"github.com/docxtools/docxlint/internal/types"
)

var (
	// identifierPath matches a top-level identifier with optional dotted
	// accesses, e.g. "farmer.address.city".
	identifierPath = regexp.MustCompile(`\b([A-Za-z_]\w*)((?:\.\w+)*)`)

	// stringLiteral matches single- or double-quoted literals so their
	// contents are not mistaken for identifiers.
	stringLiteral = regexp.MustCompile(`'[^']*'|"[^"]*"`)

	// filterName matches the filter identifier right after a pipe; the
	// filter's own name is not a data reference.
	filterName = regexp.MustCompile(`\|\s*\w+`)

	// forSpec splits a for clause into bound names and the source
	// expression, e.g. "item in participants" or "k, v in row.cells".
	forSpec = regexp.MustCompile(`^\s*(\w+(?:\s*,\s*\w+)*)\s+in\s+(.+)$`)
)

// expressionKeywords are Jinja operators and literals that look like
// identifiers but never reference data.
var expressionKeywords = map[string]bool{
	"and": true, "or": true, "not": true, "in": true, "is": true,
	"if": true, "else": true, "true": true, "false": true, "none": true,
	"True": true, "False": true, "None": true,
}

// Reference is one identifier usage found inside a template expression.
type Reference struct {
	Name    string // top-level identifier
	Path    []string
	Line    int // types.LineUnknown when unattributable
	Context string
	// Bound marks Name as a for-loop variable. Binding is the loop's
	// source path; it stays nil when the source expression has no
	// resolvable identifier (e.g. "for i in range(5)").
	Bound   bool
	Binding []string
}

// Analyze walks the token stream and collects every identifier reference
// from variable expressions and if/elif/for conditions. Loop-bound names
// carry their binding so callers can resolve element-level accesses; the
// built-in "loop" accessor is never reported.
func Analyze(tokens []types.TemplateToken) []Reference {
	var refs []Reference

	// Stack of in-scope for bindings: bound name -> source path.
	type scope struct {
		tag      string
		bindings map[string][]string
	}
	var stack []scope

	lookup := func(name string) ([]string, bool) {
		for i := len(stack) - 1; i >= 0; i-- {
			if path, ok := stack[i].bindings[name]; ok {
				return path, true
			}
		}
		return nil, false
	}

	for _, tok := range tokens {
		switch tok.Kind {
		case types.BlockOpen:
			if tok.TagName == "for" {
				bound, source := parseForSpec(tok.Expression)
				if source != nil {
					refs = appendRefs(refs, source, tok, lookup)
				}
				bindings := make(map[string][]string, len(bound))
				var sourcePath []string
				if len(source) > 0 {
					sourcePath = source[0]
				}
				for _, name := range bound {
					bindings[name] = sourcePath
				}
				stack = append(stack, scope{tag: "for", bindings: bindings})
				continue
			}
			if tok.TagName == "if" || tok.TagName == "with" {
				refs = appendRefs(refs, extractPaths(tok.Expression), tok, lookup)
			}
			if opensScope(tok.TagName) {
				stack = append(stack, scope{tag: tok.TagName, bindings: map[string][]string{}})
			}
		case types.BlockClose:
			if len(stack) > 0 && stack[len(stack)-1].tag == tok.TagName {
				stack = stack[:len(stack)-1]
			}
		case types.BlockElse:
			if tok.TagName == "elif" {
				refs = appendRefs(refs, extractPaths(tok.Expression), tok, lookup)
			}
		case types.VariableExpr:
			refs = appendRefs(refs, extractPaths(tok.Expression), tok, lookup)
		}
	}

	return refs
}

// opensScope reports whether a paired tag opens a matching scope on the
// binding stack. Every paired tag does except "for", which pushes its own
// scope with bindings attached.
func opensScope(tag string) bool {
	return tag != "for"
}

func appendRefs(refs []Reference, paths [][]string, tok types.TemplateToken, lookup func(string) ([]string, bool)) []Reference {
	for _, path := range paths {
		name := path[0]
		if name == "loop" || expressionKeywords[name] {
			continue
		}
		ref := Reference{
			Name:    name,
			Path:    path,
			Line:    tok.LineNumber,
			Context: tok.RawText,
		}
		if binding, ok := lookup(name); ok {
			ref.Bound = true
			ref.Binding = binding
		}
		refs = append(refs, ref)
	}
	return refs
}

// parseForSpec splits a for expression into its bound names and the
// referenced source paths. Returns nil source when the clause is not a
// recognizable "names in expr" form.
func parseForSpec(expr string) (bound []string, source [][]string) {
	m := forSpec.FindStringSubmatch(expr)
	if m == nil {
		return nil, nil
	}
	for _, name := range strings.Split(m[1], ",") {
		bound = append(bound, strings.TrimSpace(name))
	}
	source = extractPaths(m[2])
	if len(source) == 0 {
		return bound, nil
	}
	return bound, source
}

// extractPaths pulls every dotted identifier path out of an expression,
// skipping string literal contents, filter names and numeric literals.
func extractPaths(expr string) [][]string {
	cleaned := stringLiteral.ReplaceAllString(expr, "")
	cleaned = filterName.ReplaceAllString(cleaned, "|")

	var paths [][]string
	for _, m := range identifierPath.FindAllStringSubmatchIndex(cleaned, -1) {
		name := cleaned[m[2]:m[3]]
		if expressionKeywords[name] {
			continue
		}
		// A name directly followed by ( is a call, not a data reference.
		if end := m[1]; end < len(cleaned) && cleaned[end] == '(' {
			continue
		}
		paths = append(paths, strings.Split(cleaned[m[0]:m[1]], "."))
	}
	return paths
}
