// Package scanner tokenizes extracted template text into a linear
// sequence of Jinja directives with source line numbers.
package scanner

import "regexp"

var (
	// anyTag matches the three directive families in one pass so tokens
	// come out in document order: comments, variable expressions, block tags.
	anyTag = regexp.MustCompile(`(\{#[^#]*#\})|(\{\{[^{}]*\}\})|(\{%[^%]*%\})`)

	// blockInner splits an already-matched {% ... %} tag into its docxtpl
	// placement prefix (p, tr, tc, r), keyword and trailing expression.
	blockInner = regexp.MustCompile(`^\{%-?\s*(?:(p|tr|tc|r)\s+)?(\w+)\s*(.*?)\s*-?%\}$`)

	// looseDelimiter finds delimiter fragments left over after all complete
	// tags have been masked out: these are unbalanced {{, }}, {% or %}.
	looseDelimiter = regexp.MustCompile(`\{\{|\}\}|\{%|%\}|\{#|#\}`)

	// fullTag matches any complete Jinja tag occurrence; used for the
	// jinja_tags_count statistic.
	fullTag = regexp.MustCompile(`\{[%{#][^}%#]*[%}#]\}`)
)

// pairedTags require a matching end tag.
var pairedTags = map[string]bool{
	"if":         true,
	"for":        true,
	"with":       true,
	"block":      true,
	"macro":      true,
	"raw":        true,
	"autoescape": true,
}

// elseTags are valid only inside an open if/for block.
var elseTags = map[string]bool{
	"else": true,
	"elif": true,
}

// standaloneTags are self-contained directives requiring no closer.
// cellbg, colspan, hm and vm are docxtpl table extensions.
var standaloneTags = map[string]bool{
	"include":  true,
	"import":   true,
	"from":     true,
	"extends":  true,
	"break":    true,
	"continue": true,
	"set":      true,
	"cellbg":   true,
	"colspan":  true,
	"hm":       true,
	"vm":       true,
}

// CountTags returns the number of Jinja tag occurrences in the text,
// comments included.
func CountTags(text string) int {
	return len(fullTag.FindAllString(text, -1))
}
