package rendering

import "strings"

// EscapeXML escapes special XML characters in text
// Special characters: & < > " '
func EscapeXML(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) * 2) // Pre-allocate space for potential escaping

	for _, r := range text {
		switch r {
		case '&':
			result.WriteString("&amp;")
		case '<':
			result.WriteString("&lt;")
		case '>':
			result.WriteString("&gt;")
		case '"':
			result.WriteString("&quot;")
		case '\'':
			result.WriteString("&apos;")
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

// UnescapeXML reverses EscapeXML for the five named entities.
func UnescapeXML(text string) string {
	if text == "" {
		return ""
	}
	return xmlUnescaper.Replace(text)
}

// strings.Replacer takes the leftmost match at each position and never
// rescans replaced text, so &amp;lt; correctly becomes &lt; in one pass.
var xmlUnescaper = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
	"&amp;", "&",
)
