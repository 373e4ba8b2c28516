// Package rendering injects a data context into a docx Jinja template and
// produces the rendered document.
package rendering

import (
	"regexp"
	"strings"
)

// Word fragments template tags across runs whenever formatting changes
// mid-tag, and docxtpl placement prefixes need to move to the XML element
// they control. patchPartXML rewrites one part's XML so the whole part can
// be fed to the template engine as-is:
//
//  1. every paragraph whose concatenated run text contains a template
//     delimiter is collapsed into a single run holding the full text;
//  2. {%p ... %} tags replace their enclosing paragraph, {%tr ... %}
//     their enclosing table row and {%tc ... %} their enclosing cell, so
//     the construct repeats or elides the element rather than just the
//     text inside it;
//  3. {{r expr }} richtext markers become plain expressions and docxtpl
//     table helper tags are stripped.
//
// The element-level replacements leave bare tags between XML elements;
// rendering consumes them and the output is well-formed again.
func patchPartXML(xml string) string {
	out := paragraphElement.ReplaceAllStringFunc(xml, coalesceParagraph)
	out = replaceEnclosing(out, rowElement, tableRowTag)
	out = replaceEnclosing(out, cellElement, tableCellTag)
	out = richtextTag.ReplaceAllString(out, "{{ ")
	out = helperTag.ReplaceAllString(out, "")
	return out
}

var (
	// paragraphElement's lazy body is safe: </w:pPr> never contains the
	// literal </w:p>.
	paragraphElement = regexp.MustCompile(`(?s)<w:p(?:>| [^>]*>).*?</w:p>`)
	rowElement       = regexp.MustCompile(`(?s)<w:tr(?:>| [^>]*>).*?</w:tr>`)
	cellElement      = regexp.MustCompile(`(?s)<w:tc(?:>| [^>]*>).*?</w:tc>`)

	paragraphProps = regexp.MustCompile(`(?s)<w:pPr(?:>| [^>]*>).*?</w:pPr>`)
	runProps       = regexp.MustCompile(`(?s)<w:rPr(?:>| [^>]*>).*?</w:rPr>`)
	runText        = regexp.MustCompile(`(?s)<w:t(?:>| [^>]*>)(.*?)</w:t>`)

	paragraphTag = regexp.MustCompile(`\{%p\s+([^%]*?)\s*%\}`)
	tableRowTag  = regexp.MustCompile(`\{%tr\s+([^%]*?)\s*%\}`)
	tableCellTag = regexp.MustCompile(`\{%tc\s+([^%]*?)\s*%\}`)
	richtextTag  = regexp.MustCompile(`\{\{r\s+`)
	helperTag    = regexp.MustCompile(`\{%-?\s*(?:cellbg|colspan|hm|vm)\b[^%]*%\}`)
)

// coalesceParagraph merges all run text of one paragraph into a single
// run when the text carries template delimiters. Paragraph properties and
// the first run's properties survive; per-run formatting changes inside a
// tag do not, which is the price of making the tag whole again.
func coalesceParagraph(p string) string {
	var text strings.Builder
	for _, m := range runText.FindAllStringSubmatch(p, -1) {
		text.WriteString(m[1])
	}
	joined := text.String()
	plain := UnescapeXML(joined)
	if !hasTemplateDelimiter(plain) {
		return p
	}

	// A p-placement tag claims the whole paragraph: the bare tag takes
	// its place so the engine repeats or removes the element itself.
	if tags := paragraphTag.FindAllStringSubmatch(joined, -1); len(tags) > 0 {
		parts := make([]string, 0, len(tags))
		for _, m := range tags {
			parts = append(parts, "{% "+strings.TrimSpace(m[1])+" %}")
		}
		return strings.Join(parts, "")
	}

	var b strings.Builder
	b.WriteString("<w:p>")
	if props := paragraphProps.FindString(p); props != "" {
		b.WriteString(props)
	}
	b.WriteString("<w:r>")
	if props := runProps.FindString(p); props != "" {
		b.WriteString(props)
	}
	b.WriteString(`<w:t xml:space="preserve">`)
	b.WriteString(joined) // already XML-escaped source text
	b.WriteString(`</w:t></w:r></w:p>`)
	return b.String()
}

// replaceEnclosing substitutes a whole enclosing element (table row or
// cell) with the placement tags found inside it.
func replaceEnclosing(xml string, element, tag *regexp.Regexp) string {
	return element.ReplaceAllStringFunc(xml, func(el string) string {
		tags := tag.FindAllStringSubmatch(el, -1)
		if len(tags) == 0 {
			return el
		}
		parts := make([]string, 0, len(tags))
		for _, m := range tags {
			parts = append(parts, "{% "+strings.TrimSpace(m[1])+" %}")
		}
		return strings.Join(parts, "")
	})
}

func hasTemplateDelimiter(s string) bool {
	return strings.Contains(s, "{{") || strings.Contains(s, "{%") || strings.Contains(s, "{#")
}
