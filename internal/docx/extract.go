// Package docx provides extraction of template text from Word document packages.
package docx

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
)

// Paragraph is one flattened unit of document text: a body paragraph,
// a table-cell paragraph, or a header/footer paragraph.
type Paragraph struct {
	Text  string
	Index int    // 0-based position in extraction order
	Part  string // package part the paragraph came from
}

// Extraction is the ordered textual content of a document.
type Extraction struct {
	Paragraphs []Paragraph

	// offsets[i] is the byte offset of Paragraphs[i] within Text().
	offsets []int
	text    string
}

// Text returns the flattened template text, paragraphs joined by newlines.
func (e *Extraction) Text() string {
	return e.text
}

// ParagraphAt maps a byte offset within Text() back to the index of the
// originating paragraph. The mapping is best-effort: offsets past the end
// map to the last paragraph.
func (e *Extraction) ParagraphAt(offset int) int {
	if len(e.Paragraphs) == 0 {
		return 0
	}
	for i := len(e.offsets) - 1; i >= 0; i-- {
		if offset >= e.offsets[i] {
			return i
		}
	}
	return 0
}

// Extract pulls the ordered paragraph and table-cell text out of a document
// package. Word splits one logical sentence into multiple runs whenever
// formatting changes mid-sentence, so all run text within a paragraph is
// concatenated before anything downstream scans it for template tags.
func Extract(pkg *Package) (*Extraction, error) {
	ex := &Extraction{}
	for _, part := range pkg.TextParts() {
		data, ok := pkg.Part(part)
		if !ok {
			continue
		}
		if err := ex.appendPart(part, data); err != nil {
			return nil, err
		}
	}

	var b strings.Builder
	for i := range ex.Paragraphs {
		if i > 0 {
			b.WriteByte('\n')
		}
		ex.offsets = append(ex.offsets, b.Len())
		b.WriteString(ex.Paragraphs[i].Text)
	}
	ex.text = b.String()
	return ex, nil
}

// ExtractText is a convenience wrapper: raw document bytes in, flattened text out.
func ExtractText(content []byte) (string, error) {
	pkg, err := OpenPackage(content)
	if err != nil {
		return "", err
	}
	ex, err := Extract(pkg)
	if err != nil {
		return "", err
	}
	return ex.Text(), nil
}

// appendPart walks one part's WordprocessingML and appends its non-empty
// paragraphs in document order. Table cells nest paragraphs (w:tc > w:p),
// so a flat token walk already yields cell text in order.
func (e *Extraction) appendPart(part string, data []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var (
		inParagraph bool
		inText      bool
		current     strings.Builder
	)

	flush := func() {
		text := current.String()
		current.Reset()
		if strings.TrimSpace(text) == "" {
			return
		}
		e.Paragraphs = append(e.Paragraphs, Paragraph{
			Text:  text,
			Index: len(e.Paragraphs),
			Part:  part,
		})
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return &DocumentError{
				Message: "malformed XML in package part " + part,
				Cause:   err,
			}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inParagraph = true
			case "t":
				inText = inParagraph
			case "tab":
				if inParagraph {
					current.WriteByte('\t')
				}
			case "br", "cr":
				if inParagraph {
					current.WriteByte('\n')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				inParagraph = false
				flush()
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}

	return nil
}
