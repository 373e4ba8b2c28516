package docx

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildDocx assembles a minimal .docx package in memory.
func buildDocx(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	if _, ok := parts["[Content_Types].xml"]; !ok {
		parts["[Content_Types].xml"] = `<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`
	}
	for name, content := range parts {
		fw, err := zw.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// documentXML wraps paragraph markup in the document/body envelope.
func documentXML(body string) string {
	return `<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + body + `</w:body></w:document>`
}

func paragraph(runs ...string) string {
	p := "<w:p>"
	for _, r := range runs {
		p += `<w:r><w:t>` + r + `</w:t></w:r>`
	}
	return p + "</w:p>"
}

func TestOpenPackage_NotAZip(t *testing.T) {
	_, err := OpenPackage([]byte("this is not a zip archive"))
	require.Error(t, err)
	var docErr *DocumentError
	require.ErrorAs(t, err, &docErr)
	assert.Contains(t, docErr.Message, "bad zip structure")
}

func TestOpenPackage_MissingDocumentPart(t *testing.T) {
	content := buildDocx(t, map[string]string{
		"word/styles.xml": `<?xml version="1.0"?><w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"/>`,
	})
	_, err := OpenPackage(content)
	require.Error(t, err)
	var docErr *DocumentError
	require.ErrorAs(t, err, &docErr)
	assert.Contains(t, docErr.Message, "word/document.xml")
}

func TestExtract_SimpleParagraphs(t *testing.T) {
	content := buildDocx(t, map[string]string{
		"word/document.xml": documentXML(
			paragraph("Hello {{name}}") + paragraph("Second line"),
		),
	})
	text, err := ExtractText(content)
	require.NoError(t, err)
	assert.Equal(t, "Hello {{name}}\nSecond line", text)
}

// Word fragments a sentence into separate runs when formatting changes
// mid-sentence. A tag split across runs must still come out whole.
func TestExtract_TagSplitAcrossRuns(t *testing.T) {
	content := buildDocx(t, map[string]string{
		"word/document.xml": documentXML(
			paragraph("Dear {{", "farmer", ".name}}, welcome"),
		),
	})
	text, err := ExtractText(content)
	require.NoError(t, err)
	assert.Equal(t, "Dear {{farmer.name}}, welcome", text)
}

func TestExtract_TableCellText(t *testing.T) {
	table := "<w:tbl><w:tr><w:tc>" + paragraph("{%tr for item in participants %}") + "</w:tc>" +
		"<w:tc>" + paragraph("{{item.name}}") + "</w:tc></w:tr></w:tbl>"
	content := buildDocx(t, map[string]string{
		"word/document.xml": documentXML(paragraph("Participants:") + table + paragraph("Done")),
	})
	text, err := ExtractText(content)
	require.NoError(t, err)
	assert.Equal(t, "Participants:\n{%tr for item in participants %}\n{{item.name}}\nDone", text)
}

func TestExtract_SkipsEmptyParagraphs(t *testing.T) {
	content := buildDocx(t, map[string]string{
		"word/document.xml": documentXML(
			paragraph("First") + "<w:p></w:p>" + paragraph("   ") + paragraph("Last"),
		),
	})
	text, err := ExtractText(content)
	require.NoError(t, err)
	assert.Equal(t, "First\nLast", text)
}

func TestExtract_HeadersAndFootersAfterBody(t *testing.T) {
	content := buildDocx(t, map[string]string{
		"word/document.xml": documentXML(paragraph("Body text")),
		"word/header1.xml":  `<?xml version="1.0"?><w:hdr xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` + paragraph("Header text") + `</w:hdr>`,
		"word/footer1.xml":  `<?xml version="1.0"?><w:ftr xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` + paragraph("Footer text") + `</w:ftr>`,
	})
	text, err := ExtractText(content)
	require.NoError(t, err)
	assert.Equal(t, "Body text\nHeader text\nFooter text", text)
}

func TestExtract_TabsAndBreaks(t *testing.T) {
	content := buildDocx(t, map[string]string{
		"word/document.xml": documentXML(
			`<w:p><w:r><w:t>a</w:t><w:tab/><w:t>b</w:t><w:br/><w:t>c</w:t></w:r></w:p>`,
		),
	})
	text, err := ExtractText(content)
	require.NoError(t, err)
	assert.Equal(t, "a\tb\nc", text)
}

func TestExtract_MalformedXML(t *testing.T) {
	content := buildDocx(t, map[string]string{
		"word/document.xml": `<?xml version="1.0"?><w:document><w:body><w:p><w:r>`,
	})
	_, err := ExtractText(content)
	require.Error(t, err)
	var docErr *DocumentError
	require.ErrorAs(t, err, &docErr)
	assert.Contains(t, docErr.Message, "malformed XML")
}

func TestExtraction_ParagraphAt(t *testing.T) {
	content := buildDocx(t, map[string]string{
		"word/document.xml": documentXML(
			paragraph("first") + paragraph("second") + paragraph("third"),
		),
	})
	pkg, err := OpenPackage(content)
	require.NoError(t, err)
	ex, err := Extract(pkg)
	require.NoError(t, err)

	// "first\nsecond\nthird": offsets 0, 6, 13
	assert.Equal(t, 0, ex.ParagraphAt(0))
	assert.Equal(t, 0, ex.ParagraphAt(4))
	assert.Equal(t, 1, ex.ParagraphAt(6))
	assert.Equal(t, 2, ex.ParagraphAt(13))
	assert.Equal(t, 2, ex.ParagraphAt(999))
}

func TestPackage_WriteRoundTrip(t *testing.T) {
	content := buildDocx(t, map[string]string{
		"word/document.xml": documentXML(paragraph("Hello")),
	})
	pkg, err := OpenPackage(content)
	require.NoError(t, err)

	pkg.SetPart("word/document.xml", []byte(documentXML(paragraph("Replaced"))))

	var out bytes.Buffer
	require.NoError(t, pkg.Write(&out))

	text, err := ExtractText(out.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "Replaced", text)
}
