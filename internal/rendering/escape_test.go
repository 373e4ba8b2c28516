package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeXML_EmptyString(t *testing.T) {
	result := EscapeXML("")
	assert.Equal(t, "", result)
}

func TestEscapeXML_NoSpecialCharacters(t *testing.T) {
	text := "This is normal text with no special characters"
	result := EscapeXML(text)
	assert.Equal(t, text, result)
}

func TestEscapeXML_Ampersand(t *testing.T) {
	result := EscapeXML("A & B")
	assert.Equal(t, "A &amp; B", result)
}

func TestEscapeXML_AngleBrackets(t *testing.T) {
	result := EscapeXML("a < b > c")
	assert.Equal(t, "a &lt; b &gt; c", result)
}

func TestEscapeXML_Quotes(t *testing.T) {
	result := EscapeXML(`say "hi" to O'Brien`)
	assert.Equal(t, "say &quot;hi&quot; to O&apos;Brien", result)
}

func TestEscapeXML_TemplateDelimitersPassThrough(t *testing.T) {
	text := "{{ name }} and {% if x %}"
	result := EscapeXML(text)
	assert.Equal(t, text, result)
}

func TestEscapeXML_UnicodeCharacters(t *testing.T) {
	text := "résumé with unicode: α β γ"
	result := EscapeXML(text)
	// Unicode should pass through unchanged
	assert.Equal(t, text, result)
}

func TestUnescapeXML_RoundTrip(t *testing.T) {
	text := `<tag attr="v">a & b 'c'</tag>`
	assert.Equal(t, text, UnescapeXML(EscapeXML(text)))
}

func TestUnescapeXML_DoubleEscapedEntity(t *testing.T) {
	// &amp;lt; is an escaped "&lt;", not an escaped "<".
	result := UnescapeXML("&amp;lt;")
	assert.Equal(t, "&lt;", result)
}

func TestUnescapeXML_EmptyString(t *testing.T) {
	assert.Equal(t, "", UnescapeXML(""))
}
