package report

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// htmlShell wraps the converted report body in a printable standalone
// page. The page-break divs emitted by the markdown formatter become
// real page breaks when the HTML is printed or fed to a PDF converter.
const htmlShell = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; margin: 2em auto; max-width: 52em; line-height: 1.5; color: #1f2328; }
table { border-collapse: collapse; width: 100%%; margin: 1em 0; }
th, td { border: 1px solid #d1d9e0; padding: 6px 13px; text-align: left; vertical-align: top; }
th { background: #f6f8fa; }
code { background: #f6f8fa; padding: 0.2em 0.4em; border-radius: 6px; font-size: 85%%; }
pre { background: #f6f8fa; padding: 16px; border-radius: 6px; overflow-x: auto; }
pre code { background: none; padding: 0; }
.page-break { page-break-after: always; }
</style>
</head>
<body>
%s</body>
</html>
`

type HTMLRenderer struct {
	markdown goldmark.Markdown
}

func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()), // page-break divs and <br/> in table cells
		),
	}
}

// RenderHTML converts a markdown lint report into a standalone HTML page.
func (r *HTMLRenderer) RenderHTML(markdown string, title string) ([]byte, error) {
	var body bytes.Buffer
	if err := r.markdown.Convert([]byte(markdown), &body); err != nil {
		return nil, fmt.Errorf("failed to convert report markdown: %w", err)
	}
	page := fmt.Sprintf(htmlShell, htmlEscapeTitle(title), body.String())
	return []byte(page), nil
}

func htmlEscapeTitle(title string) string {
	var b bytes.Buffer
	for _, r := range title {
		switch r {
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '&':
			b.WriteString("&amp;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
