package rendering

import (
	"bytes"
	"fmt"

	"github.com/flosch/pongo2/v6"

	"github.com/docxtools/docxlint/internal/docx"
	"github.com/docxtools/docxlint/internal/scanner"
	"github.com/docxtools/docxlint/internal/variables"
)

// RenderDocx renders a docx template against the given data context and
// returns the bytes of the rendered document. The body, headers and
// footers are all rendered; parts without template tags pass through
// untouched.
//
// Undefined variables are handled per mode: silent leaves them empty,
// marker substitutes a visible placeholder, strict refuses to render and
// returns an *UndefinedVariableError naming every missing variable.
func RenderDocx(content []byte, data map[string]any, mode UndefinedMode) ([]byte, error) {
	pkg, err := docx.OpenPackage(content)
	if err != nil {
		return nil, err
	}

	if data == nil {
		data = map[string]any{}
	}
	if mode == UndefinedStrict {
		if missing := undefinedNames(pkg, data); len(missing) > 0 {
			return nil, &UndefinedVariableError{Names: missing}
		}
	}
	ctx := pongo2.Context(data)
	if mode == UndefinedMarker {
		ctx = markerContext(pkg, data)
	}

	for _, name := range pkg.TextParts() {
		raw, ok := pkg.Part(name)
		if !ok {
			continue
		}
		xml := patchPartXML(string(raw))
		if !hasTemplateDelimiter(xml) {
			continue
		}
		tpl, err := pongo2.FromString(xml)
		if err != nil {
			return nil, &TemplateError{Message: "parsing " + name, Cause: err}
		}
		rendered, err := tpl.Execute(ctx)
		if err != nil {
			return nil, &RenderError{Message: "rendering " + name, Cause: err}
		}
		pkg.SetPart(name, []byte(rendered))
	}

	var buf bytes.Buffer
	if err := pkg.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing rendered document: %w", err)
	}
	return buf.Bytes(), nil
}

// undefinedNames collects the top-level variable names referenced by the
// template, across all text parts, that are absent from the data context.
// Loop variables are traced back to the collection they iterate.
func undefinedNames(pkg *docx.Package, data map[string]any) []string {
	extraction, err := docx.Extract(pkg)
	if err != nil || extraction.Text() == "" {
		return nil
	}
	scan := scanner.Scan(extraction.Text())

	seen := map[string]bool{}
	var names []string
	for _, ref := range variables.Analyze(scan.Tokens) {
		name := ref.Name
		if ref.Bound {
			// A nil binding means the loop source named no data key.
			if len(ref.Binding) == 0 {
				continue
			}
			name = ref.Binding[0]
		}
		if _, defined := data[name]; defined || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// markerContext layers visible placeholders over the data context for
// every undefined top-level variable, so the rendered document shows
// where data was missing instead of silently dropping it.
func markerContext(pkg *docx.Package, data map[string]any) pongo2.Context {
	ctx := pongo2.Context{}
	for k, v := range data {
		ctx[k] = v
	}
	for _, name := range undefinedNames(pkg, data) {
		if _, defined := ctx[name]; !defined {
			ctx[name] = "[missing: " + name + "]"
		}
	}
	return ctx
}
