// Package docx provides extraction of template text from Word document packages.
package docx

import (
	"archive/zip"
	"bytes"
	"io"
	"sort"
	"strings"
)

// mainDocumentPart is the one part every WordprocessingML package must carry.
const mainDocumentPart = "word/document.xml"

// Package is an opened .docx (OPC zip) package with its parts loaded into memory.
type Package struct {
	parts map[string][]byte
	order []string // zip entry order, preserved for rewriting
}

// OpenPackage reads raw document bytes as a .docx package.
// It returns a DocumentError if the bytes are not a valid zip archive
// or the main document part is missing.
func OpenPackage(content []byte) (*Package, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, &DocumentError{
			Message: "file is not a valid .docx package (bad zip structure)",
			Cause:   err,
		}
	}

	pkg := &Package{parts: make(map[string][]byte, len(zr.File))}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, &DocumentError{
				Message: "failed to open package part " + f.Name,
				Cause:   err,
			}
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, &DocumentError{
				Message: "failed to read package part " + f.Name,
				Cause:   err,
			}
		}
		pkg.parts[f.Name] = data
		pkg.order = append(pkg.order, f.Name)
	}

	if _, ok := pkg.parts[mainDocumentPart]; !ok {
		return nil, &DocumentError{
			Message: "package has no word/document.xml part (not a Word document)",
		}
	}

	return pkg, nil
}

// Part returns the raw bytes of a named package part.
func (p *Package) Part(name string) ([]byte, bool) {
	data, ok := p.parts[name]
	return data, ok
}

// SetPart replaces the content of a named package part.
func (p *Package) SetPart(name string, data []byte) {
	if _, ok := p.parts[name]; !ok {
		p.order = append(p.order, name)
	}
	p.parts[name] = data
}

// TextParts returns the names of all text-bearing parts in extraction order:
// the main document first, then headers, then footers.
func (p *Package) TextParts() []string {
	var headers, footers []string
	for name := range p.parts {
		switch {
		case strings.HasPrefix(name, "word/header") && strings.HasSuffix(name, ".xml"):
			headers = append(headers, name)
		case strings.HasPrefix(name, "word/footer") && strings.HasSuffix(name, ".xml"):
			footers = append(footers, name)
		}
	}
	sort.Strings(headers)
	sort.Strings(footers)

	names := []string{mainDocumentPart}
	names = append(names, headers...)
	names = append(names, footers...)
	return names
}

// Write serializes the package back into .docx bytes, preserving entry order.
func (p *Package) Write(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, name := range p.order {
		fw, err := zw.Create(name)
		if err != nil {
			return &DocumentError{Message: "failed to write package part " + name, Cause: err}
		}
		if _, err := fw.Write(p.parts[name]); err != nil {
			return &DocumentError{Message: "failed to write package part " + name, Cause: err}
		}
	}
	return zw.Close()
}
