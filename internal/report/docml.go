package report

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
)

// docBuilder assembles a minimal WordprocessingML document. Every paragraph
// holds its full text in a single run, so placeholder tokens written through
// it survive as contiguous runs in the output and stay substitutable.
type docBuilder struct {
	body strings.Builder
}

func newDocBuilder() *docBuilder {
	return &docBuilder{}
}

func (b *docBuilder) heading(level int, text string) {
	size := 32
	switch level {
	case 1:
		size = 28
	case 2:
		size = 24
	case 3:
		size = 22
	}
	b.body.WriteString(`<w:p><w:pPr><w:bidi/><w:jc w:val="right"/></w:pPr>`)
	b.body.WriteString(`<w:r><w:rPr><w:b/><w:sz w:val="` + fmt.Sprint(size) + `"/></w:rPr>`)
	b.writeText(text)
	b.body.WriteString(`</w:r></w:p>`)
}

func (b *docBuilder) paragraph(text string) {
	b.body.WriteString(`<w:p><w:pPr><w:bidi/><w:jc w:val="right"/></w:pPr><w:r>`)
	b.writeText(text)
	b.body.WriteString(`</w:r></w:p>`)
}

func (b *docBuilder) pageBreak() {
	b.body.WriteString(`<w:p><w:r><w:br w:type="page"/></w:r></w:p>`)
}

// table writes a bordered grid. Cell order follows the given rows; callers
// lay out right-to-left content by ordering the columns accordingly.
func (b *docBuilder) table(rows [][]string) {
	if len(rows) == 0 {
		return
	}
	b.body.WriteString(`<w:tbl><w:tblPr><w:bidiVisual/><w:tblW w:w="0" w:type="auto"/>`)
	b.body.WriteString(`<w:tblBorders>` +
		`<w:top w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`<w:left w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`<w:bottom w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`<w:right w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`<w:insideH w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`<w:insideV w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`</w:tblBorders></w:tblPr>`)
	for _, row := range rows {
		b.body.WriteString(`<w:tr>`)
		for _, cell := range row {
			b.body.WriteString(`<w:tc><w:tcPr><w:tcW w:w="0" w:type="auto"/></w:tcPr>`)
			b.body.WriteString(`<w:p><w:pPr><w:bidi/><w:jc w:val="right"/></w:pPr><w:r>`)
			b.writeText(cell)
			b.body.WriteString(`</w:r></w:p></w:tc>`)
		}
		b.body.WriteString(`</w:tr>`)
	}
	b.body.WriteString(`</w:tbl>`)
}

func (b *docBuilder) writeText(text string) {
	b.body.WriteString(`<w:t xml:space="preserve">`)
	for _, r := range text {
		switch r {
		case '&':
			b.body.WriteString("&amp;")
		case '<':
			b.body.WriteString("&lt;")
		case '>':
			b.body.WriteString("&gt;")
		default:
			b.body.WriteRune(r)
		}
	}
	b.body.WriteString(`</w:t>`)
}

const (
	docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
		`</Types>`

	docxRootRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
		`</Relationships>`

	docxDocumentRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`
)

// bytes packs the accumulated body into a DOCX container.
func (b *docBuilder) bytes() ([]byte, error) {
	var document strings.Builder
	document.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	document.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	document.WriteString(b.body.String())
	document.WriteString(`<w:sectPr><w:bidi/></w:sectPr></w:body></w:document>`)

	entries := []struct{ name, content string }{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRootRels},
		{"word/document.xml", document.String()},
		{"word/_rels/document.xml.rels", docxDocumentRels},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			return nil, fmt.Errorf("creating docx entry %s: %w", e.name, err)
		}
		if _, err := w.Write([]byte(e.content)); err != nil {
			return nil, fmt.Errorf("writing docx entry %s: %w", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing docx container: %w", err)
	}
	return buf.Bytes(), nil
}
