// Package filler substitutes {{key}} placeholders in DOCX/XLSX templates and
// fills AcroForm fields in PDF templates from a flat key/value record.
package filler

import (
	"archive/zip"
	"bytes"
	"fmt"
	"regexp"

	"qalib/internal/domain"
)

// placeholderPattern matches a {{key}} token and captures the key.
var placeholderPattern = regexp.MustCompile(`\{\{([^{}]+)\}\}`)

// Token returns the placeholder token for a key.
func Token(key string) string {
	return "{{" + key + "}}"
}

// Options configures optional fill behavior.
type Options struct {
	// CoerceNumbers writes numeric-looking values into XLSX cells that
	// consist of a single placeholder as typed numbers instead of strings.
	CoerceNumbers bool
}

// Result is a filled document. The input template bytes are never mutated.
type Result struct {
	Format      domain.TemplateFormat
	ContentType string
	Bytes       []byte
}

// DetectFormat determines the template format from the file signature.
// Both DOCX and XLSX are zip containers, so zip entries decide between them.
func DetectFormat(template []byte) (domain.TemplateFormat, error) {
	if bytes.HasPrefix(template, []byte("%PDF")) {
		return domain.TemplateFormatPDF, nil
	}

	zr, err := zip.NewReader(bytes.NewReader(template), int64(len(template)))
	if err != nil {
		return "", fmt.Errorf("%w: not a PDF or Office document", domain.ErrUnsupportedFormat)
	}
	for _, f := range zr.File {
		switch f.Name {
		case "word/document.xml":
			return domain.TemplateFormatDOCX, nil
		case "xl/workbook.xml":
			return domain.TemplateFormatXLSX, nil
		}
	}
	return "", fmt.Errorf("%w: zip container is neither DOCX nor XLSX", domain.ErrUnsupportedFormat)
}

// Fill detects the template format and substitutes placeholders with default
// options. Keys missing from data leave their placeholders verbatim.
func Fill(template []byte, data domain.FlatRecord) (*Result, error) {
	return FillWithOptions(template, data, Options{})
}

// FillWithOptions is Fill with explicit options.
func FillWithOptions(template []byte, data domain.FlatRecord, opts Options) (*Result, error) {
	format, err := DetectFormat(template)
	if err != nil {
		return nil, err
	}

	var out []byte
	switch format {
	case domain.TemplateFormatDOCX:
		out, err = fillDOCX(template, data)
	case domain.TemplateFormatXLSX:
		out, err = fillXLSX(template, data, opts)
	case domain.TemplateFormatPDF:
		out, err = fillPDF(template, data)
	}
	if err != nil {
		return nil, err
	}

	return &Result{
		Format:      format,
		ContentType: domain.TemplateContentTypes[format],
		Bytes:       out,
	}, nil
}

// substitute replaces every matched placeholder in s whose key exists in
// data. Unmatched tokens are returned byte-identical.
func substitute(s string, data domain.FlatRecord) string {
	return placeholderPattern.ReplaceAllStringFunc(s, func(token string) string {
		key := token[2 : len(token)-2]
		if v, ok := data[key]; ok {
			return v
		}
		return token
	})
}
