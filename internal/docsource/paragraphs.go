// Package docsource reads job description source documents (DOCX) and
// slices them into per-job raw blocks using heuristic section markers.
package docsource

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"qalib/internal/domain"
)

// Paragraphs extracts the non-empty paragraph texts of a DOCX body in
// document order. Runs within a paragraph are concatenated.
func Paragraphs(b []byte) ([]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, fmt.Errorf("%w: not a zip container", domain.ErrUnsupportedFormat)
	}

	var docEntry *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docEntry = f
			break
		}
	}
	if docEntry == nil {
		return nil, fmt.Errorf("%w: missing word/document.xml", domain.ErrUnsupportedFormat)
	}

	rc, err := docEntry.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: opening document body: %v", domain.ErrParse, err)
	}
	defer rc.Close()

	return scanParagraphs(rc)
}

func scanParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		paras   []string
		current strings.Builder
		inPara  bool
		inText  bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: decoding document body: %v", domain.ErrParse, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inPara = true
				current.Reset()
			case "t":
				inText = inPara
			case "tab", "br":
				if inPara {
					current.WriteByte(' ')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				if text := strings.TrimSpace(current.String()); text != "" {
					paras = append(paras, text)
				}
				inPara = false
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}
	return paras, nil
}
