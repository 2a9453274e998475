package filler

import (
	"bytes"
	"fmt"

	"github.com/nguyenthenguyen/docx"

	"qalib/internal/domain"
)

// fillDOCX replaces placeholder tokens in the document body, headers and
// footers. Placeholders split across formatting runs are not substituted;
// templates should keep each token inside one run.
func fillDOCX(template []byte, data domain.FlatRecord) ([]byte, error) {
	r, err := docx.ReadDocxFromMemory(bytes.NewReader(template), int64(len(template)))
	if err != nil {
		return nil, fmt.Errorf("%w: reading docx: %v", domain.ErrParse, err)
	}
	defer r.Close()

	doc := r.Editable()
	for key, value := range data {
		token := Token(key)
		if err := doc.Replace(token, value, -1); err != nil {
			return nil, fmt.Errorf("%w: replacing %q: %v", domain.ErrParse, token, err)
		}
		if err := doc.ReplaceHeader(token, value); err != nil {
			return nil, fmt.Errorf("%w: replacing %q in header: %v", domain.ErrParse, token, err)
		}
		if err := doc.ReplaceFooter(token, value); err != nil {
			return nil, fmt.Errorf("%w: replacing %q in footer: %v", domain.ErrParse, token, err)
		}
	}

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return nil, fmt.Errorf("%w: writing docx: %v", domain.ErrParse, err)
	}
	return buf.Bytes(), nil
}
