package filler

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/form"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"qalib/internal/domain"
)

// fillPDF fills AcroForm text fields whose name or ID matches a record key.
// A PDF without an AcroForm is not fillable. A form where no field matches
// any key succeeds and returns the template unchanged.
func fillPDF(template []byte, data domain.FlatRecord) ([]byte, error) {
	conf := model.NewDefaultConfiguration()

	var exported bytes.Buffer
	if err := api.ExportFormJSON(bytes.NewReader(template), &exported, "", conf); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNotFillable, err)
	}

	var group form.FormGroup
	if err := json.Unmarshal(exported.Bytes(), &group); err != nil {
		return nil, fmt.Errorf("%w: decoding form export: %v", domain.ErrNotFillable, err)
	}
	if len(group.Forms) == 0 {
		return nil, fmt.Errorf("%w: document has no AcroForm", domain.ErrNotFillable)
	}

	matched := 0
	for _, frm := range group.Forms {
		for _, fld := range frm.TextFields {
			if fld.Locked {
				continue
			}
			value, ok := fieldValue(fld.Name, fld.ID, data)
			if !ok {
				continue
			}
			fld.Value = value
			matched++
		}
	}
	if matched == 0 {
		out := make([]byte, len(template))
		copy(out, template)
		return out, nil
	}

	filled, err := json.Marshal(&group)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding form values: %v", domain.ErrParse, err)
	}

	var buf bytes.Buffer
	if err := api.FillForm(bytes.NewReader(template), bytes.NewReader(filled), &buf, conf); err != nil {
		return nil, fmt.Errorf("%w: filling form: %v", domain.ErrParse, err)
	}
	return buf.Bytes(), nil
}

// fieldValue resolves a field against the record, preferring the field name
// over its internal ID.
func fieldValue(name, id string, data domain.FlatRecord) (string, bool) {
	if name != "" {
		if v, ok := data[name]; ok {
			return v, true
		}
	}
	if id != "" {
		if v, ok := data[id]; ok {
			return v, true
		}
	}
	return "", false
}
