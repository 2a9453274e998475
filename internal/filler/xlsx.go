package filler

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"qalib/internal/domain"
)

// fillXLSX walks every cell of every sheet and substitutes placeholders.
// A cell whose entire value is a single placeholder is written as a raw
// string (or a typed number when coercion is enabled and the value parses);
// placeholders embedded in longer text are substituted in place.
func fillXLSX(template []byte, data domain.FlatRecord, opts Options) ([]byte, error) {
	f, err := excelize.OpenReader(bytes.NewReader(template))
	if err != nil {
		return nil, fmt.Errorf("%w: reading xlsx: %v", domain.ErrParse, err)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("%w: reading sheet %q: %v", domain.ErrParse, sheet, err)
		}
		for ri, row := range rows {
			for ci, cell := range row {
				if !strings.Contains(cell, "{{") {
					continue
				}
				axis, err := excelize.CoordinatesToCellName(ci+1, ri+1)
				if err != nil {
					return nil, fmt.Errorf("%w: cell (%d,%d): %v", domain.ErrParse, ci+1, ri+1, err)
				}
				if err := writeCell(f, sheet, axis, cell, data, opts); err != nil {
					return nil, err
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("%w: writing xlsx: %v", domain.ErrParse, err)
	}
	return buf.Bytes(), nil
}

func writeCell(f *excelize.File, sheet, axis, cell string, data domain.FlatRecord, opts Options) error {
	// Whole-cell placeholder: the value replaces the cell as-is.
	if m := placeholderPattern.FindStringSubmatch(cell); m != nil && m[0] == cell {
		value, ok := data[m[1]]
		if !ok {
			return nil
		}
		if opts.CoerceNumbers {
			if n, err := strconv.ParseFloat(value, 64); err == nil {
				if err := f.SetCellValue(sheet, axis, n); err != nil {
					return fmt.Errorf("%w: writing cell %s: %v", domain.ErrParse, axis, err)
				}
				return nil
			}
		}
		if err := f.SetCellStr(sheet, axis, value); err != nil {
			return fmt.Errorf("%w: writing cell %s: %v", domain.ErrParse, axis, err)
		}
		return nil
	}

	replaced := substitute(cell, data)
	if replaced == cell {
		return nil
	}
	if err := f.SetCellStr(sheet, axis, replaced); err != nil {
		return fmt.Errorf("%w: writing cell %s: %v", domain.ErrParse, axis, err)
	}
	return nil
}
