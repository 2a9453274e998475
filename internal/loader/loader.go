// Package loader parses uploaded data sources (JSON, YAML, CSV) into the
// flat key/value record consumed by the template filler.
package loader

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"qalib/internal/domain"
)

// Load reads the entire source and parses it according to the declared
// format. On failure no partial record is returned.
func Load(r io.Reader, format domain.DataFormat) (domain.FlatRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading data source: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, domain.ErrEmptyInput
	}

	switch format {
	case domain.DataFormatJSON:
		return loadJSON(data)
	case domain.DataFormatYAML:
		return loadYAML(data)
	case domain.DataFormatCSV:
		return loadCSV(data)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
}

// loadJSON parses a top-level JSON object. Nested values are flattened to
// their compact JSON representation; only top-level keys become entries.
func loadJSON(data []byte) (domain.FlatRecord, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	if len(raw) == 0 {
		return nil, domain.ErrEmptyInput
	}

	record := make(domain.FlatRecord, len(raw))
	for k, v := range raw {
		record[k] = jsonValueString(v)
	}
	return record, nil
}

// jsonValueString renders a raw JSON value as the string the filler should
// substitute: strings are unquoted, scalars keep their literal form, and
// composite values keep their compact JSON text.
func jsonValueString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// loadYAML parses a top-level YAML mapping with the same flattening rule
// as JSON.
func loadYAML(data []byte) (domain.FlatRecord, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	if len(raw) == 0 {
		return nil, domain.ErrEmptyInput
	}

	record := make(domain.FlatRecord, len(raw))
	for k, v := range raw {
		record[k] = yamlValueString(v)
	}
	return record, nil
}

func yamlValueString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		// Nested mappings and sequences keep their JSON representation so
		// the substituted text stays predictable.
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(b)
	}
}

// loadCSV reads the header row as keys and the first data row as values.
// Rows beyond the first data row are ignored; this is a documented
// limitation of the loader, not a defect.
func loadCSV(data []byte) (domain.FlatRecord, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, domain.ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading header row: %v", domain.ErrParse, err)
	}

	row, err := reader.Read()
	if err == io.EOF {
		return nil, domain.ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading first data row: %v", domain.ErrParse, err)
	}

	record := make(domain.FlatRecord, len(header))
	for i, key := range header {
		if key == "" {
			continue
		}
		if i < len(row) {
			record[key] = row[i]
		} else {
			record[key] = ""
		}
	}
	if len(record) == 0 {
		return nil, domain.ErrEmptyInput
	}
	return record, nil
}
