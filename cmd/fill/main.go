// Command fill substitutes placeholders in a single template from the
// command line, without running the server.
// Usage: go run ./cmd/fill -template card.docx -data values.json -out filled.docx
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"qalib/internal/domain"
	"qalib/internal/filler"
	"qalib/internal/loader"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	templatePath := flag.String("template", "", "path to the DOCX, XLSX or PDF template")
	dataPath := flag.String("data", "", "path to the JSON, YAML or CSV data file")
	formatKey := flag.String("format", "", "data format override (json, yaml, csv); default from extension")
	outPath := flag.String("out", "", "output path; default <template>-filled.<ext>")
	coerce := flag.Bool("coerce-numbers", false, "write numeric-looking XLSX values as numbers")
	flag.Parse()

	if *templatePath == "" || *dataPath == "" {
		flag.Usage()
		return fmt.Errorf("both -template and -data are required")
	}

	template, err := os.ReadFile(*templatePath)
	if err != nil {
		return fmt.Errorf("read template: %w", err)
	}

	format, err := resolveFormat(*formatKey, *dataPath)
	if err != nil {
		return err
	}

	dataFile, err := os.Open(*dataPath)
	if err != nil {
		return fmt.Errorf("open data file: %w", err)
	}
	defer func() { _ = dataFile.Close() }()

	data, err := loader.Load(dataFile, format)
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}

	result, err := filler.FillWithOptions(template, data, filler.Options{CoerceNumbers: *coerce})
	if err != nil {
		return fmt.Errorf("fill template: %w", err)
	}

	out := *outPath
	if out == "" {
		base := strings.TrimSuffix(*templatePath, filepath.Ext(*templatePath))
		out = base + "-filled." + string(result.Format)
	}
	if err := os.WriteFile(out, result.Bytes, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	log.Printf("filled %d keys into %s", len(data), out)
	return nil
}

func resolveFormat(key, dataPath string) (domain.DataFormat, error) {
	if key == "" {
		key = strings.ToLower(strings.TrimPrefix(filepath.Ext(dataPath), "."))
	}
	format, ok := domain.DataFormatExtensions[key]
	if !ok {
		return "", fmt.Errorf("unsupported data format %q; allowed: json, yaml, csv", key)
	}
	return format, nil
}
