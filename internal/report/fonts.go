// Package report renders job card documents: an Arabic PDF report via an
// embedded-font renderer and a tabular DOCX variant.
package report

import (
	"fmt"
	"os"

	"qalib/internal/config"
	"qalib/internal/domain"
)

// FontSet holds the TrueType font files the PDF renderer embeds. Both
// variants must exist; Arabic glyph coverage is the caller's responsibility.
type FontSet struct {
	RegularPath string
	BoldPath    string
}

// LoadFontSet validates the configured font paths.
func LoadFontSet(cfg config.FontConfig) (*FontSet, error) {
	for _, path := range []string{cfg.RegularPath, cfg.BoldPath} {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrFontMissing, path, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%w: %s is a directory", domain.ErrFontMissing, path)
		}
	}
	return &FontSet{RegularPath: cfg.RegularPath, BoldPath: cfg.BoldPath}, nil
}
