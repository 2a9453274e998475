package service

import (
	"context"
	"fmt"
	"sync"

	"qalib/internal/config"
	"qalib/internal/domain"
	"qalib/internal/report"
)

// ReportService defines the job card rendering contract.
type ReportService interface {
	RenderPDF(ctx context.Context, record *domain.JobDescriptionRecord) ([]byte, error)
	RenderDOCX(ctx context.Context, record *domain.JobDescriptionRecord) ([]byte, error)
	Template(ctx context.Context) ([]byte, error)
}

type reportService struct {
	fontCfg config.FontConfig

	mu       sync.Mutex
	renderer *report.Renderer
}

// NewReportService creates a new ReportService implementation. Fonts are
// validated lazily on the first PDF render so DOCX-only deployments can run
// without font files.
func NewReportService(fontCfg config.FontConfig) ReportService {
	return &reportService{fontCfg: fontCfg}
}

func (s *reportService) RenderPDF(ctx context.Context, record *domain.JobDescriptionRecord) ([]byte, error) {
	if record == nil || record.IsEmpty() {
		return nil, fmt.Errorf("%w: job card record is empty", domain.ErrEmptyInput)
	}

	r, err := s.pdfRenderer()
	if err != nil {
		return nil, err
	}
	out, err := r.Render(record)
	if err != nil {
		return nil, fmt.Errorf("report.RenderPDF: %w", err)
	}
	return out, nil
}

func (s *reportService) RenderDOCX(ctx context.Context, record *domain.JobDescriptionRecord) ([]byte, error) {
	if record == nil {
		return nil, fmt.Errorf("%w: job card record is missing", domain.ErrEmptyInput)
	}
	out, err := report.GenerateJobCardDOCX(record)
	if err != nil {
		return nil, fmt.Errorf("report.RenderDOCX: %w", err)
	}
	return out, nil
}

func (s *reportService) Template(ctx context.Context) ([]byte, error) {
	out, err := report.BuildJobCardTemplate()
	if err != nil {
		return nil, fmt.Errorf("report.Template: %w", err)
	}
	return out, nil
}

func (s *reportService) pdfRenderer() (*report.Renderer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.renderer != nil {
		return s.renderer, nil
	}
	fonts, err := report.LoadFontSet(s.fontCfg)
	if err != nil {
		return nil, err
	}
	s.renderer = report.NewRenderer(fonts)
	return s.renderer, nil
}
