package service

import (
	"context"
	"fmt"
	"strings"

	"qalib/internal/domain"
	"qalib/internal/port"
)

// ExtractInput is the DTO for AI extraction requests.
type ExtractInput struct {
	Text     string
	Language string
}

// ExtractResult carries the extracted record and provenance.
type ExtractResult struct {
	Record    *domain.JobDescriptionRecord `json:"record"`
	ModelUsed string                       `json:"model_used"`
}

// ExtractService defines the AI extraction contract.
type ExtractService interface {
	Extract(ctx context.Context, input ExtractInput) (*ExtractResult, error)
	Prefill(manual, extracted *domain.JobDescriptionRecord) *domain.JobDescriptionRecord
}

type extractService struct {
	extractor port.Extractor
}

// NewExtractService creates a new ExtractService implementation.
func NewExtractService(extractor port.Extractor) ExtractService {
	return &extractService{extractor: extractor}
}

func (s *extractService) Extract(ctx context.Context, input ExtractInput) (*ExtractResult, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: extraction text is empty", domain.ErrEmptyInput)
	}

	out, err := s.extractor.Extract(ctx, port.ExtractInput{Text: text, Language: input.Language})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExternalService, err)
	}
	if out.Record == nil || out.Record.IsEmpty() {
		return nil, fmt.Errorf("%w: extraction returned no content", domain.ErrExternalService)
	}

	return &ExtractResult{Record: out.Record, ModelUsed: out.ModelUsed}, nil
}

// Prefill merges an extracted record under a manually entered one. Manual
// values win field by field; list fields are taken from the manual record
// when non-empty, otherwise from the extracted one.
func (s *extractService) Prefill(manual, extracted *domain.JobDescriptionRecord) *domain.JobDescriptionRecord {
	if manual == nil {
		manual = &domain.JobDescriptionRecord{}
	}
	if extracted == nil {
		return manual
	}

	merged := *manual
	if merged.JobTitle == "" {
		merged.JobTitle = extracted.JobTitle
	}
	if merged.Summary == "" {
		merged.Summary = extracted.Summary
	}
	merged.Reference = mergeReference(manual.Reference, extracted.Reference)
	if len(merged.InternalChannels) == 0 {
		merged.InternalChannels = extracted.InternalChannels
	}
	if len(merged.ExternalChannels) == 0 {
		merged.ExternalChannels = extracted.ExternalChannels
	}
	if len(merged.Levels) == 0 {
		merged.Levels = extracted.Levels
	}
	if len(merged.Behavioral) == 0 {
		merged.Behavioral = extracted.Behavioral
	}
	if len(merged.Core) == 0 {
		merged.Core = extracted.Core
	}
	if len(merged.Leadership) == 0 {
		merged.Leadership = extracted.Leadership
	}
	if len(merged.Technical) == 0 {
		merged.Technical = extracted.Technical
	}
	if len(merged.LeadershipTasks) == 0 {
		merged.LeadershipTasks = extracted.LeadershipTasks
	}
	if len(merged.SpecializedTasks) == 0 {
		merged.SpecializedTasks = extracted.SpecializedTasks
	}
	if len(merged.OtherTasks) == 0 {
		merged.OtherTasks = extracted.OtherTasks
	}
	if len(merged.KPIs) == 0 {
		merged.KPIs = extracted.KPIs
	}
	return &merged
}

func mergeReference(manual, extracted domain.ReferenceData) domain.ReferenceData {
	pick := func(m, e string) string {
		if m != "" {
			return m
		}
		return e
	}
	return domain.ReferenceData{
		MainGroup:          pick(manual.MainGroup, extracted.MainGroup),
		MainGroupCode:      pick(manual.MainGroupCode, extracted.MainGroupCode),
		SubGroup:           pick(manual.SubGroup, extracted.SubGroup),
		SubGroupCode:       pick(manual.SubGroupCode, extracted.SubGroupCode),
		SecondaryGroup:     pick(manual.SecondaryGroup, extracted.SecondaryGroup),
		SecondaryGroupCode: pick(manual.SecondaryGroupCode, extracted.SecondaryGroupCode),
		UnitGroup:          pick(manual.UnitGroup, extracted.UnitGroup),
		UnitGroupCode:      pick(manual.UnitGroupCode, extracted.UnitGroupCode),
		Profession:         pick(manual.Profession, extracted.Profession),
		ProfessionCode:     pick(manual.ProfessionCode, extracted.ProfessionCode),
		WorkLocation:       pick(manual.WorkLocation, extracted.WorkLocation),
		Grade:              pick(manual.Grade, extracted.Grade),
	}
}
