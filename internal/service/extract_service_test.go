package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"qalib/internal/domain"
	"qalib/internal/port"
	"qalib/internal/service"
	"qalib/mocks"
)

func TestExtractSuccess(t *testing.T) {
	extractor := new(mocks.MockExtractor)
	extractor.On("Extract", mock.Anything, port.ExtractInput{Text: "نص الوظيفة", Language: "ar"}).
		Return(&port.ExtractOutput{
			Record:    &domain.JobDescriptionRecord{JobTitle: "مهندس"},
			ModelUsed: "claude-test",
		}, nil)

	svc := service.NewExtractService(extractor)
	out, err := svc.Extract(context.Background(), service.ExtractInput{Text: "نص الوظيفة", Language: "ar"})
	require.NoError(t, err)
	assert.Equal(t, "مهندس", out.Record.JobTitle)
	assert.Equal(t, "claude-test", out.ModelUsed)
	extractor.AssertExpectations(t)
}

func TestExtractEmptyText(t *testing.T) {
	svc := service.NewExtractService(new(mocks.MockExtractor))
	_, err := svc.Extract(context.Background(), service.ExtractInput{Text: "   "})
	assert.ErrorIs(t, err, domain.ErrEmptyInput)
}

func TestExtractProviderFailure(t *testing.T) {
	extractor := new(mocks.MockExtractor)
	extractor.On("Extract", mock.Anything, mock.Anything).Return(nil, errors.New("provider down"))

	svc := service.NewExtractService(extractor)
	_, err := svc.Extract(context.Background(), service.ExtractInput{Text: "نص"})
	assert.ErrorIs(t, err, domain.ErrExternalService)
}

func TestExtractEmptyRecord(t *testing.T) {
	extractor := new(mocks.MockExtractor)
	extractor.On("Extract", mock.Anything, mock.Anything).
		Return(&port.ExtractOutput{Record: &domain.JobDescriptionRecord{}}, nil)

	svc := service.NewExtractService(extractor)
	_, err := svc.Extract(context.Background(), service.ExtractInput{Text: "نص"})
	assert.ErrorIs(t, err, domain.ErrExternalService)
}

func TestPrefillManualWins(t *testing.T) {
	svc := service.NewExtractService(new(mocks.MockExtractor))

	manual := &domain.JobDescriptionRecord{
		JobTitle:  "مهندس برمجيات",
		Reference: domain.ReferenceData{Profession: "مهندس"},
	}
	extracted := &domain.JobDescriptionRecord{
		JobTitle: "عنوان مستخرج",
		Summary:  "ملخص مستخرج",
		Reference: domain.ReferenceData{
			Profession:     "آخر",
			ProfessionCode: "1234",
		},
		SpecializedTasks: []string{"مهمة"},
	}

	merged := svc.Prefill(manual, extracted)
	assert.Equal(t, "مهندس برمجيات", merged.JobTitle)
	assert.Equal(t, "ملخص مستخرج", merged.Summary)
	assert.Equal(t, "مهندس", merged.Reference.Profession)
	assert.Equal(t, "1234", merged.Reference.ProfessionCode)
	assert.Equal(t, []string{"مهمة"}, merged.SpecializedTasks)

	// Inputs are not mutated.
	assert.Equal(t, "", manual.Summary)
}

func TestPrefillNilInputs(t *testing.T) {
	svc := service.NewExtractService(new(mocks.MockExtractor))

	extracted := &domain.JobDescriptionRecord{JobTitle: "مستخرج"}
	assert.Equal(t, "مستخرج", svc.Prefill(nil, extracted).JobTitle)

	manual := &domain.JobDescriptionRecord{JobTitle: "يدوي"}
	assert.Equal(t, "يدوي", svc.Prefill(manual, nil).JobTitle)
}
