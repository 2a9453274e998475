package port

import (
	"context"

	"qalib/internal/domain"
)

// ExtractInput carries the raw material for job-description extraction.
type ExtractInput struct {
	Text     string // plain text pulled from the source document
	Language string // hint for the prompt, e.g. "ar"
}

// ExtractOutput contains the structured result from an extraction provider.
type ExtractOutput struct {
	Record     *domain.JobDescriptionRecord
	ModelUsed  string
	PromptUsed string
}

// Extractor abstracts the AI text-extraction call that pre-fills the
// job-card form. Implementations are opaque external services; the core
// performs presence checks only on their output.
type Extractor interface {
	Extract(ctx context.Context, input ExtractInput) (*ExtractOutput, error)
}
