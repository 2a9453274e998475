package extractor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qalib/internal/domain"
	"qalib/internal/extractor"
	"qalib/internal/port"
)

type stubExtractor struct {
	out   *port.ExtractOutput
	err   error
	calls int
}

func (s *stubExtractor) Extract(ctx context.Context, input port.ExtractInput) (*port.ExtractOutput, error) {
	s.calls++
	return s.out, s.err
}

func okOutput(title string) *port.ExtractOutput {
	return &port.ExtractOutput{Record: &domain.JobDescriptionRecord{JobTitle: title}}
}

func TestFallbackFirstSucceeds(t *testing.T) {
	primary := &stubExtractor{out: okOutput("أول")}
	secondary := &stubExtractor{out: okOutput("ثاني")}

	f := extractor.NewFallbackExtractor([]port.Extractor{primary, secondary}, []string{"primary", "secondary"})
	out, err := f.Extract(context.Background(), port.ExtractInput{Text: "نص"})
	require.NoError(t, err)
	assert.Equal(t, "أول", out.Record.JobTitle)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, secondary.calls)
}

func TestFallbackSecondUsedAfterFailure(t *testing.T) {
	primary := &stubExtractor{err: errors.New("boom")}
	secondary := &stubExtractor{out: okOutput("ثاني")}

	f := extractor.NewFallbackExtractor([]port.Extractor{primary, secondary}, []string{"primary", "secondary"})
	out, err := f.Extract(context.Background(), port.ExtractInput{Text: "نص"})
	require.NoError(t, err)
	assert.Equal(t, "ثاني", out.Record.JobTitle)
}

func TestFallbackAllFail(t *testing.T) {
	primary := &stubExtractor{err: errors.New("boom one")}
	secondary := &stubExtractor{err: errors.New("boom two")}

	f := extractor.NewFallbackExtractor([]port.Extractor{primary, secondary}, []string{"primary", "secondary"})
	_, err := f.Extract(context.Background(), port.ExtractInput{Text: "نص"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "all extractors failed")
}

func TestFallbackRateLimitOpensCircuit(t *testing.T) {
	primary := &stubExtractor{err: extractor.NewRateLimitError("primary", errors.New("429"), 300)}
	secondary := &stubExtractor{out: okOutput("ثاني")}

	f := extractor.NewFallbackExtractor([]port.Extractor{primary, secondary}, []string{"primary", "secondary"})

	out, err := f.Extract(context.Background(), port.ExtractInput{Text: "نص"})
	require.NoError(t, err)
	assert.Equal(t, "ثاني", out.Record.JobTitle)

	// Second call skips the rate-limited primary while its circuit is open.
	_, err = f.Extract(context.Background(), port.ExtractInput{Text: "نص"})
	require.NoError(t, err)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 2, secondary.calls)
}

func TestFallbackAllRateLimited(t *testing.T) {
	primary := &stubExtractor{err: extractor.NewRateLimitError("primary", errors.New("429"), 60)}
	secondary := &stubExtractor{err: extractor.NewRateLimitError("secondary", errors.New("429"), 120)}

	f := extractor.NewFallbackExtractor([]port.Extractor{primary, secondary}, []string{"primary", "secondary"})
	_, err := f.Extract(context.Background(), port.ExtractInput{Text: "نص"})
	require.Error(t, err)

	var rlErr *extractor.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "all", rlErr.Provider)
}

func TestParseRetryAfterHeader(t *testing.T) {
	assert.Equal(t, 30, extractor.ParseRetryAfterHeader("30"))
	assert.Equal(t, 0, extractor.ParseRetryAfterHeader(""))
	assert.Equal(t, 0, extractor.ParseRetryAfterHeader("Wed, 21 Oct 2015 07:28:00 GMT"))
}
