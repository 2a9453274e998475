package openai_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qalib/internal/config"
	"qalib/internal/extractor"
	"qalib/internal/extractor/openai"
	"qalib/internal/port"
)

func providerConfig() *config.ExtractorProviderConfig {
	return &config.ExtractorProviderConfig{
		Provider:     "openai",
		APIKey:       "test-key",
		DefaultModel: "gpt-test",
		TimeoutSecs:  5,
	}
}

func chatResponse(content, finishReason string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{
				"message":       map[string]interface{}{"content": content},
				"finish_reason": finishReason,
			},
		},
	}
}

func TestExtractSuccess(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(chatResponse(`{"job_title":"محلل نظم"}`, "stop"))
	}))
	defer srv.Close()

	e := openai.NewExtractorWithEndpoint(providerConfig(), srv.URL)
	out, err := e.Extract(context.Background(), port.ExtractInput{Text: "نص", Language: "ar"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-test", out.ModelUsed)
	require.NotNil(t, out.Record)
	assert.Equal(t, "محلل نظم", out.Record.JobTitle)
}

func TestExtractRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	e := openai.NewExtractorWithEndpoint(providerConfig(), srv.URL)
	_, err := e.Extract(context.Background(), port.ExtractInput{Text: "text"})
	require.Error(t, err)

	var rlErr *extractor.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "openai", rlErr.Provider)
	// Missing Retry-After falls back to the default backoff.
	assert.Equal(t, float64(60), rlErr.RetryAfter.Seconds())
}

func TestExtractTruncatedOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(chatResponse(`{"job_title":"x"}`, "length"))
	}))
	defer srv.Close()

	e := openai.NewExtractorWithEndpoint(providerConfig(), srv.URL)
	_, err := e.Extract(context.Background(), port.ExtractInput{Text: "text"})
	assert.ErrorContains(t, err, "truncated")
}

func TestExtractNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer srv.Close()

	e := openai.NewExtractorWithEndpoint(providerConfig(), srv.URL)
	_, err := e.Extract(context.Background(), port.ExtractInput{Text: "text"})
	assert.ErrorContains(t, err, "empty response")
}
