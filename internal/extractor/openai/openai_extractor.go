// Package openai implements job card extraction via the OpenAI Chat Completions API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"qalib/internal/config"
	"qalib/internal/domain"
	"qalib/internal/extractor"
	"qalib/internal/port"
)

const apiURL = "https://api.openai.com/v1/chat/completions"

func init() {
	extractor.RegisterProvider("openai", func(cfg *config.ExtractorProviderConfig) (port.Extractor, error) {
		return NewExtractor(cfg), nil
	})
}

// Extractor implements port.Extractor using the OpenAI Chat Completions API.
type Extractor struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewExtractor creates an OpenAI-based extractor from a provider config.
func NewExtractor(cfg *config.ExtractorProviderConfig) *Extractor {
	return newExtractor(cfg, apiURL)
}

// NewExtractorWithEndpoint creates an extractor pointing at a custom API endpoint (for testing).
func NewExtractorWithEndpoint(cfg *config.ExtractorProviderConfig, endpoint string) *Extractor {
	return newExtractor(cfg, endpoint)
}

func newExtractor(cfg *config.ExtractorProviderConfig, endpoint string) *Extractor {
	model := cfg.DefaultModel
	if model == "" {
		model = "gpt-4o"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Extractor{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (e *Extractor) Extract(ctx context.Context, input port.ExtractInput) (*port.ExtractOutput, error) {
	prompt := extractor.BuildJobCardPrompt(input.Language)

	reqBody := map[string]interface{}{
		"model":                 e.model,
		"max_completion_tokens": 16384,
		"messages": []map[string]interface{}{
			{
				"role": "user",
				"content": []map[string]interface{}{
					{"type": "text", "text": input.Text},
					{"type": "text", "text": prompt},
				},
			},
		},
		"response_format": map[string]interface{}{
			"type": "json_object",
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling openai API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("openai API error (status %d): %s", resp.StatusCode, string(respBody))
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := extractor.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
			return nil, extractor.NewRateLimitError("openai", baseErr, retryAfter)
		}
		return nil, baseErr
	}

	return parseResponse(respBody, e.model, prompt)
}

// apiResponse models the OpenAI Chat Completions API response.
type apiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func parseResponse(body []byte, model, prompt string) (*port.ExtractOutput, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from API: no choices")
	}

	if resp.Choices[0].FinishReason == "length" {
		return nil, fmt.Errorf("output truncated (finish_reason: length): response exceeded output token limit")
	}

	text := resp.Choices[0].Message.Content

	var record domain.JobDescriptionRecord
	if err := json.Unmarshal([]byte(text), &record); err != nil {
		return nil, fmt.Errorf("parsing LLM JSON output: %w (raw: %s)", err, truncate(text, 500))
	}

	return &port.ExtractOutput{
		Record:     &record,
		ModelUsed:  model,
		PromptUsed: prompt,
	}, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
