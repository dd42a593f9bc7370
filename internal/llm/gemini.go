package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const GeminiProviderName = "gemini"

// GeminiTextGenerator generates one-shot text through the Gemini API.
type GeminiTextGenerator struct {
	client *genai.Client
	model  string
}

var _ TextGenerator = (*GeminiTextGenerator)(nil)

// NewGeminiTextGenerator creates a generator authenticated with apiKey.
// baseURL overrides the API endpoint when non-empty.
func NewGeminiTextGenerator(ctx context.Context, apiKey, model, baseURL string) (*GeminiTextGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiTextGenerator{client: client, model: model}, nil
}

func (g *GeminiTextGenerator) Name() string {
	return fmt.Sprintf("Gemini (%s)", g.model)
}

// GenerateText sends prompt as a single user turn and returns the first
// candidate's text.
func (g *GeminiTextGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", normalizeGeminiError(err)
	}
	return extractCandidateText(resp)
}

// extractCandidateText requires candidates[0].content.parts[0].text to be
// present and non-blank.
func extractCandidateText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrMalformedResponse)
	}
	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("%w: candidate has no content parts", ErrMalformedResponse)
	}
	part := candidate.Content.Parts[0]
	if part == nil || strings.TrimSpace(part.Text) == "" {
		return "", fmt.Errorf("%w: first part has no text", ErrMalformedResponse)
	}
	return part.Text, nil
}

func normalizeGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &StatusError{Provider: GeminiProviderName, StatusCode: apiErr.Code, Message: apiErr.Message}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return &StatusError{Provider: GeminiProviderName, StatusCode: apiErrPtr.Code, Message: apiErrPtr.Message}
	}
	return fmt.Errorf("gemini request failed: %w", err)
}
