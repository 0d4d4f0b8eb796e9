package adapters

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/finance-tracker/personal-finance/config"
	"github.com/finance-tracker/personal-finance/internal/application/adapter"
)

var errGeminiNotConfigured = errors.New("gemini service is not configured")

// GeminiService implements adapter.TextGenerator using Google Gemini.
type GeminiService struct {
	apiKey      string
	modelName   string
	temperature float32
}

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(cfg *config.GeminiConfig) *GeminiService {
	return &GeminiService{
		apiKey:      cfg.APIKey,
		modelName:   cfg.Model,
		temperature: cfg.Temperature,
	}
}

var _ adapter.TextGenerator = (*GeminiService)(nil)

// IsAvailable checks if the Gemini service is properly configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// Ping counts the tokens of a tiny prompt, which authenticates against the
// API without paying for a generation.
func (s *GeminiService) Ping(ctx context.Context) error {
	if !s.IsAvailable() {
		return errGeminiNotConfigured
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	if _, err := client.GenerativeModel(s.modelName).CountTokens(ctx, genai.Text("ping")); err != nil {
		return fmt.Errorf("gemini ping failed: %w", err)
	}
	return nil
}

// Generate sends the prompt and returns the concatenated text parts of the
// first candidate.
func (s *GeminiService) Generate(ctx context.Context, prompt string) (string, error) {
	if !s.IsAvailable() {
		return "", errGeminiNotConfigured
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(s.temperature)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return responseText(resp)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("empty response from gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("no text in gemini response")
	}
	return sb.String(), nil
}
