package ai

import (
	"context"
	"fmt"
	"strings"

	"finsignal/txengine/internal/logging"
	"finsignal/txengine/internal/txerrors"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient implements Client against the Google Gemini API.
type GeminiClient struct {
	apiKey string
	model  string
	logger logging.Logger

	client *genai.Client
}

// NewGeminiClient creates a Gemini-backed extraction client. The underlying
// API client is created lazily on first use so construction never needs
// network access.
func NewGeminiClient(apiKey, model string, logger logging.Logger) *GeminiClient {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &GeminiClient{
		apiKey: apiKey,
		model:  model,
		logger: logger,
	}
}

func (c *GeminiClient) ensureClient(ctx context.Context) error {
	if c.client != nil {
		return nil
	}
	if c.apiKey == "" {
		return fmt.Errorf("gemini API key not configured")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}
	c.client = client
	return nil
}

// ExtractFields sends the extraction prompt and parses the JSON reply.
// Timeouts and transport failures surface as AIServiceError so the
// extraction pipeline can fall back to the pattern-only result.
func (c *GeminiClient) ExtractFields(ctx context.Context, rawText string) (FieldResponse, error) {
	if err := c.ensureClient(ctx); err != nil {
		return FieldResponse{}, &txerrors.AIServiceError{Model: c.model, Err: err}
	}

	model := c.client.GenerativeModel(c.model)
	prompt := BuildExtractionPrompt(rawText)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return FieldResponse{}, &txerrors.AIServiceError{Model: c.model, Err: err}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return FieldResponse{}, &txerrors.AIServiceError{
			Model: c.model,
			Err:   fmt.Errorf("empty completion"),
		}
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	fields, err := ParseExtractionResponse(sb.String())
	if err != nil {
		c.logger.WithError(err).Warn("AI extraction response was not parseable")
		return FieldResponse{}, &txerrors.AIServiceError{Model: c.model, Err: err}
	}

	c.logger.Debug("AI extraction succeeded",
		logging.Field{Key: logging.FieldMerchant, Value: fields.MerchantName},
		logging.Field{Key: logging.FieldConfidence, Value: fields.Confidence})
	return fields, nil
}
