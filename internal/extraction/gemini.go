package extraction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/EduPort-F-2025/portfolio-service/internal/validator"
)

const (
	extractionPrompt = "Please extract the key professional information from this teacher's proof document. " +
		"Summarize the event, dates, participants, and any certifications mentioned in a concise professional summary."

	systemInstruction = "You are an AI document analysis assistant for a teacher portfolio system. " +
		"Provide accurate, professional summaries based strictly on the provided PDF content."

	// Near-deterministic generation, matching the collaborator contract
	extractionTemperature = 0.1
)

// GeminiExtractor talks to Google's generative service through
// langchaingo. One request per document, no retry, no streaming.
type GeminiExtractor struct {
	model  llms.Model
	name   string
	logger *slog.Logger
}

// NewGeminiExtractor builds the production extractor.
func NewGeminiExtractor(ctx context.Context, apiKey, model string, logger *slog.Logger) (*GeminiExtractor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is not configured")
	}

	client, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	logger.Info("Initialized Gemini extractor", "model", model)
	return &GeminiExtractor{model: client, name: model, logger: logger}, nil
}

// NewGeminiExtractorWithModel injects a model implementation, used by
// tests to substitute a fake collaborator.
func NewGeminiExtractorWithModel(model llms.Model, name string, logger *slog.Logger) *GeminiExtractor {
	return &GeminiExtractor{model: model, name: name, logger: logger}
}

// Extract sends the PDF bytes as a single binary part alongside the
// fixed instruction and returns the collaborator's text verbatim.
func (e *GeminiExtractor) Extract(ctx context.Context, pdf []byte) (string, error) {
	e.logger.Debug("Extracting PDF content", "model", e.name, "size_bytes", len(pdf))

	messages := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(systemInstruction)},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.BinaryPart(validator.PDFMimeType, pdf),
				llms.TextPart(extractionPrompt),
			},
		},
	}

	resp, err := e.model.GenerateContent(ctx, messages,
		llms.WithModel(e.name),
		llms.WithTemperature(extractionTemperature),
	)
	if err != nil {
		return "", fmt.Errorf("gemini call failed: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Content == "" {
		return "", ErrNoContent
	}
	return resp.Choices[0].Content, nil
}
