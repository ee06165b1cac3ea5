package extraction

import (
	"context"
	"errors"
	"log/slog"
)

// Fixed response strings carried over from the original collaborator
// contract. Callers store these verbatim as proof content.
const (
	NoContentSentinel = "No content extracted."
	FailureSentinel   = "Error extracting PDF content. Please check if the file is a valid PDF."
)

// ErrNoContent marks a collaborator response that carried no text.
var ErrNoContent = errors.New("extraction response carried no text")

// Extractor summarizes an uploaded PDF through an external generative
// collaborator. Extract exposes the real result shape; callers that
// want the legacy never-fails behavior use Summarize.
type Extractor interface {
	Extract(ctx context.Context, pdf []byte) (string, error)
}

// Disabled stands in for the collaborator when no API key is
// configured. Every extraction fails, so uploaded proofs carry the
// failure sentinel instead of a summary.
type Disabled struct{}

func (Disabled) Extract(ctx context.Context, pdf []byte) (string, error) {
	return "", errors.New("document extraction is not configured")
}

// Summarize runs extraction and never fails: an empty response becomes
// NoContentSentinel and any error becomes FailureSentinel. The blurring
// of failure and content is intentional; the enrichment pipeline
// attaches the returned string to the proof either way.
func Summarize(ctx context.Context, extractor Extractor, logger *slog.Logger, pdf []byte) string {
	text, err := extractor.Extract(ctx, pdf)
	if err != nil {
		if errors.Is(err, ErrNoContent) {
			return NoContentSentinel
		}
		logger.Error("PDF extraction failed", "error", err)
		return FailureSentinel
	}
	if text == "" {
		return NoContentSentinel
	}
	return text
}
