// Package llm is the client side of the AI augmentation boundary. Every call
// may fail; callers are expected to fall back to local heuristics.
package llm

import (
	"context"
	"io"

	"github.com/lueurxax/seva-desk/internal/core/domain"
)

// ClassifyResult is the augmentation's view of a message. Response carries a
// direct answer for non-service categories.
type ClassifyResult struct {
	Category domain.Category
	Priority domain.Priority
	Response string
}

// ExtractResult holds the slots suggested by the augmentation. Success and
// UsingFallback are reported by the service itself.
type ExtractResult struct {
	ExtractedInfo   domain.SlotMap
	MissingRequired []string
	NeedsMoreInfo   bool
	Success         bool
	UsingFallback   bool
}

// FollowUpResult is a generated follow-up question.
type FollowUpResult struct {
	Question      string
	Success       bool
	UsingFallback bool
}

// ConfirmationResult is a generated confirmation message.
type ConfirmationResult struct {
	Response string
}

// Augmenter is the external AI collaborator.
type Augmenter interface {
	Classify(ctx context.Context, text string, convCtx *domain.ConversationContext) (ClassifyResult, error)
	Extract(ctx context.Context, text string, category domain.Category, lang domain.Language, convCtx *domain.ConversationContext) (ExtractResult, error)
	GenerateFollowUp(ctx context.Context, category domain.Category, missingField string, slots domain.SlotMap, lang domain.Language) (FollowUpResult, error)
	GenerateConfirmation(ctx context.Context, prompt string, lang domain.Language) (ConfirmationResult, error)
}

// Transcription is the text recognised in an audio message.
type Transcription struct {
	Text       string
	Language   domain.Language
	Confidence *float64
}

// Transcriber turns audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (Transcription, error)
}
