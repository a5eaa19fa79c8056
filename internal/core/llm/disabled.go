package llm

import (
	"context"
	"io"

	"github.com/lueurxax/seva-desk/internal/core/domain"
	coreerrors "github.com/lueurxax/seva-desk/internal/core/errors"
)

// disabledClient is used when augmentation is switched off or has no key.
// Every call fails so callers take their local path.
type disabledClient struct{}

// Disabled returns an Augmenter that always reports ErrClientDisabled.
func Disabled() Augmenter {
	return disabledClient{}
}

func (disabledClient) Classify(context.Context, string, *domain.ConversationContext) (ClassifyResult, error) {
	return ClassifyResult{}, coreerrors.ErrClientDisabled
}

func (disabledClient) Extract(context.Context, string, domain.Category, domain.Language, *domain.ConversationContext) (ExtractResult, error) {
	return ExtractResult{}, coreerrors.ErrClientDisabled
}

func (disabledClient) GenerateFollowUp(context.Context, domain.Category, string, domain.SlotMap, domain.Language) (FollowUpResult, error) {
	return FollowUpResult{}, coreerrors.ErrClientDisabled
}

func (disabledClient) GenerateConfirmation(context.Context, string, domain.Language) (ConfirmationResult, error) {
	return ConfirmationResult{}, coreerrors.ErrClientDisabled
}

func (disabledClient) Transcribe(context.Context, io.Reader, string) (Transcription, error) {
	return Transcription{}, coreerrors.ErrClientDisabled
}

// DisabledTranscriber returns a Transcriber that always reports ErrClientDisabled.
func DisabledTranscriber() Transcriber {
	return disabledClient{}
}
