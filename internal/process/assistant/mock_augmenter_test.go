package assistant

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/lueurxax/seva-desk/internal/core/domain"
	"github.com/lueurxax/seva-desk/internal/core/llm"
)

const (
	methodClassify     = "Classify"
	methodExtract      = "Extract"
	methodFollowUp     = "GenerateFollowUp"
	methodConfirmation = "GenerateConfirmation"
)

type mockAugmenter struct {
	mock.Mock
}

func (m *mockAugmenter) Classify(ctx context.Context, text string, convCtx *domain.ConversationContext) (llm.ClassifyResult, error) {
	args := m.Called(ctx, text, convCtx)
	res, _ := args.Get(0).(llm.ClassifyResult)

	return res, args.Error(1)
}

func (m *mockAugmenter) Extract(
	ctx context.Context, text string, category domain.Category, lang domain.Language, convCtx *domain.ConversationContext,
) (llm.ExtractResult, error) {
	args := m.Called(ctx, text, category, lang, convCtx)
	res, _ := args.Get(0).(llm.ExtractResult)

	return res, args.Error(1)
}

func (m *mockAugmenter) GenerateFollowUp(
	ctx context.Context, category domain.Category, missingField string, slots domain.SlotMap, lang domain.Language,
) (llm.FollowUpResult, error) {
	args := m.Called(ctx, category, missingField, slots, lang)
	res, _ := args.Get(0).(llm.FollowUpResult)

	return res, args.Error(1)
}

func (m *mockAugmenter) GenerateConfirmation(ctx context.Context, prompt string, lang domain.Language) (llm.ConfirmationResult, error) {
	args := m.Called(ctx, prompt, lang)
	res, _ := args.Get(0).(llm.ConfirmationResult)

	return res, args.Error(1)
}
