package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"github.com/xeipuuv/gojsonschema"
	"golang.org/x/time/rate"

	"github.com/lueurxax/seva-desk/internal/core/domain"
	coreerrors "github.com/lueurxax/seva-desk/internal/core/errors"
	"github.com/lueurxax/seva-desk/internal/platform/config"
)

const (
	defaultCircuitThreshold = 5
	defaultCircuitTimeout   = 1 * time.Minute
	rateLimiterBurst        = 5
	defaultRateLimitRPS     = 2
	chatTemperature         = 0.2

	errRateLimiter          = "rate limiter error: %w"
	errOpenAIChatCompletion = "openai chat completion error: %w"
)

type openaiClient struct {
	client  *openai.Client
	model   string
	limiter *rate.Limiter
	breaker *CircuitBreaker
	schemas schemaSet
	logger  *zerolog.Logger
}

// NewOpenAI creates an Augmenter backed by an OpenAI-compatible chat API.
func NewOpenAI(cfg config.LLMConfig, logger *zerolog.Logger) (Augmenter, error) {
	if !cfg.Enabled {
		return Disabled(), nil
	}

	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	schemas, err := compileSchemas()
	if err != nil {
		return nil, err
	}

	return &openaiClient{
		client:  newOpenAIClient(cfg),
		model:   resolveModel(cfg.Model),
		limiter: newLimiter(cfg.RateLimitRPS),
		breaker: NewCircuitBreaker(CircuitBreakerConfig{
			Threshold:  cfg.CircuitThreshold,
			ResetAfter: cfg.CircuitTimeout,
		}, logger),
		schemas: schemas,
		logger:  logger,
	}, nil
}

func newOpenAIClient(cfg config.LLMConfig) *openai.Client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return openai.NewClientWithConfig(clientCfg)
}

func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		rps = defaultRateLimitRPS
	}

	return rate.NewLimiter(rate.Limit(rps), rateLimiterBurst)
}

func resolveModel(model string) string {
	if model == "" {
		return openai.GPT4oMini
	}

	return model
}

type classifyPayload struct {
	Category string `json:"category"`
	Priority string `json:"priority"`
	Response string `json:"response"`
}

func (c *openaiClient) Classify(ctx context.Context, text string, convCtx *domain.ConversationContext) (ClassifyResult, error) {
	var payload classifyPayload

	err := c.chatJSON(ctx, stageClassify, classifyPrompt, buildClassifyUserPrompt(text, convCtx), c.schemas.classify, &payload)
	if err != nil {
		return ClassifyResult{}, err
	}

	category, ok := domain.ParseCategory(payload.Category)
	if !ok {
		return ClassifyResult{}, fmt.Errorf("%w: unknown category %q", coreerrors.ErrInvalidAugmentation, payload.Category)
	}

	priority, ok := domain.ParsePriority(payload.Priority)
	if !ok {
		priority = domain.PriorityMedium
	}

	return ClassifyResult{Category: category, Priority: priority, Response: payload.Response}, nil
}

type extractPayload struct {
	ExtractedInfo   map[string]any `json:"extractedInfo"`
	MissingRequired []string       `json:"missingRequired"`
	NeedsMoreInfo   bool           `json:"needsMoreInfo"`
	Success         *bool          `json:"success"`
	UsingFallback   bool           `json:"usingFallback"`
}

func (c *openaiClient) Extract(
	ctx context.Context, text string, category domain.Category, lang domain.Language, convCtx *domain.ConversationContext,
) (ExtractResult, error) {
	var payload extractPayload

	err := c.chatJSON(ctx, stageExtract, buildExtractSystemPrompt(category),
		buildExtractUserPrompt(text, lang, convCtx), c.schemas.extract, &payload)
	if err != nil {
		return ExtractResult{}, err
	}

	success := true
	if payload.Success != nil {
		success = *payload.Success
	}

	return ExtractResult{
		ExtractedInfo:   slotValues(payload.ExtractedInfo).Scoped(category),
		MissingRequired: payload.MissingRequired,
		NeedsMoreInfo:   payload.NeedsMoreInfo,
		Success:         success,
		UsingFallback:   payload.UsingFallback,
	}, nil
}

type followUpPayload struct {
	Question string `json:"question"`
}

func (c *openaiClient) GenerateFollowUp(
	ctx context.Context, category domain.Category, missingField string, slots domain.SlotMap, lang domain.Language,
) (FollowUpResult, error) {
	var payload followUpPayload

	err := c.chatJSON(ctx, stageFollowUp, buildFollowUpSystemPrompt(category, missingField, lang),
		buildFollowUpUserPrompt(slots), c.schemas.followUp, &payload)
	if err != nil {
		return FollowUpResult{}, err
	}

	return FollowUpResult{Question: payload.Question, Success: true}, nil
}

type confirmationPayload struct {
	Response string `json:"response"`
}

func (c *openaiClient) GenerateConfirmation(ctx context.Context, prompt string, lang domain.Language) (ConfirmationResult, error) {
	var payload confirmationPayload

	err := c.chatJSON(ctx, stageConfirmation, buildConfirmationSystemPrompt(lang), prompt, c.schemas.confirmation, &payload)
	if err != nil {
		return ConfirmationResult{}, err
	}

	return ConfirmationResult{Response: payload.Response}, nil
}

// chatJSON runs one JSON-mode completion, validates the reply against schema
// and decodes it into out.
func (c *openaiClient) chatJSON(ctx context.Context, stage, system, user string, schema *gojsonschema.Schema, out any) error {
	if err := c.breaker.CheckCircuit(); err != nil {
		return err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf(errRateLimiter, err)
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: chatTemperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		c.breaker.RecordFailure(stage)

		return fmt.Errorf("%w: %w", coreerrors.ErrAugmentationUnavailable, fmt.Errorf(errOpenAIChatCompletion, err))
	}

	if len(resp.Choices) == 0 {
		c.breaker.RecordFailure(stage)

		return fmt.Errorf("%w: %s", coreerrors.ErrEmptyResponse, stage)
	}

	c.breaker.RecordSuccess()

	content := extractJSON(resp.Choices[0].Message.Content)
	c.logger.Debug().Str("stage", stage).Str("content", content).Msg("augmentation response")

	return decodeValidated(schema, content, out)
}

func decodeValidated(schema *gojsonschema.Schema, content string, out any) error {
	if err := validateJSON(schema, content); err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("%w: %w", coreerrors.ErrInvalidAugmentation, err)
	}

	return nil
}
