package llm

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/lueurxax/seva-desk/internal/core/domain"
	coreerrors "github.com/lueurxax/seva-desk/internal/core/errors"
	"github.com/lueurxax/seva-desk/internal/platform/config"
)

const defaultTranscriptionModel = openai.Whisper1

// whisperLanguages maps the language names returned by verbose transcription
// onto supported languages. Anything else is left for text detection.
var whisperLanguages = map[string]domain.Language{
	"english": domain.LanguageEnglish,
	"en":      domain.LanguageEnglish,
	"hindi":   domain.LanguageHindi,
	"hi":      domain.LanguageHindi,
	"telugu":  domain.LanguageTelugu,
	"te":      domain.LanguageTelugu,
}

type whisperClient struct {
	client  *openai.Client
	model   string
	limiter *rate.Limiter
	breaker *CircuitBreaker
	logger  *zerolog.Logger
}

// NewWhisper creates a Transcriber backed by the OpenAI audio API.
func NewWhisper(cfg config.LLMConfig, logger *zerolog.Logger) Transcriber {
	if !cfg.Enabled {
		return DisabledTranscriber()
	}

	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	model := cfg.TranscriptionModel
	if model == "" {
		model = defaultTranscriptionModel
	}

	return &whisperClient{
		client:  newOpenAIClient(cfg),
		model:   model,
		limiter: newLimiter(cfg.RateLimitRPS),
		breaker: NewCircuitBreaker(CircuitBreakerConfig{
			Threshold:  cfg.CircuitThreshold,
			ResetAfter: cfg.CircuitTimeout,
		}, logger),
		logger: logger,
	}
}

func (w *whisperClient) Transcribe(ctx context.Context, audio io.Reader, filename string) (Transcription, error) {
	if err := w.breaker.CheckCircuit(); err != nil {
		return Transcription{}, err
	}

	if err := w.limiter.Wait(ctx); err != nil {
		return Transcription{}, fmt.Errorf(errRateLimiter, err)
	}

	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.model,
		FilePath: filename,
		Reader:   audio,
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		w.breaker.RecordFailure(stageTranscribe)

		return Transcription{}, fmt.Errorf("%w: transcription: %w", coreerrors.ErrAugmentationUnavailable, err)
	}

	w.breaker.RecordSuccess()

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return Transcription{}, fmt.Errorf("%w: %s", coreerrors.ErrEmptyResponse, stageTranscribe)
	}

	logprobs := make([]float64, 0, len(resp.Segments))
	for _, seg := range resp.Segments {
		logprobs = append(logprobs, seg.AvgLogprob)
	}

	w.logger.Debug().Str("language", resp.Language).Int("segments", len(resp.Segments)).Msg("audio transcribed")

	return Transcription{
		Text:       text,
		Language:   whisperLanguages[strings.ToLower(resp.Language)],
		Confidence: meanProbability(logprobs),
	}, nil
}

// meanProbability turns mean segment log-probability into a 0..1 score.
func meanProbability(logprobs []float64) *float64 {
	if len(logprobs) == 0 {
		return nil
	}

	var sum float64
	for _, lp := range logprobs {
		sum += lp
	}

	p := math.Exp(sum / float64(len(logprobs)))
	p = math.Max(0, math.Min(1, p))

	return &p
}
