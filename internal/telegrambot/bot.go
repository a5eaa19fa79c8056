// Package telegrambot connects the assistant to Telegram chats. Telegram does
// not carry conversation state, so the context of every chat is kept in the
// session store between messages.
package telegrambot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/lueurxax/seva-desk/internal/core/domain"
	coreerrors "github.com/lueurxax/seva-desk/internal/core/errors"
	"github.com/lueurxax/seva-desk/internal/core/llm"
	"github.com/lueurxax/seva-desk/internal/core/ports"
	"github.com/lueurxax/seva-desk/internal/platform/observability"
	"github.com/lueurxax/seva-desk/internal/platform/worker"
)

const (
	updateTimeoutSeconds = 60
	downloadTimeout      = 30 * time.Second
	voiceFilename        = "voice.ogg"

	keyPrefix = "tg:"

	commandStart  = "start"
	commandCancel = "cancel"
	commandHelp   = "help"
)

// Update status labels.
const (
	StatusHandled     = "handled"
	StatusIgnored     = "ignored"
	StatusFailed      = "failed"
	StatusRateLimited = "rate_limited"
)

// Log field constants.
const (
	LogFieldChatID = "chat_id"
	LogFieldUserID = "user_id"
)

// API is the part of the Telegram client the bot uses.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetFileDirectURL(fileID string) (string, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// TurnHandler runs one conversation turn.
type TurnHandler interface {
	HandleTurn(ctx context.Context, msg domain.Message) (domain.TurnResponse, error)
}

// QuotaChecker decides whether a caller may send one more voice message.
type QuotaChecker interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Deps are the collaborators of the bot.
type Deps struct {
	API         API
	Turns       TurnHandler
	Contexts    ports.ContextStore
	Transcriber llm.Transcriber
	VoiceQuota  QuotaChecker
	HTTPClient  *http.Client
}

// Bot relays chat messages to the assistant and replies with its answers.
type Bot struct {
	api         API
	turns       TurnHandler
	contexts    ports.ContextStore
	transcriber llm.Transcriber
	voiceQuota  QuotaChecker
	httpClient  *http.Client
	logger      *zerolog.Logger
}

// NewAPI connects to Telegram with a bot token.
func NewAPI(token string) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("creating bot API: %w", err)
	}

	return api, nil
}

// New creates a bot.
func New(deps Deps, logger *zerolog.Logger) (*Bot, error) {
	if deps.API == nil || deps.Turns == nil || deps.Contexts == nil {
		return nil, coreerrors.ErrInvalidInput
	}

	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	if deps.Transcriber == nil {
		deps.Transcriber = llm.DisabledTranscriber()
	}

	if deps.HTTPClient == nil {
		deps.HTTPClient = &http.Client{Timeout: downloadTimeout}
	}

	return &Bot{
		api:         deps.API,
		turns:       deps.Turns,
		contexts:    deps.Contexts,
		transcriber: deps.Transcriber,
		voiceQuota:  deps.VoiceQuota,
		httpClient:  deps.HTTPClient,
		logger:      logger,
	}, nil
}

// Run receives updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = updateTimeoutSeconds

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	b.logger.Info().Msg("Telegram bot started")

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("bot run context canceled: %w", ctx.Err())
		case update, ok := <-updates:
			if !ok {
				return nil
			}

			b.dispatch(ctx, update)
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, update tgbotapi.Update) {
	status := StatusFailed

	defer func() {
		observability.TelegramUpdates.WithLabelValues(status).Inc()
	}()
	defer worker.RecoverPanic(b.logger, "telegram update")

	status = b.HandleUpdate(ctx, update)
}

// HandleUpdate processes one update and returns its status label.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) string {
	msg := update.Message
	if msg == nil || msg.Chat == nil || msg.From == nil || msg.From.IsBot {
		return StatusIgnored
	}

	lang := userLanguage(msg.From.LanguageCode)

	if msg.IsCommand() {
		return b.handleCommand(ctx, msg, lang)
	}

	switch {
	case msg.Voice != nil:
		return b.handleVoice(ctx, msg, lang)
	case strings.TrimSpace(msg.Text) != "":
		return b.handleText(ctx, msg, msg.Text, domain.InputText, nil, lang)
	default:
		b.reply(msg.Chat.ID, unsupportedMessage.in(lang))

		return StatusIgnored
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, lang domain.Language) string {
	switch msg.Command() {
	case commandStart, commandHelp:
		b.resetContext(ctx, msg.Chat.ID)
		b.reply(msg.Chat.ID, welcomeMessage.in(lang))
	case commandCancel:
		b.resetContext(ctx, msg.Chat.ID)
		b.reply(msg.Chat.ID, cancelledMessage.in(lang))
	default:
		b.reply(msg.Chat.ID, unknownCommandMessage.in(lang))

		return StatusIgnored
	}

	return StatusHandled
}

func (b *Bot) handleText(
	ctx context.Context, msg *tgbotapi.Message, text string, input domain.InputMethod, confidence *float64, lang domain.Language,
) string {
	key := contextKey(msg.Chat.ID)

	convCtx, err := b.contexts.GetContext(ctx, key)
	if err != nil {
		// Losing the context only costs the citizen a repeated answer.
		b.logger.Warn().Err(err).Int64(LogFieldChatID, msg.Chat.ID).Msg("failed to load conversation context")
	}

	resp, err := b.turns.HandleTurn(ctx, domain.Message{
		Text:        text,
		Language:    lang,
		InputMethod: input,
		Confidence:  confidence,
		UserID:      keyPrefix + strconv.FormatInt(msg.From.ID, 10),
		TurnID:      fmt.Sprintf("%s%d:%d", keyPrefix, msg.Chat.ID, msg.MessageID),
		Context:     convCtx,
	})
	if err != nil {
		b.logger.Error().Err(err).Int64(LogFieldChatID, msg.Chat.ID).Msg("turn failed")
		b.reply(msg.Chat.ID, failureMessage.in(lang))

		return StatusFailed
	}

	b.saveContext(ctx, msg.Chat.ID, resp.Context)
	b.reply(msg.Chat.ID, resp.ResponseMessage)

	return StatusHandled
}

func (b *Bot) handleVoice(ctx context.Context, msg *tgbotapi.Message, lang domain.Language) string {
	if b.voiceQuota != nil {
		ok, err := b.voiceQuota.Allow(ctx, keyPrefix+strconv.FormatInt(msg.From.ID, 10))
		if err != nil {
			b.logger.Warn().Err(err).Int64(LogFieldUserID, msg.From.ID).Msg("voice quota check failed")
		} else if !ok {
			observability.VoiceRateLimited.Inc()
			b.reply(msg.Chat.ID, voiceLimitMessage.in(lang))

			return StatusRateLimited
		}
	}

	transcript, err := b.transcribe(ctx, msg.Voice.FileID)
	if err != nil {
		b.logger.Warn().Err(err).Int64(LogFieldChatID, msg.Chat.ID).Msg("voice transcription failed")
		b.reply(msg.Chat.ID, voiceUnavailableMessage.in(lang))

		return StatusFailed
	}

	if strings.TrimSpace(transcript.Text) == "" {
		b.reply(msg.Chat.ID, voiceUnavailableMessage.in(lang))

		return StatusFailed
	}

	if transcript.Language != "" {
		lang = transcript.Language
	}

	return b.handleText(ctx, msg, transcript.Text, domain.InputVoice, transcript.Confidence, lang)
}

func (b *Bot) transcribe(ctx context.Context, fileID string) (llm.Transcription, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return llm.Transcription{}, fmt.Errorf("get voice file url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return llm.Transcription{}, fmt.Errorf("build voice download: %w", err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return llm.Transcription{}, fmt.Errorf("download voice file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body) //nolint:errcheck // draining for connection reuse

		return llm.Transcription{}, fmt.Errorf("download voice file: status %d", resp.StatusCode)
	}

	return b.transcriber.Transcribe(ctx, resp.Body, voiceFilename)
}

func (b *Bot) saveContext(ctx context.Context, chatID int64, convCtx *domain.ConversationContext) {
	if err := b.contexts.PutContext(ctx, contextKey(chatID), convCtx); err != nil {
		b.logger.Warn().Err(err).Int64(LogFieldChatID, chatID).Msg("failed to store conversation context")
	}
}

func (b *Bot) resetContext(ctx context.Context, chatID int64) {
	if err := b.contexts.DeleteContext(ctx, contextKey(chatID)); err != nil {
		b.logger.Warn().Err(err).Int64(LogFieldChatID, chatID).Msg("failed to reset conversation context")
	}
}

func (b *Bot) reply(chatID int64, text string) {
	for _, part := range splitMessage(text, maxMessageRunes) {
		if _, err := b.api.Send(tgbotapi.NewMessage(chatID, part)); err != nil {
			b.logger.Error().Err(err).Int64(LogFieldChatID, chatID).Msg("failed to send reply")

			return
		}
	}
}

func contextKey(chatID int64) string {
	return keyPrefix + strconv.FormatInt(chatID, 10)
}

// userLanguage maps a Telegram language code such as "hi" or "en-US" onto a
// supported language. Unknown codes are left for detection.
func userLanguage(code string) domain.Language {
	base, _, _ := strings.Cut(code, "-")

	lang, ok := domain.ParseLanguage(base)
	if !ok {
		return ""
	}

	return lang
}
