package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/lueurxax/seva-desk/internal/core/domain"
	coreerrors "github.com/lueurxax/seva-desk/internal/core/errors"
	"github.com/lueurxax/seva-desk/internal/platform/observability"
)

// Multipart field names of POST /api/v1/voice.
const (
	formFieldAudio    = "audio"
	formFieldUserID   = "userId"
	formFieldTurnID   = "turnId"
	formFieldLanguage = "language"
	formFieldContext  = "conversationContext"

	anonymousQuotaKey = "anonymous"
)

// voiceResponse is a turn response together with the recognised text.
type voiceResponse struct {
	domain.TurnResponse
	Transcript string `json:"transcript"`
}

func (h *Handler) handleVoice(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart upload")

		return
	}

	userID := strings.TrimSpace(r.FormValue(formFieldUserID))

	quotaKey := userID
	if quotaKey == "" {
		quotaKey = anonymousQuotaKey + ":" + getClientIP(r)
	}

	if !h.allowVoice(r, quotaKey) {
		observability.VoiceRateLimited.Inc()
		writeError(w, http.StatusTooManyRequests, "voice message limit reached, please type your message")

		return
	}

	file, header, err := r.FormFile(formFieldAudio)
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing audio file")

		return
	}
	defer file.Close()

	var convCtx *domain.ConversationContext

	if raw := r.FormValue(formFieldContext); raw != "" {
		if err := json.Unmarshal([]byte(raw), &convCtx); err != nil {
			writeError(w, http.StatusBadRequest, "invalid conversation context")

			return
		}
	}

	transcript, err := h.transcriber.Transcribe(r.Context(), file, header.Filename)
	if err != nil {
		h.writeTranscriptionError(w, userID, err)

		return
	}

	msg := domain.Message{
		Text:        transcript.Text,
		Language:    transcript.Language,
		InputMethod: domain.InputVoice,
		Confidence:  transcript.Confidence,
		UserID:      userID,
		TurnID:      r.FormValue(formFieldTurnID),
		Context:     convCtx,
	}

	if lang, ok := domain.ParseLanguage(r.FormValue(formFieldLanguage)); ok {
		msg.Language = lang
	}

	resp, err := h.turns.HandleTurn(r.Context(), msg)
	if err != nil {
		if errors.Is(err, coreerrors.ErrEmptyMessage) {
			writeError(w, http.StatusUnprocessableEntity, "no speech was recognised in the recording")

			return
		}

		h.writeTurnError(w, r, userID, err)

		return
	}

	writeJSON(w, http.StatusOK, voiceResponse{TurnResponse: resp, Transcript: transcript.Text})
}

func (h *Handler) allowVoice(r *http.Request, key string) bool {
	if h.voiceQuota == nil {
		return true
	}

	ok, err := h.voiceQuota.Allow(r.Context(), key)
	if err != nil {
		// The quota store being down must not block citizens.
		h.logger.Warn().Err(err).Str(logFieldUserID, key).Msg("voice quota check failed")

		return true
	}

	return ok
}

func (h *Handler) writeTranscriptionError(w http.ResponseWriter, userID string, err error) {
	switch {
	case errors.Is(err, coreerrors.ErrClientDisabled), errors.Is(err, coreerrors.ErrCircuitBreakerOpen):
		writeError(w, http.StatusServiceUnavailable, "voice messages are not available right now, please type your message")
	case errors.Is(err, coreerrors.ErrEmptyResponse):
		writeError(w, http.StatusUnprocessableEntity, "no speech was recognised in the recording")
	default:
		h.logger.Warn().Err(err).Str(logFieldUserID, userID).Msg("transcription failed")
		writeError(w, http.StatusBadGateway, "could not transcribe the recording")
	}
}
