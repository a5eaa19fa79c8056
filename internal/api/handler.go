// Package api exposes the assistant over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/lueurxax/seva-desk/internal/core/domain"
	coreerrors "github.com/lueurxax/seva-desk/internal/core/errors"
	"github.com/lueurxax/seva-desk/internal/core/llm"
)

// Rate limiting constants.
const (
	rateLimitRequests = 30
	rateLimitBurst    = 10
	rateLimitWindow   = time.Minute
)

// Log field constants.
const (
	logFieldUserID = "user_id"
	logFieldPath   = "path"
)

// HTTP header constants.
const (
	headerContentType = "Content-Type"
	contentTypeJSON   = "application/json; charset=utf-8"
	maxJSONBodyBytes  = 64 << 10
)

// TurnHandler runs one conversation turn.
type TurnHandler interface {
	HandleTurn(ctx context.Context, msg domain.Message) (domain.TurnResponse, error)
}

// QuotaChecker decides whether a caller may perform one more costly operation.
type QuotaChecker interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RequestLookup finds stored requests by their reference code.
type RequestLookup interface {
	GetServiceRequestByReference(ctx context.Context, ref string) (*domain.ServiceRequest, error)
}

// Options configures the HTTP handler.
type Options struct {
	Turns       TurnHandler
	Transcriber llm.Transcriber
	VoiceQuota  QuotaChecker
	Requests    RequestLookup
	// MaxUploadBytes bounds a voice upload.
	MaxUploadBytes int64
}

// Handler serves the public HTTP API.
type Handler struct {
	turns       TurnHandler
	transcriber llm.Transcriber
	voiceQuota  QuotaChecker
	requests    RequestLookup
	maxUpload   int64
	logger      *zerolog.Logger
	mux         *http.ServeMux

	// IP-based rate limiting
	limiters   map[string]*rate.Limiter
	limitersMu sync.Mutex
}

const defaultMaxUploadBytes = 10 << 20

// NewHandler creates the API handler.
func NewHandler(opts Options, logger *zerolog.Logger) (*Handler, error) {
	if opts.Turns == nil {
		return nil, coreerrors.ErrInvalidInput
	}

	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	if opts.Transcriber == nil {
		opts.Transcriber = llm.DisabledTranscriber()
	}

	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUploadBytes
	}

	h := &Handler{
		turns:       opts.Turns,
		transcriber: opts.Transcriber,
		voiceQuota:  opts.VoiceQuota,
		requests:    opts.Requests,
		maxUpload:   opts.MaxUploadBytes,
		logger:      logger,
		limiters:    make(map[string]*rate.Limiter),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/messages", h.handleMessage)
	mux.HandleFunc("POST /api/v1/voice", h.handleVoice)
	mux.HandleFunc("GET /api/v1/requests/{ref}", h.handleGetRequest)
	h.mux = mux

	return h, nil
}

// ServeHTTP applies the per-client rate limit and routes the request.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.allowRequest(getClientIP(r)) {
		writeError(w, http.StatusTooManyRequests, "too many requests, please wait before trying again")

		return
	}

	h.mux.ServeHTTP(w, r)
}

// messageRequest is the body of POST /api/v1/messages.
type messageRequest struct {
	Text        string                      `json:"text"`
	Language    string                      `json:"language,omitempty"`
	InputMethod string                      `json:"inputMethod,omitempty"`
	Confidence  *float64                    `json:"confidence,omitempty"`
	UserID      string                      `json:"userId,omitempty"`
	TurnID      string                      `json:"turnId,omitempty"`
	Context     *domain.ConversationContext `json:"conversationContext,omitempty"`
}

func (h *Handler) handleMessage(w http.ResponseWriter, r *http.Request) {
	var body messageRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBodyBytes))
	if err := dec.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")

		return
	}

	msg := domain.Message{
		Text:        body.Text,
		InputMethod: domain.InputText,
		Confidence:  body.Confidence,
		UserID:      body.UserID,
		TurnID:      body.TurnID,
		Context:     body.Context,
	}

	if lang, ok := domain.ParseLanguage(body.Language); ok {
		msg.Language = lang
	}

	if domain.InputMethod(body.InputMethod) == domain.InputVoice {
		msg.InputMethod = domain.InputVoice
	}

	resp, err := h.turns.HandleTurn(r.Context(), msg)
	if err != nil {
		h.writeTurnError(w, r, msg.UserID, err)

		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) writeTurnError(w http.ResponseWriter, r *http.Request, userID string, err error) {
	switch {
	case errors.Is(err, coreerrors.ErrEmptyMessage), errors.Is(err, coreerrors.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error().Err(err).Str(logFieldUserID, userID).Str(logFieldPath, r.URL.Path).Msg("turn failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// requestView is the public shape of a stored request.
type requestView struct {
	ID            string                      `json:"id"`
	ReferenceCode string                      `json:"referenceCode"`
	Type          domain.RequestType          `json:"type"`
	Title         string                      `json:"title"`
	Description   string                      `json:"description"`
	Location      domain.Location             `json:"location"`
	Priority      domain.Priority             `json:"priority"`
	Status        string                      `json:"status"`
	Language      domain.Language             `json:"language"`
	CreatedAt     time.Time                   `json:"createdAt"`
	Blood         *domain.BloodDetails        `json:"bloodDetails,omitempty"`
	Elder         *domain.ElderSupportDetails `json:"elderSupportDetails,omitempty"`
	Complaint     *domain.ComplaintDetails    `json:"complaintDetails,omitempty"`
}

func (h *Handler) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	if h.requests == nil {
		writeError(w, http.StatusNotFound, "request lookup is not available")

		return
	}

	ref := strings.ToUpper(strings.TrimSpace(r.PathValue("ref")))

	req, err := h.requests.GetServiceRequestByReference(r.Context(), ref)
	if errors.Is(err, coreerrors.ErrNotFound) {
		writeError(w, http.StatusNotFound, "request not found")

		return
	}

	if err != nil {
		h.logger.Error().Err(err).Str("reference", ref).Msg("request lookup failed")
		writeError(w, http.StatusInternalServerError, "internal error")

		return
	}

	writeJSON(w, http.StatusOK, requestView{
		ID:            req.ID,
		ReferenceCode: req.ReferenceCode,
		Type:          req.Type,
		Title:         req.Title,
		Description:   req.Description,
		Location:      req.Location,
		Priority:      req.Priority,
		Status:        req.Status,
		Language:      req.Language,
		CreatedAt:     req.CreatedAt,
		Blood:         req.Blood,
		Elder:         req.Elder,
		Complaint:     req.Complaint,
	})
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, errorBody{Error: message})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set(headerContentType, contentTypeJSON)
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck // client may have gone away
}

func (h *Handler) allowRequest(ip string) bool {
	h.limitersMu.Lock()

	limiter, ok := h.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(rateLimitWindow/rateLimitRequests), rateLimitBurst)
		h.limiters[ip] = limiter
	}

	h.limitersMu.Unlock()

	return limiter.Allow()
}

func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header (common with reverse proxies)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	// RemoteAddr carries the port; strip it so one client maps to one limiter.
	if i := strings.LastIndex(r.RemoteAddr, ":"); i > 0 {
		return r.RemoteAddr[:i]
	}

	return r.RemoteAddr
}
