package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lueurxax/seva-desk/internal/core/domain"
	coreerrors "github.com/lueurxax/seva-desk/internal/core/errors"
	"github.com/lueurxax/seva-desk/internal/core/llm"
	"github.com/lueurxax/seva-desk/internal/core/ports/mocks"
	"github.com/lueurxax/seva-desk/internal/process/assistant"
)

type turnFunc func(ctx context.Context, msg domain.Message) (domain.TurnResponse, error)

func (f turnFunc) HandleTurn(ctx context.Context, msg domain.Message) (domain.TurnResponse, error) {
	return f(ctx, msg)
}

type transcriberFunc func(ctx context.Context, audio io.Reader, filename string) (llm.Transcription, error)

func (f transcriberFunc) Transcribe(ctx context.Context, audio io.Reader, filename string) (llm.Transcription, error) {
	return f(ctx, audio, filename)
}

type quotaFunc func(ctx context.Context, key string) (bool, error)

func (f quotaFunc) Allow(ctx context.Context, key string) (bool, error) {
	return f(ctx, key)
}

type lookupFunc func(ctx context.Context, ref string) (*domain.ServiceRequest, error)

func (f lookupFunc) GetServiceRequestByReference(ctx context.Context, ref string) (*domain.ServiceRequest, error) {
	return f(ctx, ref)
}

func newTestAssistant(t *testing.T) *assistant.Assistant {
	t.Helper()

	a, err := assistant.New(assistant.Config{}, assistant.Deps{
		Requests: mocks.NewRequestStore(),
		Users:    mocks.NewUserDirectory(),
		Now:      func() time.Time { return time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC) },
	}, nil)
	require.NoError(t, err)

	return a
}

func newTestHandler(t *testing.T, opts Options) *Handler {
	t.Helper()

	h, err := NewHandler(opts, nil)
	require.NoError(t, err)

	return h
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(headerContentType, "application/json")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestHandleMessage_Turns(t *testing.T) {
	h := newTestHandler(t, Options{Turns: newTestAssistant(t)})

	tests := []struct {
		name         string
		body         string
		wantCode     int
		wantOutcome  domain.OutcomeKind
		wantCategory domain.Category
	}{
		{
			name:         "complete blood request finalizes",
			body:         `{"text":"Urgent need O+ blood at Apollo Hospital","userId":"u1","turnId":"t1"}`,
			wantCode:     http.StatusOK,
			wantOutcome:  domain.OutcomeRequestFinalized,
			wantCategory: domain.CategoryBloodRequest,
		},
		{
			name:         "blood request without type asks a question",
			body:         `{"text":"I need blood for my father"}`,
			wantCode:     http.StatusOK,
			wantOutcome:  domain.OutcomeFollowUpNeeded,
			wantCategory: domain.CategoryBloodRequest,
		},
		{
			name:         "greeting is a general reply",
			body:         `{"text":"hello"}`,
			wantCode:     http.StatusOK,
			wantOutcome:  domain.OutcomeGeneralReply,
			wantCategory: domain.CategoryGeneralInquiry,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h, "/api/v1/messages", tt.body)
			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())

			var resp domain.TurnResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantOutcome, resp.Outcome)
			assert.Equal(t, tt.wantCategory, resp.Category)
			assert.NotEmpty(t, resp.ResponseMessage)
			assert.True(t, resp.UsingFallback)
		})
	}
}

func TestHandleMessage_CarriesContextAcrossTurns(t *testing.T) {
	h := newTestHandler(t, Options{Turns: newTestAssistant(t)})

	rec := postJSON(t, h, "/api/v1/messages", `{"text":"Need blood urgently","userId":"u2"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var first domain.TurnResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))
	require.Equal(t, domain.OutcomeFollowUpNeeded, first.Outcome)
	require.NotNil(t, first.Context)

	ctxJSON, err := json.Marshal(first.Context)
	require.NoError(t, err)

	rec = postJSON(t, h, "/api/v1/messages", `{"text":"AB-","userId":"u2","conversationContext":`+string(ctxJSON)+`}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var second domain.TurnResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
	assert.Equal(t, domain.OutcomeRequestFinalized, second.Outcome)
	assert.Equal(t, "AB-", second.ExtractedInfo[domain.SlotBloodType])
	assert.NotEmpty(t, second.CreatedRequestID)
}

func TestHandleMessage_Errors(t *testing.T) {
	failing := turnFunc(func(context.Context, domain.Message) (domain.TurnResponse, error) {
		return domain.TurnResponse{}, errors.New("boom")
	})

	tests := []struct {
		name     string
		turns    TurnHandler
		method   string
		body     string
		wantCode int
	}{
		{name: "empty text", turns: newTestAssistant(t), method: http.MethodPost, body: `{"text":"   "}`, wantCode: http.StatusBadRequest},
		{name: "malformed json", turns: newTestAssistant(t), method: http.MethodPost, body: `{"text":`, wantCode: http.StatusBadRequest},
		{name: "wrong method", turns: newTestAssistant(t), method: http.MethodGet, body: ``, wantCode: http.StatusMethodNotAllowed},
		{name: "internal failure", turns: failing, method: http.MethodPost, body: `{"text":"hi"}`, wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, Options{Turns: tt.turns})

			req := httptest.NewRequest(tt.method, "/api/v1/messages", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestHandleMessage_PassesDeclaredFields(t *testing.T) {
	var got domain.Message

	turns := turnFunc(func(_ context.Context, msg domain.Message) (domain.TurnResponse, error) {
		got = msg

		return domain.TurnResponse{Outcome: domain.OutcomeGeneralReply}, nil
	})

	h := newTestHandler(t, Options{Turns: turns})

	rec := postJSON(t, h, "/api/v1/messages",
		`{"text":"నాకు రక్తం కావాలి","language":"te","inputMethod":"voice","confidence":0.82,"userId":"u9","turnId":"t9"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, domain.LanguageTelugu, got.Language)
	assert.Equal(t, domain.InputVoice, got.InputMethod)
	require.NotNil(t, got.Confidence)
	assert.InDelta(t, 0.82, *got.Confidence, 1e-9)
	assert.Equal(t, "u9", got.UserID)
	assert.Equal(t, "t9", got.TurnID)
}

func TestNewHandlerRequiresTurns(t *testing.T) {
	_, err := NewHandler(Options{}, nil)
	require.ErrorIs(t, err, coreerrors.ErrInvalidInput)
}

func TestServeHTTP_RateLimitsPerClient(t *testing.T) {
	turns := turnFunc(func(context.Context, domain.Message) (domain.TurnResponse, error) {
		return domain.TurnResponse{}, nil
	})
	h := newTestHandler(t, Options{Turns: turns})

	codes := make(map[int]int)

	for range rateLimitBurst + 1 {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", strings.NewReader(`{"text":"hi"}`))
		req.RemoteAddr = "10.0.0.1:1234"

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes[rec.Code]++
	}

	assert.Equal(t, rateLimitBurst, codes[http.StatusOK])
	assert.Equal(t, 1, codes[http.StatusTooManyRequests])

	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", strings.NewReader(`{"text":"hi"}`))
	req.RemoteAddr = "10.0.0.2:1234"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "forwarded", headers: map[string]string{"X-Forwarded-For": "1.2.3.4, 10.0.0.1"}, remote: "10.0.0.1:80", want: "1.2.3.4"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": "5.6.7.8"}, remote: "10.0.0.1:80", want: "5.6.7.8"},
		{name: "remote addr", remote: "9.9.9.9:5555", want: "9.9.9.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote

			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			assert.Equal(t, tt.want, getClientIP(req))
		})
	}
}

func TestHandleGetRequest(t *testing.T) {
	stored := &domain.ServiceRequest{
		ID:            "6f1c2a8e-4c1d-4e0f-9a53-0f2d8c7b1e44",
		ReferenceCode: "CP-01JABCDEF",
		Type:          domain.RequestTypeComplaint,
		Title:         "Street lights not working - MG Road",
		Priority:      domain.PriorityMedium,
		Status:        domain.RequestStatusPending,
		Complaint:     &domain.ComplaintDetails{Category: "Electricity", Location: "MG Road", Severity: "medium"},
	}

	lookup := lookupFunc(func(_ context.Context, ref string) (*domain.ServiceRequest, error) {
		if ref == stored.ReferenceCode {
			return stored, nil
		}

		return nil, coreerrors.ErrNotFound
	})

	h := newTestHandler(t, Options{Turns: newTestAssistant(t), Requests: lookup})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/requests/cp-01jabcdef", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var view map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "Street lights not working - MG Road", view["title"])
	assert.Contains(t, view, "complaintDetails")
	assert.NotContains(t, view, "bloodDetails")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/requests/BR-404", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func newVoiceRequest(t *testing.T, fields map[string]string, withAudio bool) *http.Request {
	t.Helper()

	var buf bytes.Buffer

	mw := multipart.NewWriter(&buf)

	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}

	if withAudio {
		part, err := mw.CreateFormFile(formFieldAudio, "note.ogg")
		require.NoError(t, err)
		_, err = part.Write([]byte("OggS fake audio"))
		require.NoError(t, err)
	}

	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/voice", &buf)
	req.Header.Set(headerContentType, mw.FormDataContentType())

	return req
}

func TestHandleVoice(t *testing.T) {
	confidence := 0.91

	transcribed := transcriberFunc(func(_ context.Context, audio io.Reader, filename string) (llm.Transcription, error) {
		data, err := io.ReadAll(audio)
		if err != nil {
			return llm.Transcription{}, err
		}

		if filename != "note.ogg" || len(data) == 0 {
			return llm.Transcription{}, errors.New("unexpected upload")
		}

		return llm.Transcription{
			Text:       "Street lights not working near MG Road",
			Language:   domain.LanguageEnglish,
			Confidence: &confidence,
		}, nil
	})

	h := newTestHandler(t, Options{Turns: newTestAssistant(t), Transcriber: transcribed})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, newVoiceRequest(t, map[string]string{formFieldUserID: "u5", formFieldTurnID: "v1"}, true))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp voiceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Street lights not working near MG Road", resp.Transcript)
	assert.Equal(t, domain.OutcomeRequestFinalized, resp.Outcome)
	assert.Equal(t, domain.CategoryComplaint, resp.Category)
	assert.Equal(t, "Electricity", resp.ExtractedInfo[domain.SlotComplaintCategory])
}

func TestHandleVoice_Errors(t *testing.T) {
	fail := func(err error) llm.Transcriber {
		return transcriberFunc(func(context.Context, io.Reader, string) (llm.Transcription, error) {
			return llm.Transcription{}, err
		})
	}

	blank := transcriberFunc(func(context.Context, io.Reader, string) (llm.Transcription, error) {
		return llm.Transcription{Text: "  "}, nil
	})

	denied := quotaFunc(func(context.Context, string) (bool, error) { return false, nil })
	brokenQuota := quotaFunc(func(context.Context, string) (bool, error) { return false, errors.New("redis down") })

	tests := []struct {
		name        string
		transcriber llm.Transcriber
		quota       QuotaChecker
		withAudio   bool
		wantCode    int
	}{
		{name: "missing audio", transcriber: blank, withAudio: false, wantCode: http.StatusBadRequest},
		{name: "transcription disabled", transcriber: nil, withAudio: true, wantCode: http.StatusServiceUnavailable},
		{name: "transcription failed", transcriber: fail(coreerrors.ErrAugmentationUnavailable), withAudio: true, wantCode: http.StatusBadGateway},
		{name: "no speech", transcriber: blank, withAudio: true, wantCode: http.StatusUnprocessableEntity},
		{name: "quota exhausted", transcriber: blank, quota: denied, withAudio: true, wantCode: http.StatusTooManyRequests},
		{name: "quota store down fails open", transcriber: blank, quota: brokenQuota, withAudio: true, wantCode: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, Options{Turns: newTestAssistant(t), Transcriber: tt.transcriber, VoiceQuota: tt.quota})

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, newVoiceRequest(t, map[string]string{formFieldUserID: "u6"}, tt.withAudio))

			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
		})
	}
}
