// Package assistant turns citizen messages into service requests or replies,
// one conversation turn at a time.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lueurxax/seva-desk/internal/core/domain"
	coreerrors "github.com/lueurxax/seva-desk/internal/core/errors"
	"github.com/lueurxax/seva-desk/internal/core/llm"
	"github.com/lueurxax/seva-desk/internal/core/ports"
	"github.com/lueurxax/seva-desk/internal/platform/observability"
	"github.com/lueurxax/seva-desk/internal/process/nlu"
)

const (
	defaultAITimeout = 8 * time.Second

	logFieldStage    = "stage"
	logFieldCategory = "category"
	logFieldUserID   = "user_id"
	logFieldRequest  = "request_id"
)

// LogSink receives conversation log entries. Implementations must not block.
type LogSink interface {
	Enqueue(entry domain.ConversationLog)
}

// Config holds assistant settings.
type Config struct {
	AITimeout       time.Duration
	DefaultLocation domain.Location
}

// Assistant runs the turn pipeline. It keeps no per-conversation state and is
// safe for concurrent use.
type Assistant struct {
	ai        llm.Augmenter
	requests  ports.RequestStore
	users     ports.UserDirectory
	logs      LogSink
	assembler *Assembler
	responder *Responder
	resolver  resolver
	now       func() time.Time
	logger    *zerolog.Logger
}

// Deps are the collaborators of the assistant. AI may be nil, in which case
// every stage uses local rules. Logs may be nil.
type Deps struct {
	AI       llm.Augmenter
	Requests ports.RequestStore
	Users    ports.UserDirectory
	Logs     LogSink
	Now      func() time.Time
}

// New creates an assistant.
func New(cfg Config, deps Deps, logger *zerolog.Logger) (*Assistant, error) {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	if deps.Requests == nil {
		return nil, fmt.Errorf("%w: request store is required", coreerrors.ErrInvalidInput)
	}

	if deps.AI == nil {
		deps.AI = llm.Disabled()
	}

	if deps.Now == nil {
		deps.Now = time.Now
	}

	if cfg.AITimeout <= 0 {
		cfg.AITimeout = defaultAITimeout
	}

	responder, err := NewResponder()
	if err != nil {
		return nil, err
	}

	componentLogger := logger.With().Str("component", "assistant").Logger()

	return &Assistant{
		ai:        deps.AI,
		requests:  deps.Requests,
		users:     deps.Users,
		logs:      deps.Logs,
		assembler: NewAssembler(cfg.DefaultLocation, deps.Now),
		responder: responder,
		resolver:  resolver{timeout: cfg.AITimeout, logger: &componentLogger},
		now:       deps.Now,
		logger:    &componentLogger,
	}, nil
}

// turn carries the values computed while handling one message.
type turn struct {
	msg        domain.Message
	text       string
	normalized string
	lang       domain.Language
	prior      *domain.ConversationContext
	fallback   bool
}

// HandleTurn processes one message. The only error it returns is
// ErrEmptyMessage; every other failure is reported inside the response.
func (a *Assistant) HandleTurn(ctx context.Context, msg domain.Message) (domain.TurnResponse, error) {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return domain.TurnResponse{}, coreerrors.ErrEmptyMessage
	}

	start := a.now()

	t := &turn{
		msg:        msg,
		text:       text,
		normalized: nlu.TranslateToEnglish(text),
		lang:       resolveLanguage(msg.Language, text),
		prior:      msg.Context.Clone(),
	}

	resp := a.run(ctx, t)
	resp.Language = t.lang
	resp.UsingFallback = t.fallback

	if resp.ExtractedInfo == nil {
		resp.ExtractedInfo = domain.SlotMap{}
	}

	if resp.MissingInfo == nil {
		resp.MissingInfo = []string{}
	}

	observability.TurnsTotal.WithLabelValues(string(resp.Outcome)).Inc()
	observability.TurnDuration.Observe(a.now().Sub(start).Seconds())

	a.recordLog(t, resp)

	return resp, nil
}

func (a *Assistant) run(ctx context.Context, t *turn) domain.TurnResponse {
	cls, direct := a.classify(ctx, t)

	if !cls.Category.IsServiceRequest() {
		return a.generalReply(t, cls, direct)
	}

	// A new service category starts slot filling over.
	if t.prior != nil && t.prior.Category != cls.Category {
		t.prior = nil
	}

	return a.fillSlots(ctx, t, cls)
}

func resolveLanguage(declared domain.Language, text string) domain.Language {
	if lang, ok := domain.ParseLanguage(string(declared)); ok {
		return lang
	}

	return nlu.DetectLanguage(text)
}

// classify returns the turn classification and any direct answer suggested
// by augmentation for non-service messages.
func (a *Assistant) classify(ctx context.Context, t *turn) (domain.ClassificationResult, string) {
	res := resolve(ctx, a.resolver, stage[llm.ClassifyResult]{
		name: stageClassify,
		call: func(ctx context.Context) (llm.ClassifyResult, error) {
			return a.ai.Classify(ctx, t.text, t.prior)
		},
		accept: func(r llm.ClassifyResult) bool {
			_, ok := domain.ParseCategory(string(r.Category))
			return ok
		},
		fallback: func() llm.ClassifyResult {
			return llm.ClassifyResult{
				Category: nlu.CategorizeRequest(t.text),
				Priority: nlu.DeterminePriority(t.text),
			}
		},
	})

	t.fallback = t.fallback || res.UsingFallback

	category := res.Value.Category
	priority := res.Value.Priority

	if _, ok := domain.ParsePriority(string(priority)); !ok {
		priority = nlu.DeterminePriority(t.text)
	}

	// An answer to a follow-up rarely reads like a request on its own.
	if category == domain.CategoryGeneralInquiry && t.prior != nil && t.prior.Category.IsServiceRequest() {
		category = t.prior.Category
	}

	return domain.ClassificationResult{
		Category:      category,
		Priority:      priority,
		UsingFallback: res.UsingFallback,
	}, strings.TrimSpace(res.Value.Response)
}

func (a *Assistant) generalReply(t *turn, cls domain.ClassificationResult, direct string) domain.TurnResponse {
	message := direct
	if message == "" {
		message = a.responder.Reply(cls.Category, t.text, t.normalized, t.lang)

		if !cls.UsingFallback {
			observability.FallbacksTotal.WithLabelValues(stageReply).Inc()
			t.fallback = true
		}
	}

	a.logger.Info().
		Str(logFieldCategory, string(cls.Category)).
		Str(logFieldUserID, t.msg.UserID).
		Msg("general reply")

	return domain.TurnResponse{
		Outcome:         domain.OutcomeGeneralReply,
		Category:        cls.Category,
		Priority:        cls.Priority,
		ResponseMessage: message,
	}
}

func (a *Assistant) fillSlots(ctx context.Context, t *turn, cls domain.ClassificationResult) domain.TurnResponse {
	var priorSlots domain.SlotMap
	if t.prior != nil {
		priorSlots = t.prior.Slots
	}

	ext := a.extract(ctx, t, cls.Category, priorSlots)
	slots := priorSlots.Merge(ext.slots).Scoped(cls.Category)

	explicitUrgency := ""
	if t.prior != nil {
		explicitUrgency = t.prior.ExplicitUrgency
	}

	if cls.Category == domain.CategoryBloodRequest && nlu.ExplicitUrgency(t.text) {
		explicitUrgency = domain.UrgencyUrgent
	}

	if cls.Category == domain.CategoryComplaint && !slots.Has(domain.SlotComplaintCategory) {
		slots[domain.SlotComplaintCategory] = domain.ComplaintOther
	}

	next := &domain.ConversationContext{
		Category:        cls.Category,
		Slots:           slots,
		ExplicitUrgency: explicitUrgency,
	}

	if t.prior != nil {
		next.FollowUps = t.prior.FollowUps
	}

	missing := nlu.GetMissingRequiredInfo(cls.Category, slots)
	if len(missing) > 0 {
		return a.followUp(ctx, t, cls, next, missing)
	}

	return a.finalize(ctx, t, cls, next, ext.aiUrgency)
}

type extraction struct {
	slots     domain.SlotMap
	aiUrgency string
}

// extract merges augmentation output with local extraction. Augmentation is
// trusted only when it reports success without falling back itself; local
// rules then fill the gaps. Regex urgency always beats augmentation.
func (a *Assistant) extract(
	ctx context.Context, t *turn, category domain.Category, prior domain.SlotMap,
) extraction {
	heuristic := nlu.ExtractRequestInfo(t.text, category, prior)

	res := resolve(ctx, a.resolver, stage[llm.ExtractResult]{
		name: stageExtract,
		call: func(ctx context.Context) (llm.ExtractResult, error) {
			return a.ai.Extract(ctx, t.text, category, t.lang, t.prior)
		},
		accept: func(r llm.ExtractResult) bool {
			return r.Success && !r.UsingFallback
		},
		fallback: func() llm.ExtractResult {
			return llm.ExtractResult{ExtractedInfo: heuristic, Success: true, UsingFallback: true}
		},
	})

	t.fallback = t.fallback || res.UsingFallback

	if res.UsingFallback {
		return extraction{slots: heuristic}
	}

	suggested := res.Value.ExtractedInfo.Scoped(category)
	merged := heuristic.Merge(suggested)

	out := extraction{slots: merged}

	if category == domain.CategoryBloodRequest {
		out.aiUrgency = suggested.Get(domain.SlotUrgencyLevel)

		if v := heuristic.Get(domain.SlotUrgencyLevel); v != "" {
			merged[domain.SlotUrgencyLevel] = v
		}
	}

	return out
}

func (a *Assistant) followUp(
	ctx context.Context, t *turn, cls domain.ClassificationResult, next *domain.ConversationContext, missing []string,
) domain.TurnResponse {
	slot := nlu.NextFollowUpSlot(cls.Category, missing)

	res := resolve(ctx, a.resolver, stage[llm.FollowUpResult]{
		name: stageFollowUp,
		call: func(ctx context.Context) (llm.FollowUpResult, error) {
			return a.ai.GenerateFollowUp(ctx, cls.Category, slot, next.Slots, t.lang)
		},
		accept: func(r llm.FollowUpResult) bool {
			return r.Success && !r.UsingFallback && strings.TrimSpace(r.Question) != ""
		},
		fallback: func() llm.FollowUpResult {
			return llm.FollowUpResult{Question: followUpQuestion(slot, t.lang), Success: true, UsingFallback: true}
		},
	})

	t.fallback = t.fallback || res.UsingFallback

	next.AwaitingSlot = slot
	next.FollowUps++

	a.logger.Info().
		Str(logFieldCategory, string(cls.Category)).
		Str(logFieldUserID, t.msg.UserID).
		Str("awaiting", slot).
		Msg("asking follow-up")

	return domain.TurnResponse{
		Outcome:         domain.OutcomeFollowUpNeeded,
		Category:        cls.Category,
		Priority:        cls.Priority,
		ExtractedInfo:   next.Slots.Clone(),
		MissingInfo:     missing,
		NeedsMoreInfo:   true,
		ResponseMessage: strings.TrimSpace(res.Value.Question),
		Context:         next,
	}
}

func (a *Assistant) finalize(
	ctx context.Context, t *turn, cls domain.ClassificationResult, next *domain.ConversationContext, aiUrgency string,
) domain.TurnResponse {
	slots := next.Slots
	priority := cls.Priority

	if cls.Category == domain.CategoryBloodRequest {
		urgency := bloodUrgency(next.ExplicitUrgency, aiUrgency, slots.Get(domain.SlotUrgencyLevel))
		slots[domain.SlotUrgencyLevel] = urgency
		priority = domain.Priority(urgency)
	}

	resp := domain.TurnResponse{
		Category:      cls.Category,
		Priority:      domain.RequestPriority(priority),
		ExtractedInfo: slots.Clone(),
		MissingInfo:   []string{},
	}

	req, err := a.assembler.Assemble(AssembleInput{
		Category:    cls.Category,
		Priority:    priority,
		Slots:       slots,
		Text:        t.normalized,
		Language:    t.lang,
		InputMethod: t.msg.InputMethod,
		User:        a.requester(ctx, t.msg.UserID),
		TurnID:      t.msg.TurnID,
	})
	if err != nil {
		a.logger.Warn().Err(err).Str(logFieldCategory, string(cls.Category)).Msg("request failed validation")

		resp.Outcome = domain.OutcomeGeneralReply
		resp.ResponseMessage = validationApology.in(t.lang)
		resp.Context = next

		return resp
	}

	id, err := a.requests.CreateServiceRequest(ctx, req)
	if err != nil {
		err = fmt.Errorf("%w: %w", coreerrors.ErrPersistence, err)
		observability.PersistenceErrors.WithLabelValues("create_request").Inc()
		a.logger.Error().Err(err).Str(logFieldUserID, t.msg.UserID).Msg("failed to store service request")

		resp.Outcome = domain.OutcomeGeneralReply
		resp.ResponseMessage = persistenceFailure.in(t.lang)
		resp.Context = t.msg.Context.Clone()

		return resp
	}

	req.ID = id
	observability.RequestsCreated.WithLabelValues(string(req.Type)).Inc()

	a.logger.Info().
		Str(logFieldRequest, id).
		Str("reference", req.ReferenceCode).
		Str(logFieldCategory, string(cls.Category)).
		Str(logFieldUserID, t.msg.UserID).
		Msg("service request created")

	resp.Outcome = domain.OutcomeRequestFinalized
	resp.CreatedRequestID = id
	resp.ReferenceCode = req.ReferenceCode
	resp.Request = req
	resp.ResponseMessage = a.confirm(ctx, t, cls.Category, req)

	return resp
}

// bloodUrgency applies the blood-request precedence: urgency worded by the
// citizen, then augmentation suggestions in order, then high.
func bloodUrgency(explicit string, suggestions ...string) string {
	if explicit != "" {
		return explicit
	}

	for _, s := range suggestions {
		if p, ok := domain.ParsePriority(s); ok {
			return string(p)
		}
	}

	return defaultUrgency
}

func (a *Assistant) requester(ctx context.Context, userID string) *domain.User {
	if userID == "" || a.users == nil {
		return nil
	}

	user, err := a.users.GetUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, coreerrors.ErrUserNotFound) {
			a.logger.Warn().Err(err).Str(logFieldUserID, userID).Msg("failed to load requester profile")
		}

		return nil
	}

	return user
}

func (a *Assistant) confirm(ctx context.Context, t *turn, category domain.Category, req *domain.ServiceRequest) string {
	prompt := fmt.Sprintf(
		"Request type: %s\nTitle: %s\nReference code: %s\nPriority: %s",
		req.Type, req.Title, req.ReferenceCode, req.Priority,
	)

	res := resolve(ctx, a.resolver, stage[llm.ConfirmationResult]{
		name: stageConfirmation,
		call: func(ctx context.Context) (llm.ConfirmationResult, error) {
			return a.ai.GenerateConfirmation(ctx, prompt, t.lang)
		},
		accept: func(r llm.ConfirmationResult) bool {
			return strings.TrimSpace(r.Response) != ""
		},
		fallback: func() llm.ConfirmationResult {
			return llm.ConfirmationResult{Response: confirmationMessage(category, req.ReferenceCode, t.lang)}
		},
	})

	t.fallback = t.fallback || res.UsingFallback

	message := strings.TrimSpace(res.Value.Response)
	if !strings.Contains(message, req.ReferenceCode) {
		message += " (" + req.ReferenceCode + ")"
	}

	return message
}

func (a *Assistant) recordLog(t *turn, resp domain.TurnResponse) {
	if a.logs == nil {
		return
	}

	a.logs.Enqueue(domain.ConversationLog{
		UserID:        t.msg.UserID,
		TurnID:        t.msg.TurnID,
		Language:      t.lang,
		InputMethod:   t.msg.InputMethod,
		UserMessage:   t.text,
		Response:      resp.ResponseMessage,
		Category:      resp.Category,
		Outcome:       resp.Outcome,
		RequestID:     resp.CreatedRequestID,
		UsingFallback: resp.UsingFallback,
		CreatedAt:     a.now(),
	})
}
