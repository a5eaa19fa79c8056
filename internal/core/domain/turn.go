package domain

import "time"

// OutcomeKind identifies which of the three mutually exclusive turn outcomes occurred.
type OutcomeKind string

// Turn outcomes.
const (
	OutcomeFollowUpNeeded   OutcomeKind = "follow_up_needed"
	OutcomeRequestFinalized OutcomeKind = "request_finalized"
	OutcomeGeneralReply     OutcomeKind = "general_reply"
)

// TurnResponse is the per-turn response contract. CreatedRequestID is set only
// for finalized turns and NeedsMoreInfo only for follow-ups.
type TurnResponse struct {
	Outcome          OutcomeKind          `json:"outcome"`
	Category         Category             `json:"category"`
	Priority         Priority             `json:"priority"`
	Language         Language             `json:"language"`
	ExtractedInfo    SlotMap              `json:"extractedInfo"`
	MissingInfo      []string             `json:"missingInfo"`
	NeedsMoreInfo    bool                 `json:"needsMoreInfo"`
	ResponseMessage  string               `json:"responseMessage"`
	CreatedRequestID string               `json:"createdRequestId,omitempty"`
	ReferenceCode    string               `json:"referenceCode,omitempty"`
	UsingFallback    bool                 `json:"usingFallback"`
	Context          *ConversationContext `json:"conversationContext,omitempty"`
	Request          *ServiceRequest      `json:"-"`
}

// ConversationLog is one persisted turn of a conversation.
type ConversationLog struct {
	UserID        string
	TurnID        string
	Language      Language
	InputMethod   InputMethod
	UserMessage   string
	Response      string
	Category      Category
	Outcome       OutcomeKind
	RequestID     string
	UsingFallback bool
	CreatedAt     time.Time
}
