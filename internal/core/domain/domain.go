package domain

import "strings"

// Language is a short code for one of the supported input languages.
type Language string

// Supported languages.
const (
	LanguageEnglish Language = "en"
	LanguageHindi   Language = "hi"
	LanguageTelugu  Language = "te"
)

// ParseLanguage returns the language for a code, reporting whether it is supported.
func ParseLanguage(code string) (Language, bool) {
	switch Language(strings.ToLower(strings.TrimSpace(code))) {
	case LanguageEnglish:
		return LanguageEnglish, true
	case LanguageHindi:
		return LanguageHindi, true
	case LanguageTelugu:
		return LanguageTelugu, true
	default:
		return "", false
	}
}

// InputMethod describes how the citizen produced the message.
type InputMethod string

// Input methods.
const (
	InputText  InputMethod = "text"
	InputVoice InputMethod = "voice"
)

// Category is the request category assigned by the classifier.
type Category string

// Request categories.
const (
	CategoryBloodRequest   Category = "blood_request"
	CategoryElderSupport   Category = "elder_support"
	CategoryComplaint      Category = "complaint"
	CategoryEmergency      Category = "emergency"
	CategoryGeneralInquiry Category = "general_inquiry"
)

// ParseCategory returns the category for a string, reporting whether it is known.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case CategoryBloodRequest, CategoryElderSupport, CategoryComplaint, CategoryEmergency, CategoryGeneralInquiry:
		return c, true
	default:
		return "", false
	}
}

// IsServiceRequest reports whether the category produces a persisted service request.
func (c Category) IsServiceRequest() bool {
	return c == CategoryBloodRequest || c == CategoryElderSupport || c == CategoryComplaint
}

// Priority is the urgency assigned to a message or request.
type Priority string

// Priorities.
const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ParsePriority returns the priority for a string, reporting whether it is known.
func ParsePriority(s string) (Priority, bool) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow:
		return p, true
	default:
		return "", false
	}
}

// RequestPriority maps a priority onto the values stored on requests:
// urgent, high and medium are kept, anything else becomes medium.
func RequestPriority(p Priority) Priority {
	switch p {
	case PriorityUrgent, PriorityHigh, PriorityMedium:
		return p
	default:
		return PriorityMedium
	}
}

// Message is an inbound citizen message. It is treated as immutable once received.
type Message struct {
	Text        string
	Language    Language
	InputMethod InputMethod
	Confidence  *float64
	UserID      string
	// TurnID identifies the client turn; replays of the same turn reuse the stored request.
	TurnID  string
	Context *ConversationContext
}

// ClassificationResult is produced fresh for every turn.
type ClassificationResult struct {
	Category      Category
	Priority      Priority
	UsingFallback bool
}
