package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lueurxax/seva-desk/internal/core/domain"
)

const (
	stageClassify     = "classify"
	stageExtract      = "extract"
	stageFollowUp     = "follow_up"
	stageConfirmation = "confirmation"
	stageTranscribe   = "transcribe"

	promptLangPlaceholder = "{{LANGUAGE}}"
)

const classifyPrompt = `You route messages sent by citizens to a municipal service desk. Return STRICT JSON ONLY.
Output a single JSON object with keys:
- category: one of blood_request, elder_support, complaint, emergency, general_inquiry
  - blood_request: the citizen needs blood or a blood donor
  - elder_support: help for an elderly person (medicines, appointments, groceries, household help, company)
  - complaint: a civic problem (roads, water, garbage, electricity, public safety)
  - emergency: life-threatening situation that is not a blood request
  - general_inquiry: anything else
- priority: one of urgent, high, medium, low
- response: for emergency and general_inquiry only, a short helpful answer in the citizen's language; otherwise an empty string.
If the conversation context names a category and the message only answers a question, keep that category.`

const extractPrompt = `You extract structured fields from a citizen message for a {{CATEGORY}} request. Return STRICT JSON ONLY.
Output a single JSON object with keys:
- extractedInfo: object with only these optional string fields: {{FIELDS}}.
  Use bloodType values like "O+" or "AB-". Leave out anything the message does not state. Never guess.
- missingRequired: array of required field names still unknown. Required: {{REQUIRED}}.
- needsMoreInfo: boolean, true when missingRequired is not empty.
- success: true when you could read the message.
- usingFallback: false.`

const followUpPrompt = `You help a citizen complete a {{CATEGORY}} request. Ask ONE short, polite question that collects the field "{{FIELD}}".
Write the question in {{LANGUAGE}}. Return STRICT JSON ONLY: {"question": "..."}`

const confirmationPrompt = `Write a short, warm confirmation for a citizen in {{LANGUAGE}}. Keep any reference code exactly as given.
Return STRICT JSON ONLY: {"response": "..."}`

var languageNames = map[domain.Language]string{
	domain.LanguageEnglish: "English",
	domain.LanguageHindi:   "Hindi",
	domain.LanguageTelugu:  "Telugu",
}

func languageName(lang domain.Language) string {
	if name, ok := languageNames[lang]; ok {
		return name
	}

	return languageNames[domain.LanguageEnglish]
}

func buildClassifyUserPrompt(text string, convCtx *domain.ConversationContext) string {
	var sb strings.Builder

	if convCtx != nil && convCtx.Category != "" {
		sb.WriteString(fmt.Sprintf("Conversation context: category=%s, awaiting=%s\n", convCtx.Category, convCtx.AwaitingSlot))
	}

	sb.WriteString("Message:\n")
	sb.WriteString(text)

	return sb.String()
}

func buildExtractSystemPrompt(category domain.Category) string {
	return strings.NewReplacer(
		"{{CATEGORY}}", string(category),
		"{{FIELDS}}", strings.Join(domain.CategorySlots(category), ", "),
		"{{REQUIRED}}", strings.Join(domain.RequiredSlots(category), ", "),
	).Replace(extractPrompt)
}

func buildExtractUserPrompt(text string, lang domain.Language, convCtx *domain.ConversationContext) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Message language: %s\n", languageName(lang)))

	if convCtx != nil && len(convCtx.Slots) > 0 {
		known, err := json.Marshal(convCtx.Slots)
		if err == nil {
			sb.WriteString("Already known: ")
			sb.Write(known)
			sb.WriteString("\n")
		}
	}

	sb.WriteString("Message:\n")
	sb.WriteString(text)

	return sb.String()
}

func buildFollowUpSystemPrompt(category domain.Category, field string, lang domain.Language) string {
	return strings.NewReplacer(
		"{{CATEGORY}}", string(category),
		"{{FIELD}}", field,
		promptLangPlaceholder, languageName(lang),
	).Replace(followUpPrompt)
}

func buildFollowUpUserPrompt(slots domain.SlotMap) string {
	if len(slots) == 0 {
		return "Nothing is known yet."
	}

	known, err := json.Marshal(slots)
	if err != nil {
		return "Nothing is known yet."
	}

	return "Already known: " + string(known)
}

func buildConfirmationSystemPrompt(lang domain.Language) string {
	return strings.ReplaceAll(confirmationPrompt, promptLangPlaceholder, languageName(lang))
}
