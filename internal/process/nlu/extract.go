package nlu

import (
	"regexp"
	"strings"

	"github.com/lueurxax/seva-desk/internal/core/domain"
)

var locationPattern = regexp.MustCompile(
	`\b(?i:in|at|near|on|opposite|behind)\s+([A-Z][\w.'&-]*(?:\s+[A-Z][\w.'&-]*){0,4})`,
)

// Capitalized words that follow a preposition without naming a place.
var locationStopWords = wordSet(
	"i", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
	"january", "february", "march", "april", "may", "june", "july", "august", "september",
	"october", "november", "december", "today", "tomorrow", "morning", "evening", "night",
	"the", "my", "please",
)

// ExtractRequestInfo extracts the category's slots from one message. Only
// slots whose value differs from prior are returned; callers merge the result
// into the accumulated slots. A complaint naming no known category is filed
// as Other.
func ExtractRequestInfo(text string, category domain.Category, prior domain.SlotMap) domain.SlotMap {
	text = prepare(text)

	var found domain.SlotMap

	switch category {
	case domain.CategoryBloodRequest:
		found = extractBloodInfo(text)
	case domain.CategoryElderSupport:
		found = extractElderInfo(text)
	case domain.CategoryComplaint:
		found = extractComplaintInfo(text)
	default:
		return domain.SlotMap{}
	}

	if category == domain.CategoryComplaint && !found.Has(domain.SlotComplaintCategory) &&
		!prior.Has(domain.SlotComplaintCategory) {
		found[domain.SlotComplaintCategory] = domain.ComplaintOther
	}

	out := make(domain.SlotMap, len(found))

	for k, v := range found {
		if prior.Get(k) == v {
			continue
		}

		out[k] = v
	}

	return out
}

// ExtractLocation returns a rough place name taken from the phrase after
// in/at/near/on, or an empty string.
func ExtractLocation(text string) string {
	return extractLocation(prepare(text))
}

func extractLocation(text string) string {
	return firstLocation(locationPattern, text)
}

func firstLocation(p *regexp.Regexp, text string) string {
	for _, m := range p.FindAllStringSubmatch(text, -1) {
		loc := trimStopWords(m[1])
		if loc != "" {
			return loc
		}
	}

	return ""
}

func trimStopWords(phrase string) string {
	words := strings.Fields(phrase)

	for len(words) > 0 && isStopWord(words[0]) {
		words = words[1:]
	}

	return strings.TrimRight(strings.Join(words, " "), ".,'&-")
}

func isStopWord(word string) bool {
	_, ok := locationStopWords[strings.ToLower(strings.Trim(word, ".,'"))]

	return ok
}
