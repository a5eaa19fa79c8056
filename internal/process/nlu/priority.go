package nlu

import (
	"github.com/lueurxax/seva-desk/internal/core/domain"
)

var (
	negatedUrgencyExpr = anyOf(
		latin(
			"not urgent", "no rush", "no hurry", "not an emergency", "not emergency", "no emergency",
			"jaldi nahi", "koi jaldi nahi",
		),
		native("जल्दी नहीं", "तुरंत नहीं", "తొందర లేదు", "తొందరేమీ లేదు"),
	)

	urgentExpr = anyOf(
		latin(
			"urgent", "urgently", "emergency", "asap", "as soon as possible", "immediately",
			"right now", "critical", "life threatening", "turant", "ventane", "atyavasaram",
		),
		native(
			"तुरंत", "फौरन", "आपातकाल", "इमरजेंसी", "अत्यावश्यक",
			"వెంటనే", "అత్యవసర", "తక్షణం",
		),
	)

	priorityRules = []rule{
		newRule(negatedUrgencyExpr, string(domain.PriorityLow)),
		newRule(urgentExpr, string(domain.PriorityUrgent)),
		newRule(anyOf(
			latin("important", "soon", "quickly", "quick", "priority", "jaldi", "jaldhi", "twaraga"),
			native("जल्दी", "ज़रूरी", "जरूरी", "త్వరగా", "ముఖ్యమైన"),
		), string(domain.PriorityHigh)),
		newRule(anyOf(
			latin("whenever", "sometime", "some time", "when possible", "when convenient", "not important", "low priority", "later"),
			native("कभी भी", "ఎప్పుడైనా"),
		), string(domain.PriorityLow)),
	}
)

// DeterminePriority scans the message for urgency and softening words. It is
// independent of the category; negated urgency ("not urgent") reads as low.
func DeterminePriority(text string) domain.Priority {
	if v, ok := firstMatch(priorityRules, prepare(text)); ok {
		return domain.Priority(v)
	}

	return domain.PriorityMedium
}
