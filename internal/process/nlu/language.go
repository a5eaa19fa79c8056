package nlu

import (
	"strings"

	"github.com/lueurxax/seva-desk/internal/core/domain"
)

// Native keyword lists. A script-range hit already decides the language, so
// these only matter for text whose script test was inconclusive.
var (
	hindiNativeKeywords = []string{
		"खून", "रक्त", "मदद", "शिकायत", "बुजुर्ग", "दवा", "पानी", "बिजली", "तुरंत", "जरूरत",
	}

	teluguNativeKeywords = []string{
		"రక్తం", "రక్త", "సహాయం", "ఫిర్యాదు", "వృద్ధ", "మందులు", "నీళ్లు", "కరెంట్", "వెంటనే", "కావాలి",
	}
)

// Romanized keyword sets, matched as whole words.
var (
	hindiRomanKeywords = wordSet(
		"khoon", "khun", "rakt", "chahiye", "chahie", "madad", "jaldi", "turant", "mujhe",
		"shikayat", "bijli", "paani", "pani", "dawai", "dawa", "bujurg", "kripya", "hai",
		"nahi", "kaise", "kya",
	)

	teluguRomanKeywords = wordSet(
		"rakthamu", "raktham", "rakta", "kavali", "kaavali", "sahayam", "nenu", "naaku",
		"firyadu", "neellu", "mandulu", "ventane", "ledu", "undi", "cheyandi", "dayachesi",
	)
)

func wordSet(words ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		out[w] = struct{}{}
	}

	return out
}

// DetectLanguage classifies text into en, hi or te. It is total: anything
// not recognised as Hindi or Telugu is English.
func DetectLanguage(text string) domain.Language {
	text = canonical(text)

	switch {
	case hasDevanagari(text):
		return domain.LanguageHindi
	case hasTelugu(text):
		return domain.LanguageTelugu
	case containsAnyKeyword(text, hindiNativeKeywords):
		return domain.LanguageHindi
	case containsAnyKeyword(text, teluguNativeKeywords):
		return domain.LanguageTelugu
	}

	words := latinWords(text)

	if containsAnyWord(words, hindiRomanKeywords) {
		return domain.LanguageHindi
	}

	if containsAnyWord(words, teluguRomanKeywords) {
		return domain.LanguageTelugu
	}

	return domain.LanguageEnglish
}

func containsAnyKeyword(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}

	return false
}

func containsAnyWord(words []string, set map[string]struct{}) bool {
	for _, w := range words {
		if _, ok := set[w]; ok {
			return true
		}
	}

	return false
}
