package nlu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lueurxax/seva-desk/internal/core/domain"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name string
		text string
		want domain.Language
	}{
		{name: "english", text: "I need O positive blood urgently", want: domain.LanguageEnglish},
		{name: "empty defaults to english", text: "", want: domain.LanguageEnglish},
		{name: "devanagari script", text: "मुझे ओ पॉजिटिव खून की तुरंत जरूरत है", want: domain.LanguageHindi},
		{name: "telugu script", text: "నాకు ఓ పాజిటివ్ రక్తం కావాలి", want: domain.LanguageTelugu},
		{name: "devanagari wins over telugu", text: "खून రక్తం", want: domain.LanguageHindi},
		{name: "romanized hindi", text: "mujhe khoon chahiye", want: domain.LanguageHindi},
		{name: "romanized telugu", text: "naaku rakthamu kavali", want: domain.LanguageTelugu},
		{name: "romanized keyword must be a whole word", text: "the khoonish plan", want: domain.LanguageEnglish},
		{name: "digits and punctuation", text: "123 !!", want: domain.LanguageEnglish},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectLanguage(tt.text))
		})
	}
}

func TestTranslateToEnglish(t *testing.T) {
	t.Run("english text is returned unchanged", func(t *testing.T) {
		in := "  street lights   not working "
		assert.Equal(t, in, TranslateToEnglish(in))
	})

	t.Run("hindi blood request", func(t *testing.T) {
		got := TranslateToEnglish("मुझे ओ पॉजिटिव खून की तुरंत जरूरत है")

		assert.Contains(t, got, "blood")
		assert.Contains(t, got, "urgent")
		assert.Contains(t, got, "O positive")
	})

	t.Run("telugu complaint", func(t *testing.T) {
		got := TranslateToEnglish("మా వీధి దీపాలు పని చేయడం లేదు, ఫిర్యాదు")

		assert.Contains(t, got, "street lights")
		assert.Contains(t, got, "complaint")
	})

	t.Run("phrases split by extra whitespace", func(t *testing.T) {
		assert.Equal(t, "street lights", TranslateToEnglish("వీధి  దీపాలు"))
		assert.Equal(t, "street lights", TranslateToEnglish("వీధి\nదీపాలు"))
	})

	t.Run("native digits are folded", func(t *testing.T) {
		assert.Contains(t, TranslateToEnglish("२ यूनिट खून"), "2 units blood")
	})

	t.Run("substitution respects word boundaries", func(t *testing.T) {
		// आजकल is a word of its own and must not become "todaytomorrow".
		got := TranslateToEnglish("आजकल")
		assert.Equal(t, canonical("आजकल"), got)
	})
}

func TestTranslateToEnglishIsIdempotent(t *testing.T) {
	inputs := []string{
		"मुझे ओ पॉजिटिव खून की तुरंत जरूरत है",
		"मेरी माँ को दवाई चाहिए, कल सुबह",
		"సడక్ గుంత చెత్త నీళ్లు రేపు",
		"నాకు ఏబి నెగటివ్ రక్తం వెంటనే కావాలి",
		"खूनपानी mixed with English blood",
		"सड़क पर गड्ढा है near MG Road",
		"plain english",
		"",
		"   ",
		"३ यूनिट",
		"వీధి  దీపాలు పనిచేయడం లేదు",
		"వీధి\nదీపాలు",
		"వీధి\t దీపాలు  ",
		"  ओ   पॉजिटिव\nखून ",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			once := TranslateToEnglish(in)
			assert.Equal(t, once, TranslateToEnglish(once))
		})
	}
}

func TestSubstitutionValuesAreLatin(t *testing.T) {
	for _, table := range [][]substitution{hindiSubstitutions, teluguSubstitutions} {
		for _, s := range table {
			assert.NotEmpty(t, s.to, s.from)
			assert.False(t, hasIndicScript(s.to), s.from)
			assert.Equal(t, strings.TrimSpace(s.to), s.to, s.from)
		}
	}
}
