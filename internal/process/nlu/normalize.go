package nlu

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type substitution struct {
	from string
	to   string
}

// Substitution tables are ordered: phrases come before the words they contain.
// Every replacement starts and ends with a Latin letter, which keeps
// TranslateToEnglish idempotent.
var hindiSubstitutions = canonicalSubstitutions([]substitution{
	{"एबी पॉजिटिव", "AB positive"},
	{"एबी नेगेटिव", "AB negative"},
	{"ओ पॉजिटिव", "O positive"},
	{"ओ नेगेटिव", "O negative"},
	{"बी पॉजिटिव", "B positive"},
	{"बी नेगेटिव", "B negative"},
	{"ए पॉजिटिव", "A positive"},
	{"ए नेगेटिव", "A negative"},
	{"पॉजिटिव", "positive"},
	{"पॉज़िटिव", "positive"},
	{"नेगेटिव", "negative"},
	{"निगेटिव", "negative"},
	{"रक्तदान", "blood donation"},
	{"खून", "blood"},
	{"रक्त", "blood"},
	{"ब्लड", "blood"},
	{"प्लेटलेट्स", "platelets"},
	{"तुरंत", "urgent"},
	{"फौरन", "urgent"},
	{"अत्यावश्यक", "urgent"},
	{"जल्दी", "quickly"},
	{"आपातकाल", "emergency"},
	{"इमरजेंसी", "emergency"},
	{"एम्बुलेंस", "ambulance"},
	{"अस्पताल", "hospital"},
	{"हॉस्पिटल", "hospital"},
	{"दवाइयाँ", "medicines"},
	{"दवाइयां", "medicines"},
	{"दवाई", "medicine"},
	{"दवा", "medicine"},
	{"डॉक्टर", "doctor"},
	{"किराना", "groceries"},
	{"सब्जी", "vegetables"},
	{"शिकायत", "complaint"},
	{"स्ट्रीट लाइट", "street light"},
	{"लाइट", "light"},
	{"बिजली", "electricity"},
	{"सड़क", "road"},
	{"गड्ढा", "pothole"},
	{"गड्ढे", "potholes"},
	{"पानी", "water"},
	{"कचरा", "garbage"},
	{"नाली", "drain"},
	{"बुजुर्ग", "elderly"},
	{"वृद्ध", "elderly"},
	{"दादी", "grandmother"},
	{"दादा", "grandfather"},
	{"माँ", "mother"},
	{"मां", "mother"},
	{"पिता", "father"},
	{"पापा", "father"},
	{"भाई", "brother"},
	{"बहन", "sister"},
	{"दोस्त", "friend"},
	{"यूनिट", "units"},
	{"आज", "today"},
	{"कल", "tomorrow"},
	{"ज़रूरत", "need"},
	{"जरूरत", "need"},
	{"चाहिए", "need"},
	{"मुझे", "I"},
	{"मदद", "help"},
})

var teluguSubstitutions = canonicalSubstitutions([]substitution{
	{"ఏబి పాజిటివ్", "AB positive"},
	{"ఏబి నెగటివ్", "AB negative"},
	{"ఓ పాజిటివ్", "O positive"},
	{"ఓ నెగటివ్", "O negative"},
	{"బి పాజిటివ్", "B positive"},
	{"బి నెగటివ్", "B negative"},
	{"ఏ పాజిటివ్", "A positive"},
	{"ఏ నెగటివ్", "A negative"},
	{"పాజిటివ్", "positive"},
	{"నెగటివ్", "negative"},
	{"నెగెటివ్", "negative"},
	{"రక్తదానం", "blood donation"},
	{"రక్తం", "blood"},
	{"రక్త", "blood"},
	{"బ్లడ్", "blood"},
	{"వెంటనే", "urgent"},
	{"తక్షణం", "urgent"},
	{"అత్యవసరం", "emergency"},
	{"అత్యవసర", "emergency"},
	{"అంబులెన్స్", "ambulance"},
	{"ఆసుపత్రి", "hospital"},
	{"హాస్పిటల్", "hospital"},
	{"మందులు", "medicines"},
	{"డాక్టర్", "doctor"},
	{"కిరాణా", "groceries"},
	{"కూరగాయలు", "vegetables"},
	{"ఫిర్యాదు", "complaint"},
	{"వీధి దీపాలు", "street lights"},
	{"లైట్", "light"},
	{"కరెంట్", "electricity"},
	{"విద్యుత్", "electricity"},
	{"రోడ్డు", "road"},
	{"గుంత", "pothole"},
	{"గుంతలు", "potholes"},
	{"నీళ్లు", "water"},
	{"నీరు", "water"},
	{"చెత్త", "garbage"},
	{"వృద్ధులు", "elderly"},
	{"వృద్ధ", "elderly"},
	{"అమ్మమ్మ", "grandmother"},
	{"తాతయ్య", "grandfather"},
	{"తాత", "grandfather"},
	{"అమ్మ", "mother"},
	{"నాన్న", "father"},
	{"అన్నయ్య", "brother"},
	{"తమ్ముడు", "brother"},
	{"అక్క", "sister"},
	{"చెల్లి", "sister"},
	{"స్నేహితుడు", "friend"},
	{"యూనిట్లు", "units"},
	{"యూనిట్", "units"},
	{"ఈరోజు", "today"},
	{"రేపు", "tomorrow"},
	{"కావాలి", "need"},
	{"నాకు", "me"},
	{"సహాయం", "help"},
})

func canonicalSubstitutions(subs []substitution) []substitution {
	for i := range subs {
		subs[i].from = canonical(subs[i].from)
	}

	return subs
}

// TranslateToEnglish rewrites Hindi and Telugu domain terms into English so
// stored descriptions stay readable. Text without Devanagari or Telugu code
// points is returned unchanged. It is not a translator: unmatched words stay
// as they are.
func TranslateToEnglish(text string) string {
	if !hasIndicScript(text) {
		return text
	}

	out := collapseSpaces(foldDigits(canonical(text)))

	if hasDevanagari(out) {
		out = applySubstitutions(out, hindiSubstitutions)
	}

	if hasTelugu(out) {
		out = applySubstitutions(out, teluguSubstitutions)
	}

	return collapseSpaces(out)
}

func applySubstitutions(text string, subs []substitution) string {
	for _, s := range subs {
		if strings.Contains(text, s.from) {
			text = replaceWord(text, s.from, s.to)
		}
	}

	return text
}

// replaceWord replaces occurrences of from that stand as whole words.
func replaceWord(text, from, to string) string {
	var b strings.Builder

	b.Grow(len(text))

	i := 0

	for {
		j := strings.Index(text[i:], from)
		if j < 0 {
			b.WriteString(text[i:])
			break
		}

		start := i + j
		end := start + len(from)

		if wordBoundaryBefore(text, start) && wordBoundaryAfter(text, end) {
			b.WriteString(text[i:start])
			b.WriteString(to)

			i = end

			continue
		}

		_, size := utf8.DecodeRuneInString(text[start:])
		b.WriteString(text[i : start+size])

		i = start + size
	}

	return b.String()
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsMark(r)
}

func wordBoundaryBefore(text string, idx int) bool {
	if idx == 0 {
		return true
	}

	r, _ := utf8.DecodeLastRuneInString(text[:idx])

	return !isWordRune(r)
}

func wordBoundaryAfter(text string, idx int) bool {
	if idx >= len(text) {
		return true
	}

	r, _ := utf8.DecodeRuneInString(text[idx:])

	return !isWordRune(r)
}
