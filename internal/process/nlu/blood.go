package nlu

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"

	"github.com/lueurxax/seva-desk/internal/core/domain"
)

const (
	latinBoundaryBefore  = `(?:^|[^\p{L}\p{N}])`
	latinBoundaryAfter   = `(?:[^\p{L}\p{N}]|$)`
	nativeBoundaryBefore = `(?:^|[^\p{L}\p{M}])`

	rhSymbols = `\+ve|-ve|\+|-`
	rhWords   = `positive|negative|pos|neg|plus|minus`
)

// Blood-group patterns, tried in order.
var (
	// "O+", "AB-", "b+ve". Symbol forms accept any case.
	bloodTypeCompact = regexp.MustCompile(
		`(?i)` + latinBoundaryBefore + `(ab|a|b|o)(` + rhSymbols + `)` + latinBoundaryAfter,
	)

	// "AB +ve", "O +". A bare dash after a space is punctuation ("Block A - near park").
	bloodTypeSpaced = regexp.MustCompile(
		`(?i)` + latinBoundaryBefore + `(ab|a|b|o)\s+(\+ve|-ve|\+)` + latinBoundaryAfter,
	)

	// "O positive", "AB negative". A lowercase standalone "a" is an article, not a group.
	bloodTypeWords = regexp.MustCompile(
		latinBoundaryBefore + `(AB|Ab|ab|A|B|b|O|o)\s*((?i:` + rhWords + `))` + latinBoundaryAfter,
	)

	// "need a positive", "want B neg".
	bloodTypeRequested = regexp.MustCompile(
		`(?i)\b(?:need|needs|needed|want|wants|require|requires|required|looking\s+for)\s+` +
			`(ab|a|b|o)(` + rhSymbols + `|\s*(?:\+ve|-ve|\+|` + rhWords + `))` + latinBoundaryAfter,
	)

	// "a positive" as a bare answer or next to blood wording.
	bloodTypeArticle = regexp.MustCompile(
		`(?i)` + latinBoundaryBefore + `(a)\s*(` + rhWords + `)` + latinBoundaryAfter,
	)

	bloodContext = regexp.MustCompile(
		`(?i)\b(?:blood|group|type|donors?|units?|pints?|transfusion|plasma)\b`,
	)

	bloodTypeHindi = regexp.MustCompile(canonical(
		nativeBoundaryBefore + `(एबी|ए|बी|ओ|AB|A|B|O)(\s*(?:` +
			`पॉजिटिव|पॉज़िटिव|पोजिटिव|पाजिटिव|धनात्मक|प्लस|नेगेटिव|निगेटिव|नेगटिव|ऋणात्मक|माइनस|\+)|-)`,
	))

	bloodTypeTelugu = regexp.MustCompile(canonical(
		nativeBoundaryBefore + `(ఏబి|ఎబి|ఏ|ఎ|బీ|బి|ఓ|ఒ|AB|A|B|O)(\s*(?:` +
			`పాజిటివ్|పోజిటివ్|ప్లస్|నెగటివ్|నెగెటివ్|నెగిటివ్|మైనస్|\+)|-)`,
	))
)

var (
	hindiGroups = map[string]string{
		canonical("एबी"): "AB", canonical("ए"): "A", canonical("बी"): "B", canonical("ओ"): "O",
	}

	teluguGroups = map[string]string{
		canonical("ఏబి"): "AB", canonical("ఎబి"): "AB", canonical("ఏ"): "A", canonical("ఎ"): "A",
		canonical("బీ"): "B", canonical("బి"): "B", canonical("ఓ"): "O", canonical("ఒ"): "O",
	}

	nativeNegative = []string{
		canonical("नेगेटिव"), canonical("निगेटिव"), canonical("नेगटिव"), canonical("ऋणात्मक"), canonical("माइनस"),
		canonical("నెగటివ్"), canonical("నెగెటివ్"), canonical("నెగిటివ్"), canonical("మైనస్"),
	}
)

type bloodTypePattern struct {
	pattern *regexp.Regexp
	groups  map[string]string
	accept  func(text string, m []string) bool
}

var bloodTypePatterns = []bloodTypePattern{
	{pattern: bloodTypeCompact},
	{pattern: bloodTypeSpaced},
	{pattern: bloodTypeWords},
	{pattern: bloodTypeRequested, accept: articleGroup},
	{pattern: bloodTypeArticle, accept: articleGroup},
	{pattern: bloodTypeHindi, groups: hindiGroups},
	{pattern: bloodTypeTelugu, groups: teluguGroups},
}

// ExtractBloodType returns the blood group in the form "O+", "AB-", or an
// empty string when the text names no group.
func ExtractBloodType(text string) string {
	text = prepare(text)

	for _, p := range bloodTypePatterns {
		for _, m := range p.pattern.FindAllStringSubmatch(text, -1) {
			group, ok := normalizeGroup(m[1], p.groups)
			if !ok {
				continue
			}

			if p.accept != nil && !p.accept(text, m) {
				continue
			}

			return group + rhSign(strings.TrimSpace(m[2]))
		}
	}

	return ""
}

// articleGroup accepts a lowercase "a" as group A only when the message is
// nothing but the answer or it talks about blood.
func articleGroup(text string, m []string) bool {
	if m[1] != "a" {
		return true
	}

	rest := strings.Replace(text, m[0], " ", 1)

	return !strings.ContainsFunc(rest, unicode.IsLetter) || bloodContext.MatchString(text)
}

func normalizeGroup(raw string, groups map[string]string) (string, bool) {
	if g, ok := groups[raw]; ok {
		return g, true
	}

	g := strings.ToUpper(raw)
	switch g {
	case "A", "B", "AB", "O":
		return g, true
	default:
		return "", false
	}
}

func rhSign(raw string) string {
	lower := strings.ToLower(raw)

	switch {
	case strings.HasPrefix(lower, "-"), strings.HasPrefix(lower, "neg"), lower == "minus":
		return "-"
	}

	for _, n := range nativeNegative {
		if raw == n {
			return "-"
		}
	}

	return "+"
}

var (
	unitsPattern = regexp.MustCompile(
		`(?i)\b(\d{1,2})\s*(?:units?|pints?|bags?|bottles?)\b|` +
			canonical(`(\d{1,2})\s*(?:यूनिट|बोतल|పింట్|యూనిట్లు|యూనిట్|బాటిల్)`),
	)

	hospitalPattern = regexp.MustCompile(
		`\b(?i:at|in|from)\s+((?:[A-Z][\w.'&-]*\s+){1,5}` +
			`(?i:hospitals?|medical(?:\s+(?:college|centre|center))?|clinic|centre|center|nursing\s+home))\b`,
	)

	patientPattern = regexp.MustCompile(
		`\b(?i:patient(?:'s)?\s+(?:name\s+)?(?:is\s+)?(?:called\s+)?)([A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,2})`,
	)
)

var relationshipRules = []rule{
	newRule(anyOf(
		latin("grandmother", "grandfather", "grandma", "grandpa", "dadi", "nani", "ammamma", "thatha"),
		nativeWord("दादी", "दादा", "नानी", "नाना"),
		native("అమ్మమ్మ", "నానమ్మ", "తాతయ్య", "తాత"),
	), "Grandparent"),
	newRule(anyOf(
		latin("mother", "mom", "mum", "mummy", "amma", "maa", "mata", "ammi"),
		nativeWord("माँ", "मां", "माता", "मम्मी"),
		native("అమ్మ"),
	), "Mother"),
	newRule(anyOf(
		latin("father", "dad", "daddy", "papa", "pita", "nanna", "abba"),
		nativeWord("पिता", "पापा", "पिताजी"),
		native("నాన్న"),
	), "Father"),
	newRule(anyOf(
		latin("brother", "bhai", "bhaiya", "anna", "tammudu"),
		nativeWord("भाई", "भैया"),
		native("అన్నయ్య", "తమ్ముడు", "అన్న"),
	), "Brother"),
	newRule(anyOf(
		latin("sister", "behen", "bahan", "didi", "akka", "chelli"),
		nativeWord("बहन", "दीदी"),
		native("అక్క", "చెల్లి"),
	), "Sister"),
	newRule(anyOf(
		latin("wife", "husband", "spouse", "pati", "patni", "bharya", "bhartha"),
		nativeWord("पत्नी", "पति"),
		native("భార్య", "భర్త"),
	), "Spouse"),
	newRule(anyOf(
		latin("son", "daughter", "child", "baby", "beta", "beti", "koduku", "kuthuru"),
		nativeWord("बेटा", "बेटी", "बच्चा", "बच्ची"),
		native("కొడుకు", "కూతురు", "బిడ్డ"),
	), "Child"),
	newRule(anyOf(
		latin("friend", "colleague", "neighbour", "neighbor", "dost", "snehitudu"),
		nativeWord("दोस्त", "मित्र", "पड़ोसी"),
		native("స్నేహితుడు", "స్నేహితురాలు"),
	), "Friend"),
	newRule(anyOf(
		latin("myself", "for me", "for myself", "mere liye", "naa kosam"),
		nativeWord("मेरे लिए", "खुद"),
		native("నా కోసం"),
	), "Self"),
}

var (
	urgentRule = newRule(urgentExpr, domain.UrgencyUrgent)

	requiredDateRules = []rule{
		newRule(anyOf(
			latin("tomorrow", "kal", "repu"),
			nativeWord("कल"),
			native("రేపు"),
		), domain.RequiredTomorrow),
		newRule(anyOf(
			latin("today", "tonight", "aaj", "ivala", "eeroju", "ee roju"),
			nativeWord("आज"),
			native("ఈరోజు", "ఈ రోజు", "ఇవాళ"),
		), domain.RequiredToday),
	}

	negatedUrgency = regexp.MustCompile(negatedUrgencyExpr)

	numericDatePattern = regexp.MustCompile(`\b(\d{1,2})[/.-](\d{1,2})[/.-](\d{4})\b`)
	isoDatePattern     = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
	textDatePattern    = regexp.MustCompile(
		`(?i)\b(?:\d{1,2}(?:st|nd|rd|th)?\s+(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*,?\s+\d{4}` +
			`|(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{4})\b`,
	)
	ordinalSuffix = regexp.MustCompile(`(?i)(\d)(?:st|nd|rd|th)\b`)
)

func extractBloodInfo(text string) domain.SlotMap {
	slots := domain.SlotMap{}

	if bt := ExtractBloodType(text); bt != "" {
		slots[domain.SlotBloodType] = bt
	}

	if m := unitsPattern.FindStringSubmatch(text); m != nil {
		n := m[1]
		if n == "" {
			n = m[2]
		}

		if units, err := strconv.Atoi(n); err == nil && units > 0 {
			slots[domain.SlotUnitsNeeded] = strconv.Itoa(units)
		}
	}

	if m := hospitalPattern.FindStringSubmatch(text); m != nil {
		slots[domain.SlotHospitalName] = collapseSpaces(m[1])
	}

	if m := patientPattern.FindStringSubmatch(text); m != nil {
		slots[domain.SlotPatientName] = m[1]
	}

	if rel, ok := firstMatch(relationshipRules, text); ok {
		slots[domain.SlotRelationship] = rel
	}

	if loc := extractLocation(text); loc != "" {
		slots[domain.SlotLocation] = loc
	}

	for k, v := range extractUrgency(text) {
		slots[k] = v
	}

	return slots
}

// ExplicitUrgency reports whether the message itself asks for urgent help.
// Negated wording such as "not urgent" does not count.
func ExplicitUrgency(text string) bool {
	text = prepare(text)

	return !negatedUrgency.MatchString(text) && urgentRule.pattern.MatchString(text)
}

func extractUrgency(text string) domain.SlotMap {
	slots := domain.SlotMap{}

	if ExplicitUrgency(text) {
		slots[domain.SlotUrgencyLevel] = domain.UrgencyUrgent
		slots[domain.SlotRequiredDate] = domain.RequiredNow
	}

	if when, ok := firstMatch(requiredDateRules, text); ok {
		slots[domain.SlotRequiredDate] = when
	}

	if d, ok := explicitDate(text); ok {
		slots[domain.SlotRequiredDate] = d.Format(time.DateOnly)
	}

	return slots
}

// explicitDate finds a calendar date written with a year. Numeric dates are
// read day first.
func explicitDate(text string) (time.Time, bool) {
	var candidate string

	switch {
	case isoDatePattern.MatchString(text):
		candidate = isoDatePattern.FindString(text)
	case numericDatePattern.MatchString(text):
		m := numericDatePattern.FindStringSubmatch(text)
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		candidate = fmt.Sprintf("%s-%02d-%02d", m[3], month, day)
	case textDatePattern.MatchString(text):
		candidate = ordinalSuffix.ReplaceAllString(textDatePattern.FindString(text), "$1")
	default:
		return time.Time{}, false
	}

	t, err := dateparse.ParseAny(candidate)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}
