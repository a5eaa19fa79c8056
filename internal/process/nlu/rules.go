package nlu

import (
	"regexp"
	"strings"
)

// rule pairs a pattern with the value it yields. Tables of rules are
// evaluated in order and the first match wins.
type rule struct {
	pattern *regexp.Regexp
	value   string
}

func newRule(expr, value string) rule {
	return rule{pattern: regexp.MustCompile(expr), value: value}
}

// firstMatch returns the value of the first rule matching text.
func firstMatch(rules []rule, text string) (string, bool) {
	for _, r := range rules {
		if r.pattern.MatchString(text) {
			return r.value, true
		}
	}

	return "", false
}

// latin builds a case-insensitive, word-bounded alternation of Latin phrases.
func latin(words ...string) string {
	return `(?i)\b(?:` + alternation(words) + `)\b`
}

// native builds an alternation of Devanagari or Telugu words. Go's \b only
// knows ASCII word characters, so native words are matched as substrings.
func native(words ...string) string {
	canon := make([]string, len(words))
	for i, w := range words {
		canon[i] = canonical(w)
	}

	return `(?:` + alternation(canon) + `)`
}

// nativeWord is like native but requires the word to stand alone. Hindi
// writes postpositions as separate words, so whole-word matching is safe there.
func nativeWord(words ...string) string {
	return `(?:^|[^\p{L}\p{M}])` + native(words...) + `(?:[^\p{L}\p{M}]|$)`
}

// anyOf joins sub-expressions built by latin and native.
func anyOf(exprs ...string) string {
	return strings.Join(exprs, "|")
}

func alternation(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = strings.ReplaceAll(regexp.QuoteMeta(w), " ", `\s+`)
	}

	return strings.Join(quoted, "|")
}
