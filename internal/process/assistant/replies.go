package assistant

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lueurxax/seva-desk/internal/core/domain"
)

//go:embed knowledge.yaml
var knowledgeYAML []byte

const (
	intentGreeting   = "greeting"
	intentThanks     = "thanks"
	intentCapability = "capability"

	replyEmergency    = "emergency"
	replyUnknownTopic = "unknown_topic"
	replyDefault      = "default"
)

type knowledgeBase struct {
	Intents map[string][]string                   `yaml:"intents"`
	Replies map[string]map[domain.Language]string `yaml:"replies"`
	Topics  []knowledgeTopic                      `yaml:"topics"`
}

type knowledgeTopic struct {
	Keys   []string                   `yaml:"keys"`
	Answer map[domain.Language]string `yaml:"answer"`
}

var whatIsPattern = regexp.MustCompile(
	`(?i)\b(?:what\s+is|what's|what\s+are|tell\s+me\s+about|explain)\s+(?:an?\s+|the\s+)?([^?.!]+)`,
)

type intentRule struct {
	name    string
	pattern *regexp.Regexp
}

// Responder answers general messages without augmentation.
type Responder struct {
	kb      knowledgeBase
	intents []intentRule
}

// NewResponder loads the embedded knowledge table.
func NewResponder() (*Responder, error) {
	var kb knowledgeBase
	if err := yaml.Unmarshal(knowledgeYAML, &kb); err != nil {
		return nil, fmt.Errorf("parse knowledge table: %w", err)
	}

	r := &Responder{kb: kb}

	for _, name := range []string{intentThanks, intentCapability, intentGreeting} {
		words := kb.Intents[name]
		if len(words) == 0 {
			continue
		}

		quoted := make([]string, 0, len(words))
		for _, w := range words {
			quoted = append(quoted, strings.ReplaceAll(regexp.QuoteMeta(w), " ", `\s+`))
		}

		pattern, err := regexp.Compile(`(?i)(?:^|[^\p{L}\p{M}])(?:` + strings.Join(quoted, "|") + `)(?:[^\p{L}\p{M}]|$)`)
		if err != nil {
			return nil, fmt.Errorf("compile %s intent: %w", name, err)
		}

		r.intents = append(r.intents, intentRule{name: name, pattern: pattern})
	}

	return r, nil
}

// Reply picks a local answer for a non-service message. text is checked as
// given and in its English-normalized form.
func (r *Responder) Reply(category domain.Category, text, normalized string, lang domain.Language) string {
	if category == domain.CategoryEmergency {
		return r.reply(replyEmergency, lang)
	}

	if answer, ok := r.factual(normalized, lang); ok {
		return answer
	}

	for _, intent := range r.intents {
		if intent.pattern.MatchString(text) || intent.pattern.MatchString(normalized) {
			return r.reply(intent.name, lang)
		}
	}

	return r.reply(replyDefault, lang)
}

// factual answers "what is X" questions from the topic table.
func (r *Responder) factual(text string, lang domain.Language) (string, bool) {
	m := whatIsPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}

	subject := strings.ToLower(strings.TrimSpace(m[1]))

	for _, topic := range r.kb.Topics {
		for _, key := range topic.Keys {
			if strings.Contains(subject, key) {
				return pick(topic.Answer, lang), true
			}
		}
	}

	return r.reply(replyUnknownTopic, lang), true
}

func (r *Responder) reply(name string, lang domain.Language) string {
	return pick(r.kb.Replies[name], lang)
}

func pick(texts map[domain.Language]string, lang domain.Language) string {
	if s, ok := texts[lang]; ok && s != "" {
		return s
	}

	return texts[domain.LanguageEnglish]
}
