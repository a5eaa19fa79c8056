package llm

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/lueurxax/seva-desk/internal/core/domain"
)

// extractJSON returns the JSON object embedded in a model reply, dropping
// markdown fences and surrounding prose. Text without an object is returned as is.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")

	if start != -1 && end != -1 && end > start {
		candidate := text[start : end+1]
		if json.Valid([]byte(candidate)) {
			return candidate
		}
	}

	return text
}

// slotValues converts a decoded JSON object into slot values. Numbers are
// formatted without a fraction when they are whole; nulls and blanks are dropped.
func slotValues(raw map[string]any) domain.SlotMap {
	out := make(domain.SlotMap, len(raw))

	for k, v := range raw {
		var s string

		switch val := v.(type) {
		case string:
			s = strings.TrimSpace(val)
		case float64:
			s = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			s = strconv.FormatBool(val)
		default:
			continue
		}

		if s != "" {
			out[k] = s
		}
	}

	return out
}
