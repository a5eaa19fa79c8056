package telegrambot

import (
	"strings"
	"unicode/utf8"
)

// maxMessageRunes is Telegram's limit for one text message.
const maxMessageRunes = 4096

// splitMessage cuts text into parts of at most limit runes. It prefers line
// breaks, then spaces, and only cuts inside a word when a word is too long.
func splitMessage(text string, limit int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var parts []string

	for text != "" {
		runes := []rune(text)
		if len(runes) <= limit {
			parts = append(parts, text)
			break
		}

		// One rune past the limit lets a separator right at the edge count.
		window := string(runes[:limit+1])

		cut := strings.LastIndex(window, "\n")
		if cut <= 0 {
			cut = strings.LastIndex(window, " ")
		}

		if cut <= 0 {
			cut = len(string(runes[:limit]))
		}

		if part := strings.TrimSpace(text[:cut]); part != "" {
			parts = append(parts, part)
		}

		text = strings.TrimSpace(text[cut:])
	}

	return parts
}
