package db

import (
	"context"
	"fmt"
	"time"

	"github.com/lueurxax/seva-desk/internal/core/domain"
	coreerrors "github.com/lueurxax/seva-desk/internal/core/errors"
)

// SaveConversationLog appends one turn to the conversation history.
func (db *DB) SaveConversationLog(ctx context.Context, entry *domain.ConversationLog) error {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := db.Pool.Exec(ctx, `
		INSERT INTO conversation_logs (
			user_id, turn_id, language, input_method, user_message, response,
			category, outcome, request_id, using_fallback, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, entry.UserID, toText(entry.TurnID), string(entry.Language), string(entry.InputMethod),
		SanitizeUTF8(entry.UserMessage), SanitizeUTF8(entry.Response),
		string(entry.Category), string(entry.Outcome), toUUID(entry.RequestID),
		entry.UsingFallback, toTimestamptz(createdAt))
	if err != nil {
		return fmt.Errorf("%w: save conversation log: %w", coreerrors.ErrPersistence, err)
	}

	return nil
}
