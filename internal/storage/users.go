package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/lueurxax/seva-desk/internal/core/domain"
	coreerrors "github.com/lueurxax/seva-desk/internal/core/errors"
)

// GetUser returns the requester profile with the given id.
func (db *DB) GetUser(ctx context.Context, id string) (*domain.User, error) {
	uid := toUUID(id)
	if !uid.Valid {
		return nil, fmt.Errorf("%w: %s", coreerrors.ErrUserNotFound, id)
	}

	var (
		u                  domain.User
		rowID              pgtype.UUID
		phone, email, addr pgtype.Text
		lat, lng           pgtype.Float8
		language           string
	)

	err := db.Pool.QueryRow(ctx, `
		SELECT id, name, phone, email, address, lat, lng, language
		FROM users
		WHERE id = $1
	`, uid).Scan(&rowID, &u.Name, &phone, &email, &addr, &lat, &lng, &language)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", coreerrors.ErrUserNotFound, id)
	}

	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	u.ID = fromUUID(rowID)
	u.Phone = fromText(phone)
	u.Email = fromText(email)
	u.Address = fromText(addr)
	u.Lat = lat.Float64
	u.Lng = lng.Float64

	if lang, ok := domain.ParseLanguage(language); ok {
		u.Language = lang
	}

	return &u, nil
}
