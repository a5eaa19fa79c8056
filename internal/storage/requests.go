package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/lueurxax/seva-desk/internal/core/domain"
	coreerrors "github.com/lueurxax/seva-desk/internal/core/errors"
)

// CreateServiceRequest stores a finalized request. A replayed turn of the
// same requester returns the id stored the first time.
func (db *DB) CreateServiceRequest(ctx context.Context, req *domain.ServiceRequest) (string, error) {
	details, err := encodeDetails(req)
	if err != nil {
		return "", err
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}

	createdAt := req.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	var stored pgtype.UUID

	err = db.Pool.QueryRow(ctx, `
		INSERT INTO service_requests (
			id, reference_code, type, requester_id, requester_name, phone, title, description,
			address, lat, lng, priority, status, language, input_method, turn_id, details, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (requester_id, turn_id) DO NOTHING
		RETURNING id
	`, toUUID(id), req.ReferenceCode, string(req.Type), req.RequesterID, SanitizeUTF8(req.RequesterName),
		toText(req.Phone), SanitizeUTF8(req.Title), SanitizeUTF8(req.Description),
		SanitizeUTF8(req.Location.Address), req.Location.Lat, req.Location.Lng,
		string(req.Priority), req.Status, string(req.Language), string(req.InputMethod),
		toText(req.TurnID), details, toTimestamptz(createdAt),
	).Scan(&stored)

	if errors.Is(err, pgx.ErrNoRows) {
		return db.requestIDForTurn(ctx, req.RequesterID, req.TurnID)
	}

	if err != nil {
		return "", fmt.Errorf("%w: insert service request: %w", coreerrors.ErrPersistence, err)
	}

	return fromUUID(stored), nil
}

func (db *DB) requestIDForTurn(ctx context.Context, requesterID, turnID string) (string, error) {
	var stored pgtype.UUID

	err := db.Pool.QueryRow(ctx, `
		SELECT id FROM service_requests
		WHERE requester_id = $1 AND turn_id = $2
	`, requesterID, turnID).Scan(&stored)
	if err != nil {
		return "", fmt.Errorf("%w: lookup replayed request: %w", coreerrors.ErrPersistence, err)
	}

	db.Logger.Debug().Str("turn_id", turnID).Msg("service request already stored for turn")

	return fromUUID(stored), nil
}

// GetServiceRequestByReference returns the request carrying a reference code.
func (db *DB) GetServiceRequestByReference(ctx context.Context, ref string) (*domain.ServiceRequest, error) {
	var (
		req            domain.ServiceRequest
		id             pgtype.UUID
		phone, turnID  pgtype.Text
		reqType        string
		priority, lang string
		inputMethod    string
		details        []byte
		createdAt      pgtype.Timestamptz
	)

	err := db.Pool.QueryRow(ctx, `
		SELECT id, reference_code, type, requester_id, requester_name, phone, title, description,
			address, lat, lng, priority, status, language, input_method, turn_id, details, created_at
		FROM service_requests
		WHERE reference_code = $1
	`, ref).Scan(&id, &req.ReferenceCode, &reqType, &req.RequesterID, &req.RequesterName, &phone,
		&req.Title, &req.Description, &req.Location.Address, &req.Location.Lat, &req.Location.Lng,
		&priority, &req.Status, &lang, &inputMethod, &turnID, &details, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: request %s", coreerrors.ErrNotFound, ref)
	}

	if err != nil {
		return nil, fmt.Errorf("get service request: %w", err)
	}

	req.ID = fromUUID(id)
	req.Type = domain.RequestType(reqType)
	req.Priority = domain.Priority(priority)
	req.Language = domain.Language(lang)
	req.InputMethod = domain.InputMethod(inputMethod)
	req.Phone = fromText(phone)
	req.TurnID = fromText(turnID)
	req.CreatedAt = createdAt.Time

	if err := decodeDetails(&req, details); err != nil {
		return nil, err
	}

	return &req, nil
}

// encodeDetails serializes the type specific part of a request.
func encodeDetails(req *domain.ServiceRequest) ([]byte, error) {
	var details any

	switch req.Type {
	case domain.RequestTypeBlood:
		details = req.Blood
	case domain.RequestTypeElderSupport:
		details = req.Elder
	case domain.RequestTypeComplaint:
		details = req.Complaint
	default:
		return nil, fmt.Errorf("%w: unknown request type %q", coreerrors.ErrValidation, req.Type)
	}

	raw, err := json.Marshal(details)
	if err != nil {
		return nil, fmt.Errorf("encode request details: %w", err)
	}

	if string(raw) == "null" {
		return nil, fmt.Errorf("%w: %s request without details", coreerrors.ErrValidation, req.Type)
	}

	return raw, nil
}

func decodeDetails(req *domain.ServiceRequest, raw []byte) error {
	var target any

	switch req.Type {
	case domain.RequestTypeBlood:
		req.Blood = &domain.BloodDetails{}
		target = req.Blood
	case domain.RequestTypeElderSupport:
		req.Elder = &domain.ElderSupportDetails{}
		target = req.Elder
	case domain.RequestTypeComplaint:
		req.Complaint = &domain.ComplaintDetails{}
		target = req.Complaint
	default:
		return fmt.Errorf("unknown request type %q", req.Type)
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode request details: %w", err)
	}

	return nil
}
