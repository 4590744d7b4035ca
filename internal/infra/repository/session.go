package repository

import (
	"context"

	"ski-stays/internal/domain/auth"
	"ski-stays/internal/infra"
	"ski-stays/internal/infra/db"
	"ski-stays/internal/usecase/queries"

	"github.com/google/uuid"
)

const (
	createSessionSQL = `
INSERT INTO sessions (id, user_id, expires_at, ip_address, user_agent, created_at)
VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6)`

	findSessionByIDSQL = `SELECT id, user_id, expires_at FROM sessions WHERE id = $1`

	deleteSessionSQL = `DELETE FROM sessions WHERE id = $1`
)

// SessionRepository serves both the session read store and the transactional write side.
type SessionRepository struct {
	db db.DBTX
}

func NewSessionRepository(dbtx db.DBTX) *SessionRepository {
	return &SessionRepository{db: dbtx}
}

func (r *SessionRepository) Create(ctx context.Context, s *auth.Session) error {
	_, err := r.db.Exec(ctx, createSessionSQL,
		s.ID(), s.UserID(), s.ExpiresAt(), s.IPAddress(), s.UserAgent(), s.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create session", err)
	}
	return nil
}

func (r *SessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*queries.SessionView, error) {
	var v queries.SessionView
	if err := r.db.QueryRow(ctx, findSessionByIDSQL, id).Scan(&v.ID, &v.UserID, &v.ExpiresAt); err != nil {
		return nil, infra.WrapRepoErr("failed to find session", err)
	}
	return &v, nil
}

// Delete is idempotent; removing a missing session is not an error.
func (r *SessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx, deleteSessionSQL, id); err != nil {
		return infra.WrapRepoErr("failed to delete session", err)
	}
	return nil
}
