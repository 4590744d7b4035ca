package repository

import (
	"context"
	"strings"

	"ski-stays/internal/infra"
	"ski-stays/internal/infra/db"
	"ski-stays/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// credentialProviderID is the accounts.provider_id of email/password logins.
const credentialProviderID = "credential"

const (
	findUserByIDSQL = `
SELECT id, email, name, role, email_verified, is_active, created_at
FROM users
WHERE id = $1`

	findCredentialByEmailSQL = `
SELECT u.id, u.email, u.name, u.role, u.email_verified, u.is_active, u.created_at, a.password
FROM users u
JOIN accounts a ON a.user_id = u.id AND a.provider_id = $2
WHERE lower(u.email) = $1`
)

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(dbtx db.DBTX) *UserRepository {
	return &UserRepository{db: dbtx}
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	var v queries.AuthorizedUserView
	err := r.db.QueryRow(ctx, findUserByIDSQL, id).Scan(
		&v.ID, &v.Email, &v.Name, &v.Role, &v.EmailVerified, &v.IsActive, &v.CreatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &v, nil
}

func (r *UserRepository) FindCredentialByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	var (
		v    queries.AuthorizedUserView
		hash pgtype.Text
	)
	err := r.db.QueryRow(ctx, findCredentialByEmailSQL, strings.ToLower(strings.TrimSpace(email)), credentialProviderID).Scan(
		&v.ID, &v.Email, &v.Name, &v.Role, &v.EmailVerified, &v.IsActive, &v.CreatedAt, &hash,
	)
	if err != nil {
		return nil, "", infra.WrapRepoErr("failed to find user credential by email", err)
	}
	if !hash.Valid || hash.String == "" {
		return nil, "", infra.WrapRepoErr("credential has no password", nil, infra.KindNotFound)
	}
	return &v, hash.String, nil
}
