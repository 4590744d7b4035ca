package usecase

import (
	"context"

	"ski-stays/internal/domain/user"
	"ski-stays/internal/infra"
	"ski-stays/internal/pkg/clock"
	"ski-stays/internal/pkg/errs"
	"ski-stays/internal/pkg/jwt"
	"ski-stays/internal/usecase/queries"

	"github.com/google/uuid"
)

// AuthContext identifies the caller behind a validated session token.
type AuthContext struct {
	SessionID uuid.UUID
	UserID    uuid.UUID
	Role      user.Role
}

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(ctx context.Context, tokenString string) (*AuthContext, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
	sessions   queries.SessionReadStore
	clock      clock.Clock
}

func NewTokenValidator(jwtService *jwt.Service, sessions queries.SessionReadStore, clk clock.Clock) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
		sessions:   sessions,
		clock:      clk,
	}
}

// ValidateToken checks the signature and expiry, then requires the session row to
// still exist so a logout revokes the token immediately.
func (t *tokenValidatorImpl) ValidateToken(ctx context.Context, tokenString string) (*AuthContext, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return nil, errs.Mark(err, jwt.ErrInvalidToken)
	}

	session, err := t.sessions.FindByID(ctx, claims.SessionID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrSessionNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if session.UserID != claims.UserID {
		return nil, errs.ErrSessionNotFound
	}
	if !t.clock.Now().Before(session.ExpiresAt) {
		return nil, errs.ErrSessionExpired
	}

	return &AuthContext{
		SessionID: session.ID,
		UserID:    claims.UserID,
		Role:      role,
	}, nil
}
