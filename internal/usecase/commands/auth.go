package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"ski-stays/internal/domain/auth"
	"ski-stays/internal/domain/user"
	reqdto "ski-stays/internal/handler/dto/request"
	"ski-stays/internal/infra"
	"ski-stays/internal/pkg/clock"
	"ski-stays/internal/pkg/errs"
	"ski-stays/internal/pkg/jwt"
	"ski-stays/internal/pkg/password"
	"ski-stays/internal/usecase/queries"
	"ski-stays/internal/usecase/shared"
)

var (
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrUserInactive         = errs.New("user inactive")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
)

// ClientMeta is recorded on the session row.
type ClientMeta struct {
	IPAddress string
	UserAgent string
}

type LoginResult struct {
	Token     string
	SessionID uuid.UUID
	ExpiresAt time.Time
	User      *queries.AuthorizedUserView
}

type AuthCommands interface {
	Login(ctx context.Context, req reqdto.LoginRequest, meta ClientMeta) (*LoginResult, error)
	Logout(ctx context.Context, sessionID uuid.UUID) error
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	readStore  queries.UserReadStore
	jwtService *jwt.Service
	clock      clock.Clock
}

func NewAuthCommands(uow shared.UnitOfWork, readStore queries.UserReadStore, jwtService *jwt.Service, clk clock.Clock) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		readStore:  readStore,
		jwtService: jwtService,
		clock:      clk,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest, meta ClientMeta) (*LoginResult, error) {
	credentials, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	userView, err := a.validateUser(ctx, credentials)
	if err != nil {
		return nil, err
	}

	role, err := user.NewRole(userView.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	session := auth.NewSession(userView.ID, a.clock.Now(), a.jwtService.TokenDuration(), meta.IPAddress, meta.UserAgent)
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Sessions().Create(ctx, session)
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	token, err := a.jwtService.GenerateToken(session.ID(), userView.ID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	slog.Info("user logged in", "user_id", userView.ID, "session_id", session.ID())

	return &LoginResult{
		Token:     token,
		SessionID: session.ID(),
		ExpiresAt: session.ExpiresAt(),
		User:      userView,
	}, nil
}

func (a *authCommandsImpl) Logout(ctx context.Context, sessionID uuid.UUID) error {
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Sessions().Delete(ctx, sessionID)
	})
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func (a *authCommandsImpl) validateUser(ctx context.Context, credentials auth.Credentials) (*queries.AuthorizedUserView, error) {
	userView, hashedPassword, err := a.readStore.FindCredentialByEmail(ctx, credentials.Email().Value())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// same error as a password mismatch so emails cannot be enumerated
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	err = password.ComparePassword(hashedPassword, credentials.Password().Value())
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !userView.IsActive {
		return nil, ErrUserInactive
	}

	return userView, nil
}
