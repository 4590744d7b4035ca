package usecase

import (
	"context"
	"testing"
	"time"

	"ski-stays/internal/domain/user"
	"ski-stays/internal/infra"
	"ski-stays/internal/pkg/clock"
	"ski-stays/internal/pkg/errs"
	"ski-stays/internal/pkg/jwt"
	"ski-stays/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSessionReadStore struct {
	mock.Mock
}

func (m *MockSessionReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.SessionView, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*queries.SessionView)
	return v, args.Error(1)
}

var now = time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC)

func TestValidateToken(t *testing.T) {
	clk := clock.NewMockClock(now)
	jwtService := jwt.NewService("test-secret", 7*24*time.Hour, clk)
	sessionID, userID := uuid.New(), uuid.New()
	token, err := jwtService.GenerateToken(sessionID, userID, user.RoleGuest)
	require.NoError(t, err)

	t.Run("live session", func(t *testing.T) {
		store := new(MockSessionReadStore)
		store.On("FindByID", mock.Anything, sessionID).
			Return(&queries.SessionView{ID: sessionID, UserID: userID, ExpiresAt: now.Add(time.Hour)}, nil)

		got, err := NewTokenValidator(jwtService, store, clk).ValidateToken(context.Background(), token)

		require.NoError(t, err)
		assert.Equal(t, &AuthContext{SessionID: sessionID, UserID: userID, Role: user.RoleGuest}, got)
	})

	t.Run("deleted session is rejected", func(t *testing.T) {
		store := new(MockSessionReadStore)
		store.On("FindByID", mock.Anything, sessionID).
			Return(nil, infra.WrapRepoErr("failed to find session", nil, infra.KindNotFound))

		_, err := NewTokenValidator(jwtService, store, clk).ValidateToken(context.Background(), token)

		assert.ErrorIs(t, err, errs.ErrSessionNotFound)
	})

	t.Run("expired session row", func(t *testing.T) {
		store := new(MockSessionReadStore)
		store.On("FindByID", mock.Anything, sessionID).
			Return(&queries.SessionView{ID: sessionID, UserID: userID, ExpiresAt: now}, nil)

		_, err := NewTokenValidator(jwtService, store, clk).ValidateToken(context.Background(), token)

		assert.ErrorIs(t, err, errs.ErrSessionExpired)
	})

	t.Run("session owned by another user", func(t *testing.T) {
		store := new(MockSessionReadStore)
		store.On("FindByID", mock.Anything, sessionID).
			Return(&queries.SessionView{ID: sessionID, UserID: uuid.New(), ExpiresAt: now.Add(time.Hour)}, nil)

		_, err := NewTokenValidator(jwtService, store, clk).ValidateToken(context.Background(), token)

		assert.ErrorIs(t, err, errs.ErrSessionNotFound)
	})

	t.Run("bad signature never reaches the store", func(t *testing.T) {
		store := new(MockSessionReadStore)
		other := jwt.NewService("other-secret", time.Hour, clk)
		forged, err := other.GenerateToken(sessionID, userID, user.RoleAdmin)
		require.NoError(t, err)

		_, err = NewTokenValidator(jwtService, store, clk).ValidateToken(context.Background(), forged)

		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
		store.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}
