package auth

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// SessionDuration is how long a login stays valid.
const SessionDuration = 7 * 24 * time.Hour

var ErrSessionExpired = errors.New("session expired")

// Session is a server-side login. Tokens reference it by id, so deleting the row
// revokes every token issued for it.
type Session struct {
	id        uuid.UUID
	userID    uuid.UUID
	expiresAt time.Time
	ipAddress string
	userAgent string
	createdAt time.Time
}

func NewSession(userID uuid.UUID, now time.Time, ttl time.Duration, ipAddress, userAgent string) *Session {
	if ttl <= 0 {
		ttl = SessionDuration
	}
	return &Session{
		id:        uuid.New(),
		userID:    userID,
		expiresAt: now.Add(ttl),
		ipAddress: ipAddress,
		userAgent: userAgent,
		createdAt: now,
	}
}

func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.expiresAt)
}

func (s *Session) ID() uuid.UUID        { return s.id }
func (s *Session) UserID() uuid.UUID    { return s.userID }
func (s *Session) ExpiresAt() time.Time { return s.expiresAt }
func (s *Session) IPAddress() string    { return s.ipAddress }
func (s *Session) UserAgent() string    { return s.userAgent }
func (s *Session) CreatedAt() time.Time { return s.createdAt }
