package user

import (
	"time"

	"github.com/google/uuid"
)

// User is a storefront account. Guests book without one; admins use it for the back office.
type User struct {
	id            uuid.UUID
	email         Email
	name          string
	role          Role
	emailVerified bool
	isActive      bool
	createdAt     time.Time
	updatedAt     time.Time
}

func NewUser(email Email, name string, role Role) *User {
	return &User{
		id:       uuid.New(),
		email:    email,
		name:     name,
		role:     role,
		isActive: true,
	}
}

// Reconstruct rebuilds a User from stored state without re-running creation defaults.
func Reconstruct(
	id uuid.UUID,
	email Email,
	name string,
	role Role,
	emailVerified, isActive bool,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:            id,
		email:         email,
		name:          name,
		role:          role,
		emailVerified: emailVerified,
		isActive:      isActive,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Email() Email         { return u.email }
func (u *User) Name() string         { return u.name }
func (u *User) Role() Role           { return u.role }
func (u *User) EmailVerified() bool  { return u.emailVerified }
func (u *User) IsActive() bool       { return u.isActive }
func (u *User) IsAdmin() bool        { return u.role == RoleAdmin }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }
