package response

import (
	"time"

	"ski-stays/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type UserResponse struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"emailVerified"`
}

type LoginResponse struct {
	ExpiresAt time.Time     `json:"expiresAt"`
	User      *UserResponse `json:"user"`
}

func FromUserView(v *queries.AuthorizedUserView) *UserResponse {
	var res UserResponse
	_ = copier.Copy(&res, v)
	return &res
}
