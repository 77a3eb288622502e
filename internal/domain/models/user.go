package models

import (
	"context"
	"time"

	"github.com/Yun12-yu/smart-taxis/internal/domain/types"
	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID      `json:"id"`
	Username  string         `json:"username"`
	Email     string         `json:"email"`
	Role      types.UserRole `json:"role"`
	DriverID  *int64         `json:"driver_id,omitempty"` // optional link to a driver record
	CreatedAt time.Time      `json:"created_at"`

	passwordHash string
}

func (u *User) PasswordHash() string {
	return u.passwordHash
}

func (u *User) SetPasswordHash(hash string) {
	u.passwordHash = hash
}

// IsAnonymous reports whether the user is the unauthenticated placeholder.
func (u *User) IsAnonymous() bool {
	return u == anonymous
}

var anonymous = &User{}

// AnonymousUser is the placeholder injected for requests without credentials.
func AnonymousUser() *User {
	return anonymous
}

type userCtxKey struct{}

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// UserFromContext returns the user stored in the context, or nil.
func UserFromContext(ctx context.Context) *User {
	u, _ := ctx.Value(userCtxKey{}).(*User)
	return u
}
