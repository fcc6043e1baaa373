package user

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	PasswordHash  string    `json:"-"` // Never expose password hash in JSON
	AcceptedTerms bool      `json:"tc"`
	IsActive      bool      `json:"is_active"`
	IsAdmin       bool      `json:"is_admin"`
	IsDeleted     bool      `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CanAuthenticate reports whether the account may log in or use a token
func (u *User) CanAuthenticate() bool {
	return u.IsActive && !u.IsDeleted
}

// NewUser holds the fields needed to create an account
type NewUser struct {
	Email         string
	Name          string
	PasswordHash  string
	AcceptedTerms bool
	IsAdmin       bool
}

// Summary is the public projection used in search results and friend lists
type Summary struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

// Profile is what the owner sees about their own account
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) Summary() Summary {
	return Summary{ID: u.ID, Email: u.Email, Name: u.Name}
}

func (u *User) Profile() Profile {
	return Profile{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

func Summaries(users []User) []Summary {
	out := make([]Summary, 0, len(users))
	for i := range users {
		out = append(out, users[i].Summary())
	}
	return out
}

type contextKey struct{}

// WithUser stores the authenticated user in ctx
func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, contextKey{}, u)
}

// FromContext returns the authenticated user, if any
func FromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(contextKey{}).(*User)
	return u, ok && u != nil
}
