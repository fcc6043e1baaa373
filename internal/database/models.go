package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// EntityMeta holds the columns every table shares. Repositories filter on
// is_deleted explicitly; nothing is hard-deleted.
type EntityMeta struct {
	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	CreatedAt time.Time `bun:"created_at,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
	IsDeleted bool      `bun:"is_deleted,notnull"`
}

// NewEntityMeta returns metadata for a row about to be inserted
func NewEntityMeta(now time.Time) EntityMeta {
	return EntityMeta{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`
	EntityMeta

	Email         string `bun:"email,notnull"`
	Name          string `bun:"name,notnull"`
	PasswordHash  string `bun:"password_hash,notnull"`
	AcceptedTerms bool   `bun:"tc,notnull"`
	IsActive      bool   `bun:"is_active,notnull"`
	IsAdmin       bool   `bun:"is_admin,notnull"`
}

type FriendRequest struct {
	bun.BaseModel `bun:"table:friend_requests,alias:fr"`
	EntityMeta

	SenderID   uuid.UUID `bun:"sender_id,type:uuid,notnull"`
	ReceiverID uuid.UUID `bun:"receiver_id,type:uuid,notnull"`
	Status     string    `bun:"status,notnull"`
}

type Friendship struct {
	bun.BaseModel `bun:"table:friendships,alias:fs"`
	EntityMeta

	User1ID uuid.UUID `bun:"user1_id,type:uuid,notnull"`
	User2ID uuid.UUID `bun:"user2_id,type:uuid,notnull"`
}
