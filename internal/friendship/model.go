package friendship

import (
	"time"

	"github.com/google/uuid"
)

// Status is the state of a friend request. Accepted and rejected are terminal.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// IsDecision reports whether s is a valid answer to a pending request
func (s Status) IsDecision() bool {
	return s == StatusAccepted || s == StatusRejected
}

type FriendRequest struct {
	ID         uuid.UUID
	SenderID   uuid.UUID
	ReceiverID uuid.UUID
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Friendship links the original sender (User1) and the accepter (User2)
type Friendship struct {
	ID        uuid.UUID
	User1ID   uuid.UUID
	User2ID   uuid.UUID
	CreatedAt time.Time
}

// Other returns the side of the friendship that is not userID
func (f *Friendship) Other(userID uuid.UUID) uuid.UUID {
	if f.User1ID == userID {
		return f.User2ID
	}
	return f.User1ID
}

// PendingRequest is a pending request as shown to its receiver
type PendingRequest struct {
	RequestID uuid.UUID `json:"friend_request_id" bun:"friend_request_id"`
	Name      string    `json:"name" bun:"name"`
	Email     string    `json:"email" bun:"email"`
}
