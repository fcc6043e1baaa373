package friendship

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/redmonkez12/go-social-api/internal/user"
)

var (
	ErrRequestNotFound     = errors.New("friend request not found")
	ErrDuplicateRequest    = errors.New("friend request already exists")
	ErrDuplicateFriendship = errors.New("friendship already exists")
)

// FriendRequestRepo persists friend requests
type FriendRequestRepo interface {
	// Create inserts a pending request. A second request for the same
	// ordered pair fails with ErrDuplicateRequest.
	Create(ctx context.Context, senderID, receiverID uuid.UUID, at time.Time) (*FriendRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*FriendRequest, error)
	// CountSentSince counts every request senderID created at or after since
	CountSentSince(ctx context.Context, senderID uuid.UUID, since time.Time) (int, error)
	ExistsForPair(ctx context.Context, senderID, receiverID uuid.UUID) (bool, error)
	// TransitionFromPending sets status only if the request is still pending.
	// It reports whether a row changed.
	TransitionFromPending(ctx context.Context, id uuid.UUID, status Status, at time.Time) (bool, error)
	ListPendingForReceiver(ctx context.Context, receiverID uuid.UUID) ([]PendingRequest, error)
}

// FriendshipRepo persists established friendships
type FriendshipRepo interface {
	// Create fails with ErrDuplicateFriendship if the pair is already
	// friends in either direction.
	Create(ctx context.Context, user1ID, user2ID uuid.UUID, at time.Time) (*Friendship, error)
	ListFriends(ctx context.Context, userID uuid.UUID, limit, offset int) ([]user.User, int, error)
}

// UserRepo is the user lookup the workflow needs
type UserRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	LockByID(ctx context.Context, id uuid.UUID) error
}

// Repos groups repositories bound to one connection or transaction
type Repos struct {
	Requests    FriendRequestRepo
	Friendships FriendshipRepo
	Users       UserRepo
}

// Store hands out repositories and runs transactions
type Store interface {
	Repos() Repos
	// WithinTx runs fn in a transaction. It commits when fn returns nil and
	// rolls back on any error or panic.
	WithinTx(ctx context.Context, fn func(ctx context.Context, r Repos) error) error
}
