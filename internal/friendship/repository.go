package friendship

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/go-social-api/internal/database"
	"github.com/redmonkez12/go-social-api/internal/user"
)

// BunStore is the Postgres-backed Store
type BunStore struct {
	db *bun.DB
}

func NewBunStore(db *bun.DB) *BunStore {
	return &BunStore{db: db}
}

func (s *BunStore) Repos() Repos {
	return reposFor(s.db)
}

func (s *BunStore) WithinTx(ctx context.Context, fn func(ctx context.Context, r Repos) error) error {
	return s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, reposFor(tx))
	})
}

func reposFor(db bun.IDB) Repos {
	return Repos{
		Requests:    NewRequestRepository(db),
		Friendships: NewFriendshipRepository(db),
		Users:       user.NewRepository(db),
	}
}

// Unique constraints from the friend_requests and friendships migrations
const (
	constraintRequestPair    = "friend_requests_sender_receiver_key"
	constraintFriendshipPair = "friendships_pair_key"
	constraintFriendshipRow  = "friendships_user1_user2_key"
)

// RequestRepository handles friend request persistence
type RequestRepository struct {
	db bun.IDB
}

func NewRequestRepository(db bun.IDB) *RequestRepository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) Create(ctx context.Context, senderID, receiverID uuid.UUID, at time.Time) (*FriendRequest, error) {
	row := &database.FriendRequest{
		EntityMeta: database.NewEntityMeta(at.UTC()),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     string(StatusPending),
	}

	if _, err := r.db.NewInsert().Model(row).Exec(ctx); err != nil {
		if database.IsUniqueViolation(err) && database.ConstraintName(err) == constraintRequestPair {
			return nil, ErrDuplicateRequest
		}
		return nil, fmt.Errorf("failed to create friend request: %w", err)
	}

	return mapRequest(row), nil
}

func (r *RequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*FriendRequest, error) {
	row := new(database.FriendRequest)
	err := r.db.NewSelect().
		Model(row).
		Where("fr.id = ?", id).
		Where("fr.is_deleted = false").
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get friend request: %w", err)
	}

	return mapRequest(row), nil
}

// CountSentSince includes soft-deleted rows; every creation counts toward the limit
func (r *RequestRepository) CountSentSince(ctx context.Context, senderID uuid.UUID, since time.Time) (int, error) {
	count, err := r.db.NewSelect().
		Model((*database.FriendRequest)(nil)).
		Where("fr.sender_id = ?", senderID).
		Where("fr.created_at >= ?", since.UTC()).
		Count(ctx)

	if err != nil {
		return 0, fmt.Errorf("failed to count friend requests: %w", err)
	}
	return count, nil
}

// ExistsForPair matches the ordered pair regardless of status or deletion,
// mirroring the unique constraint.
func (r *RequestRepository) ExistsForPair(ctx context.Context, senderID, receiverID uuid.UUID) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*database.FriendRequest)(nil)).
		Where("fr.sender_id = ?", senderID).
		Where("fr.receiver_id = ?", receiverID).
		Exists(ctx)

	if err != nil {
		return false, fmt.Errorf("failed to check friend request: %w", err)
	}
	return exists, nil
}

func (r *RequestRepository) TransitionFromPending(ctx context.Context, id uuid.UUID, status Status, at time.Time) (bool, error) {
	result, err := r.db.NewUpdate().
		Model((*database.FriendRequest)(nil)).
		Set("status = ?", string(status)).
		Set("updated_at = ?", at.UTC()).
		Where("id = ?", id).
		Where("status = ?", string(StatusPending)).
		Where("is_deleted = false").
		Exec(ctx)

	if err != nil {
		return false, fmt.Errorf("failed to update friend request: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected == 1, nil
}

func (r *RequestRepository) ListPendingForReceiver(ctx context.Context, receiverID uuid.UUID) ([]PendingRequest, error) {
	pending := make([]PendingRequest, 0)
	err := r.db.NewSelect().
		TableExpr("friend_requests AS fr").
		ColumnExpr("fr.id AS friend_request_id").
		ColumnExpr("u.name AS name").
		ColumnExpr("u.email AS email").
		Join("JOIN users AS u ON u.id = fr.sender_id").
		Where("fr.receiver_id = ?", receiverID).
		Where("fr.status = ?", string(StatusPending)).
		Where("fr.is_deleted = false").
		Where("u.is_deleted = false").
		OrderExpr("fr.created_at DESC").
		Scan(ctx, &pending)

	if err != nil {
		return nil, fmt.Errorf("failed to list pending friend requests: %w", err)
	}
	return pending, nil
}

// FriendshipRepository handles friendship persistence
type FriendshipRepository struct {
	db bun.IDB
}

func NewFriendshipRepository(db bun.IDB) *FriendshipRepository {
	return &FriendshipRepository{db: db}
}

func (r *FriendshipRepository) Create(ctx context.Context, user1ID, user2ID uuid.UUID, at time.Time) (*Friendship, error) {
	row := &database.Friendship{
		EntityMeta: database.NewEntityMeta(at.UTC()),
		User1ID:    user1ID,
		User2ID:    user2ID,
	}

	if _, err := r.db.NewInsert().Model(row).Exec(ctx); err != nil {
		if database.IsUniqueViolation(err) {
			switch database.ConstraintName(err) {
			case constraintFriendshipPair, constraintFriendshipRow:
				return nil, ErrDuplicateFriendship
			}
		}
		return nil, fmt.Errorf("failed to create friendship: %w", err)
	}

	return &Friendship{
		ID:        row.ID,
		User1ID:   row.User1ID,
		User2ID:   row.User2ID,
		CreatedAt: row.CreatedAt,
	}, nil
}

// ListFriends returns the users on the other side of userID's friendships,
// newest friendship first.
func (r *FriendshipRepository) ListFriends(ctx context.Context, userID uuid.UUID, limit, offset int) ([]user.User, int, error) {
	var rows []database.User

	count, err := r.db.NewSelect().
		Model(&rows).
		Join("JOIN friendships AS fs ON (fs.user1_id = ? AND fs.user2_id = u.id) OR (fs.user2_id = ? AND fs.user1_id = u.id)", userID, userID).
		Where("fs.is_deleted = false").
		Where("u.is_deleted = false").
		OrderExpr("fs.created_at DESC").
		Limit(limit).
		Offset(offset).
		ScanAndCount(ctx)

	if err != nil {
		return nil, 0, fmt.Errorf("failed to list friends: %w", err)
	}

	return user.FromDBRows(rows), count, nil
}

func mapRequest(row *database.FriendRequest) *FriendRequest {
	return &FriendRequest{
		ID:         row.ID,
		SenderID:   row.SenderID,
		ReceiverID: row.ReceiverID,
		Status:     Status(row.Status),
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}
