package friendship

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/redmonkez12/go-social-api/internal/apperror"
	"github.com/redmonkez12/go-social-api/internal/logging"
	"github.com/redmonkez12/go-social-api/internal/user"
)

const (
	detailReceiverRequired = "Receiver ID is required"
	detailUserNotFound     = "User not found"
	detailSelfRequest      = "You cannot send a friend request to yourself!"
	detailAlreadySent      = "Friend request already sent"
	detailRequestNotFound  = "Friend request not found"
	detailNotReceiver      = "You are not authorized to accept/reject this request"
	detailInvalidStatus    = "Invalid Status"
	detailFriendsAlready   = "Friendship already exists"
)

// Service runs the friend request workflow
type Service struct {
	store  Store
	logger *logging.Logger
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewService builds the workflow. A sender may create at most limit
// requests in any trailing window.
func NewService(store Store, logger *logging.Logger, limit int, window time.Duration) *Service {
	return &Service{
		store:  store,
		logger: logger,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// SendRequest creates a pending request from sender to receiverID.
// The rate limit check, the duplicate check and the insert share one
// transaction, and the sender row is locked so concurrent sends queue up.
func (s *Service) SendRequest(ctx context.Context, sender *user.User, receiverID string) (*FriendRequest, error) {
	if receiverID == "" {
		return nil, apperror.InvalidInput(detailReceiverRequired)
	}

	receiver, err := s.resolveUser(ctx, receiverID)
	if err != nil {
		return nil, err
	}

	if receiver.ID == sender.ID {
		return nil, apperror.InvalidOperation(detailSelfRequest)
	}

	var created *FriendRequest
	err = s.store.WithinTx(ctx, func(ctx context.Context, r Repos) error {
		if err := r.Users.LockByID(ctx, sender.ID); err != nil {
			return fmt.Errorf("failed to lock sender: %w", err)
		}

		now := s.now()
		sent, err := r.Requests.CountSentSince(ctx, sender.ID, now.Add(-s.window))
		if err != nil {
			return err
		}
		if sent >= s.limit {
			return apperror.RateLimited(s.rateLimitDetail())
		}

		exists, err := r.Requests.ExistsForPair(ctx, sender.ID, receiver.ID)
		if err != nil {
			return err
		}
		if exists {
			return apperror.Conflict(detailAlreadySent)
		}

		created, err = r.Requests.Create(ctx, sender.ID, receiver.ID, now)
		if errors.Is(err, ErrDuplicateRequest) {
			return apperror.Conflict(detailAlreadySent).Wrap(err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("friend request sent",
		"request_id", created.ID.String(),
		"sender_id", sender.ID.String(),
		"receiver_id", receiver.ID.String(),
	)
	return created, nil
}

// RespondToRequest accepts or rejects a pending request addressed to responder.
// Accepting creates the friendship in the same transaction as the status change.
func (s *Service) RespondToRequest(ctx context.Context, requestID uuid.UUID, responder *user.User, decision Status) (*FriendRequest, error) {
	req, err := s.store.Repos().Requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, ErrRequestNotFound) {
			return nil, apperror.NotFound(detailRequestNotFound)
		}
		return nil, err
	}

	if req.ReceiverID != responder.ID {
		return nil, apperror.Forbidden(detailNotReceiver)
	}

	if !decision.IsDecision() {
		return nil, apperror.InvalidInput(detailInvalidStatus)
	}

	var friendship *Friendship
	err = s.store.WithinTx(ctx, func(ctx context.Context, r Repos) error {
		now := s.now()

		updated, err := r.Requests.TransitionFromPending(ctx, req.ID, decision, now)
		if err != nil {
			return err
		}
		if !updated {
			current, err := r.Requests.GetByID(ctx, req.ID)
			if err != nil {
				if errors.Is(err, ErrRequestNotFound) {
					return apperror.NotFound(detailRequestNotFound)
				}
				return err
			}
			return apperror.Conflict(fmt.Sprintf("Friend request has already been %s", current.Status))
		}

		req.Status = decision
		req.UpdatedAt = now

		if decision != StatusAccepted {
			return nil
		}

		friendship, err = r.Friendships.Create(ctx, req.SenderID, req.ReceiverID, now)
		if errors.Is(err, ErrDuplicateFriendship) {
			return apperror.Conflict(detailFriendsAlready).Wrap(err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	logger := s.logger.WithFields(map[string]any{"request_id": req.ID.String(), "status": string(decision)})
	if friendship != nil {
		logger = logger.WithFields(map[string]any{"friend_id": friendship.Other(responder.ID).String()})
	}
	logger.Info("friend request answered")
	return req, nil
}

// ListPending returns the pending requests addressed to receiver, newest first
func (s *Service) ListPending(ctx context.Context, receiver *user.User) ([]PendingRequest, error) {
	return s.store.Repos().Requests.ListPendingForReceiver(ctx, receiver.ID)
}

// ListFriends returns a page of u's friends and the total count
func (s *Service) ListFriends(ctx context.Context, u *user.User, limit, offset int) ([]user.User, int, error) {
	return s.store.Repos().Friendships.ListFriends(ctx, u.ID, limit, offset)
}

func (s *Service) resolveUser(ctx context.Context, rawID string) (*user.User, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, apperror.NotFound(detailUserNotFound)
	}

	u, err := s.store.Repos().Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, apperror.NotFound(detailUserNotFound)
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) rateLimitDetail() string {
	return fmt.Sprintf("Cannot send more than %d friend requests within %s", s.limit, describeWindow(s.window))
}

func describeWindow(d time.Duration) string {
	switch {
	case d == time.Minute:
		return "a minute"
	case d == time.Hour:
		return "an hour"
	case d%time.Hour == 0:
		return fmt.Sprintf("%d hours", d/time.Hour)
	case d%time.Minute == 0:
		return fmt.Sprintf("%d minutes", d/time.Minute)
	default:
		return fmt.Sprintf("%d seconds", d/time.Second)
	}
}
