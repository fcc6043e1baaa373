package friendship

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/go-social-api/internal/apperror"
	"github.com/redmonkez12/go-social-api/internal/logging"
	"github.com/redmonkez12/go-social-api/internal/user"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestService(limit int) (*Service, *memStore, *testClock) {
	store := newMemStore()
	clock := &testClock{now: time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)}
	svc := NewService(store, logging.Discard(), limit, time.Minute)
	svc.now = clock.Now
	return svc, store, clock
}

func TestSendRequest_Preconditions(t *testing.T) {
	svc, store, _ := newTestService(3)
	ann := store.addUser("ann")
	gone := store.addUser("gone")
	gone.IsDeleted = true

	tests := []struct {
		name       string
		receiverID string
		want       *apperror.Error
	}{
		{"missing receiver", "", apperror.InvalidInput("Receiver ID is required")},
		{"malformed id", "not-a-uuid", apperror.NotFound("User not found")},
		{"unknown user", uuid.NewString(), apperror.NotFound("User not found")},
		{"deleted user", gone.ID.String(), apperror.NotFound("User not found")},
		{"self", ann.ID.String(), apperror.InvalidOperation("You cannot send a friend request to yourself!")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SendRequest(context.Background(), ann, tt.receiverID)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Zero(t, store.requestCount())
}

func TestSendRequest_Creates(t *testing.T) {
	svc, store, clock := newTestService(3)
	ann, bob := store.addUser("ann"), store.addUser("bob")

	fr, err := svc.SendRequest(context.Background(), ann, bob.ID.String())
	require.NoError(t, err)
	assert.Equal(t, ann.ID, fr.SenderID)
	assert.Equal(t, bob.ID, fr.ReceiverID)
	assert.Equal(t, StatusPending, fr.Status)
	assert.Equal(t, clock.Now(), fr.CreatedAt)
}

func TestSendRequest_RateLimit(t *testing.T) {
	svc, store, clock := newTestService(3)
	ctx := context.Background()
	ann := store.addUser("ann")

	for i := 0; i < 3; i++ {
		_, err := svc.SendRequest(ctx, ann, store.addUser("friend").ID.String())
		require.NoError(t, err)
		clock.Advance(5 * time.Second)
	}

	_, err := svc.SendRequest(ctx, ann, store.addUser("late").ID.String())
	assert.ErrorIs(t, err, apperror.RateLimited("Cannot send more than 3 friend requests within a minute"))
	assert.Equal(t, 3, store.requestCount())

	// The window slides: once the first request is older than a minute there is room again
	clock.Advance(50 * time.Second)
	_, err = svc.SendRequest(ctx, ann, store.addUser("later").ID.String())
	assert.NoError(t, err)

	// Other senders are unaffected
	bob := store.addUser("bob")
	_, err = svc.SendRequest(ctx, bob, ann.ID.String())
	assert.NoError(t, err)
}

func TestSendRequest_RateLimitCountsRejectedAttempts(t *testing.T) {
	svc, store, _ := newTestService(3)
	ctx := context.Background()
	ann, bob := store.addUser("ann"), store.addUser("bob")

	_, err := svc.SendRequest(ctx, ann, bob.ID.String())
	require.NoError(t, err)

	// Duplicates are not inserted, so they do not use up the allowance
	for i := 0; i < 3; i++ {
		_, err = svc.SendRequest(ctx, ann, bob.ID.String())
		assert.ErrorIs(t, err, apperror.Conflict("Friend request already sent"))
	}

	_, err = svc.SendRequest(ctx, ann, store.addUser("cid").ID.String())
	assert.NoError(t, err)
}

func TestSendRequest_Duplicate(t *testing.T) {
	svc, store, _ := newTestService(10)
	ctx := context.Background()
	ann, bob := store.addUser("ann"), store.addUser("bob")

	fr, err := svc.SendRequest(ctx, ann, bob.ID.String())
	require.NoError(t, err)

	_, err = svc.SendRequest(ctx, ann, bob.ID.String())
	assert.ErrorIs(t, err, apperror.Conflict("Friend request already sent"))

	// Answered requests still block a new one for the same ordered pair
	_, err = svc.RespondToRequest(ctx, fr.ID, bob, StatusRejected)
	require.NoError(t, err)
	_, err = svc.SendRequest(ctx, ann, bob.ID.String())
	assert.ErrorIs(t, err, apperror.Conflict("Friend request already sent"))

	// The reverse direction is a separate request
	_, err = svc.SendRequest(ctx, bob, ann.ID.String())
	assert.NoError(t, err)
}

func TestSendRequest_ConcurrentDuplicates(t *testing.T) {
	svc, store, _ := newTestService(100)
	ann, bob := store.addUser("ann"), store.addUser("bob")
	store.countDelay = time.Millisecond

	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := svc.SendRequest(context.Background(), ann, bob.ID.String())
			errs <- err
		}()
	}
	close(start)
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, apperror.Conflict("Friend request already sent"))
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, store.requestCount())
}

func TestSendRequest_ConcurrentRateLimit(t *testing.T) {
	svc, store, _ := newTestService(3)
	ann := store.addUser("ann")
	// Without the sender lock every goroutine would count zero before any insert lands
	store.countDelay = 5 * time.Millisecond

	receivers := make([]*user.User, 8)
	for i := range receivers {
		receivers[i] = store.addUser("r")
	}

	var wg sync.WaitGroup
	for _, r := range receivers {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, _ = svc.SendRequest(context.Background(), ann, id)
		}(r.ID.String())
	}
	wg.Wait()

	assert.Equal(t, 3, store.requestCount())
}

func TestSendRequest_DifferentSendersDoNotBlockEachOther(t *testing.T) {
	svc, store, _ := newTestService(1)
	bob := store.addUser("bob")
	store.countDelay = 50 * time.Millisecond

	senders := make([]*user.User, 5)
	for i := range senders {
		senders[i] = store.addUser("s")
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(senders))
	started := time.Now()
	for _, sender := range senders {
		wg.Add(1)
		go func(sender *user.User) {
			defer wg.Done()
			_, err := svc.SendRequest(context.Background(), sender, bob.ID.String())
			errs <- err
		}(sender)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, len(senders), store.requestCount())
	// Locks are per sender, so the stalls overlap instead of queueing
	assert.Less(t, time.Since(started), time.Duration(len(senders))*store.countDelay)
}

func TestRespondToRequest_Preconditions(t *testing.T) {
	svc, store, _ := newTestService(3)
	ctx := context.Background()
	ann, bob, eve := store.addUser("ann"), store.addUser("bob"), store.addUser("eve")

	fr, err := svc.SendRequest(ctx, ann, bob.ID.String())
	require.NoError(t, err)

	_, err = svc.RespondToRequest(ctx, uuid.New(), bob, StatusAccepted)
	assert.ErrorIs(t, err, apperror.NotFound("Friend request not found"))

	for _, decision := range []Status{StatusAccepted, StatusRejected, "bogus"} {
		_, err = svc.RespondToRequest(ctx, fr.ID, eve, decision)
		assert.ErrorIs(t, err, apperror.Forbidden("You are not authorized to accept/reject this request"), "decision %q", decision)
		_, err = svc.RespondToRequest(ctx, fr.ID, ann, decision)
		assert.ErrorIs(t, err, apperror.Forbidden("You are not authorized to accept/reject this request"), "sender, decision %q", decision)
	}

	for _, decision := range []Status{"", "pending", "ACCEPTED"} {
		_, err = svc.RespondToRequest(ctx, fr.ID, bob, decision)
		assert.ErrorIs(t, err, apperror.InvalidInput("Invalid Status"), "decision %q", decision)
	}

	got, err := store.Repos().Requests.GetByID(ctx, fr.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, got.Status)
}

func TestRespondToRequest_Accept(t *testing.T) {
	svc, store, _ := newTestService(3)
	ctx := context.Background()
	ann, bob := store.addUser("ann"), store.addUser("bob")

	fr, err := svc.SendRequest(ctx, ann, bob.ID.String())
	require.NoError(t, err)

	answered, err := svc.RespondToRequest(ctx, fr.ID, bob, StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, answered.Status)
	assert.Equal(t, 1, store.friendshipCount())
	assert.Equal(t, ann.ID, store.friendships[0].User1ID)
	assert.Equal(t, bob.ID, store.friendships[0].User2ID)

	_, err = svc.RespondToRequest(ctx, fr.ID, bob, StatusAccepted)
	assert.ErrorIs(t, err, apperror.Conflict("Friend request has already been accepted"))
	_, err = svc.RespondToRequest(ctx, fr.ID, bob, StatusRejected)
	assert.ErrorIs(t, err, apperror.Conflict("Friend request has already been accepted"))
	assert.Equal(t, 1, store.friendshipCount())
}

func TestRespondToRequest_Reject(t *testing.T) {
	svc, store, _ := newTestService(3)
	ctx := context.Background()
	ann, bob := store.addUser("ann"), store.addUser("bob")

	fr, err := svc.SendRequest(ctx, ann, bob.ID.String())
	require.NoError(t, err)

	answered, err := svc.RespondToRequest(ctx, fr.ID, bob, StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, answered.Status)
	assert.Zero(t, store.friendshipCount())

	_, err = svc.RespondToRequest(ctx, fr.ID, bob, StatusAccepted)
	assert.ErrorIs(t, err, apperror.Conflict("Friend request has already been rejected"))
	assert.Zero(t, store.friendshipCount())
}

func TestRespondToRequest_AcceptRollsBack(t *testing.T) {
	svc, store, _ := newTestService(3)
	ctx := context.Background()
	ann, bob := store.addUser("ann"), store.addUser("bob")

	fr, err := svc.SendRequest(ctx, ann, bob.ID.String())
	require.NoError(t, err)

	store.failFriendshipCreate = errors.New("disk full")
	_, err = svc.RespondToRequest(ctx, fr.ID, bob, StatusAccepted)
	require.Error(t, err)
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))

	got, err := store.Repos().Requests.GetByID(ctx, fr.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, got.Status, "status change must roll back")
	assert.Zero(t, store.friendshipCount())

	store.failFriendshipCreate = nil
	_, err = svc.RespondToRequest(ctx, fr.ID, bob, StatusAccepted)
	assert.NoError(t, err)
}

func TestRespondToRequest_ReverseRequestAfterFriendship(t *testing.T) {
	svc, store, _ := newTestService(3)
	ctx := context.Background()
	ann, bob := store.addUser("ann"), store.addUser("bob")

	forward, err := svc.SendRequest(ctx, ann, bob.ID.String())
	require.NoError(t, err)
	reverse, err := svc.SendRequest(ctx, bob, ann.ID.String())
	require.NoError(t, err)

	_, err = svc.RespondToRequest(ctx, forward.ID, bob, StatusAccepted)
	require.NoError(t, err)

	_, err = svc.RespondToRequest(ctx, reverse.ID, ann, StatusAccepted)
	assert.ErrorIs(t, err, apperror.Conflict("Friendship already exists"))
	assert.Equal(t, 1, store.friendshipCount())

	got, err := store.Repos().Requests.GetByID(ctx, reverse.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, got.Status)
}

func TestListFriends_BothSides(t *testing.T) {
	svc, store, _ := newTestService(10)
	ctx := context.Background()
	ann, bob, cid, dan := store.addUser("ann"), store.addUser("bob"), store.addUser("cid"), store.addUser("dan")

	befriend := func(from, to *user.User) {
		fr, err := svc.SendRequest(ctx, from, to.ID.String())
		require.NoError(t, err)
		_, err = svc.RespondToRequest(ctx, fr.ID, to, StatusAccepted)
		require.NoError(t, err)
	}
	befriend(ann, bob)
	befriend(cid, ann)

	// pending and rejected requests do not make friends
	_, err := svc.SendRequest(ctx, dan, ann.ID.String())
	require.NoError(t, err)

	ids := func(u *user.User) []uuid.UUID {
		friends, count, err := svc.ListFriends(ctx, u, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, len(friends), count)
		out := make([]uuid.UUID, 0, len(friends))
		for _, f := range friends {
			out = append(out, f.ID)
		}
		return out
	}

	assert.ElementsMatch(t, []uuid.UUID{bob.ID, cid.ID}, ids(ann))
	assert.Equal(t, []uuid.UUID{ann.ID}, ids(bob))
	assert.Equal(t, []uuid.UUID{ann.ID}, ids(cid))
	assert.Empty(t, ids(dan))

	// deleted friends drop out of the list
	bob.IsDeleted = true
	assert.Equal(t, []uuid.UUID{cid.ID}, ids(ann))
}

func TestListPending(t *testing.T) {
	svc, store, clock := newTestService(10)
	ctx := context.Background()
	ann, bob, cid := store.addUser("ann"), store.addUser("bob"), store.addUser("cid")

	first, err := svc.SendRequest(ctx, bob, ann.ID.String())
	require.NoError(t, err)
	clock.Advance(time.Second)
	second, err := svc.SendRequest(ctx, cid, ann.ID.String())
	require.NoError(t, err)
	_, err = svc.SendRequest(ctx, ann, bob.ID.String())
	require.NoError(t, err)

	pending, err := svc.ListPending(ctx, ann)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, PendingRequest{RequestID: second.ID, Name: "cid", Email: "cid@example.com"}, pending[0])
	assert.Equal(t, first.ID, pending[1].RequestID)

	_, err = svc.RespondToRequest(ctx, first.ID, ann, StatusRejected)
	require.NoError(t, err)
	pending, err = svc.ListPending(ctx, ann)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestDescribeWindow(t *testing.T) {
	assert.Equal(t, "a minute", describeWindow(time.Minute))
	assert.Equal(t, "5 minutes", describeWindow(5*time.Minute))
	assert.Equal(t, "an hour", describeWindow(time.Hour))
	assert.Equal(t, "2 hours", describeWindow(2*time.Hour))
	assert.Equal(t, "90 seconds", describeWindow(90*time.Second))
}

func TestFriendship_Other(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	f := Friendship{User1ID: a, User2ID: b}
	assert.Equal(t, b, f.Other(a))
	assert.Equal(t, a, f.Other(b))
}
