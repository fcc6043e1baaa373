package friendship

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/redmonkez12/go-social-api/internal/user"
)

// memStore is an in-memory Store. Transactions run concurrently with
// read-uncommitted visibility. LockByID takes a per-user lock held until the
// transaction ends, and a failed transaction undoes its own writes.
type memStore struct {
	mu          sync.Mutex
	users       map[uuid.UUID]*user.User
	userLocks   map[uuid.UUID]*sync.Mutex
	requests    []FriendRequest
	friendships []Friendship

	// failFriendshipCreate makes every friendship insert fail
	failFriendshipCreate error
	// countDelay stalls CountSentSince after counting, widening the window
	// between the rate limit check and the insert
	countDelay time.Duration
}

func newMemStore() *memStore {
	return &memStore{
		users:     make(map[uuid.UUID]*user.User),
		userLocks: make(map[uuid.UUID]*sync.Mutex),
	}
}

func (m *memStore) addUser(name string) *user.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := &user.User{
		ID:        uuid.New(),
		Name:      name,
		Email:     name + "@example.com",
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	m.users[u.ID] = u
	return u
}

// memTx collects the locks and undo steps of one transaction
type memTx struct {
	locks []*sync.Mutex
	undo  []func()
}

// record queues an undo step. Outside a transaction writes are final.
func (tx *memTx) record(undo func()) {
	if tx != nil {
		tx.undo = append(tx.undo, undo)
	}
}

func (m *memStore) Repos() Repos {
	return m.reposFor(nil)
}

func (m *memStore) reposFor(tx *memTx) Repos {
	return Repos{
		Requests:    memRequests{m: m, tx: tx},
		Friendships: memFriendships{m: m, tx: tx},
		Users:       memUsers{m: m, tx: tx},
	}
}

func (m *memStore) WithinTx(ctx context.Context, fn func(ctx context.Context, r Repos) error) (err error) {
	tx := &memTx{}

	rollback := func() {
		m.mu.Lock()
		for i := len(tx.undo) - 1; i >= 0; i-- {
			tx.undo[i]()
		}
		m.mu.Unlock()
	}

	defer func() {
		for i := len(tx.locks) - 1; i >= 0; i-- {
			tx.locks[i].Unlock()
		}
	}()

	defer func() {
		if p := recover(); p != nil {
			rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, m.reposFor(tx)); err != nil {
		rollback()
		return err
	}
	return nil
}

func (m *memStore) requestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

func (m *memStore) friendshipCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.friendships)
}

type memUsers struct {
	m  *memStore
	tx *memTx
}

func (r memUsers) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[id]
	if !ok || u.IsDeleted {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (r memUsers) LockByID(_ context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	if _, ok := r.m.users[id]; !ok {
		r.m.mu.Unlock()
		return user.ErrNotFound
	}
	lock, ok := r.m.userLocks[id]
	if !ok {
		lock = &sync.Mutex{}
		r.m.userLocks[id] = lock
	}
	r.m.mu.Unlock()

	lock.Lock()
	if r.tx == nil {
		lock.Unlock()
		return nil
	}
	r.tx.locks = append(r.tx.locks, lock)
	return nil
}

type memRequests struct {
	m  *memStore
	tx *memTx
}

func (r memRequests) Create(_ context.Context, senderID, receiverID uuid.UUID, at time.Time) (*FriendRequest, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, fr := range r.m.requests {
		if fr.SenderID == senderID && fr.ReceiverID == receiverID {
			return nil, ErrDuplicateRequest
		}
	}
	fr := FriendRequest{
		ID:         uuid.New(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     StatusPending,
		CreatedAt:  at,
		UpdatedAt:  at,
	}
	r.m.requests = append(r.m.requests, fr)
	r.tx.record(func() { r.m.requests = removeRequest(r.m.requests, fr.ID) })
	return &fr, nil
}

func (r memRequests) GetByID(_ context.Context, id uuid.UUID) (*FriendRequest, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, fr := range r.m.requests {
		if fr.ID == id {
			out := fr
			return &out, nil
		}
	}
	return nil, ErrRequestNotFound
}

func (r memRequests) CountSentSince(_ context.Context, senderID uuid.UUID, since time.Time) (int, error) {
	r.m.mu.Lock()
	n := 0
	for _, fr := range r.m.requests {
		if fr.SenderID == senderID && !fr.CreatedAt.Before(since) {
			n++
		}
	}
	r.m.mu.Unlock()

	if r.m.countDelay > 0 {
		time.Sleep(r.m.countDelay)
	}
	return n, nil
}

func (r memRequests) ExistsForPair(_ context.Context, senderID, receiverID uuid.UUID) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, fr := range r.m.requests {
		if fr.SenderID == senderID && fr.ReceiverID == receiverID {
			return true, nil
		}
	}
	return false, nil
}

func (r memRequests) TransitionFromPending(_ context.Context, id uuid.UUID, status Status, at time.Time) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i := range r.m.requests {
		if r.m.requests[i].ID == id && r.m.requests[i].Status == StatusPending {
			prev := r.m.requests[i]
			r.m.requests[i].Status = status
			r.m.requests[i].UpdatedAt = at
			r.tx.record(func() {
				for j := range r.m.requests {
					if r.m.requests[j].ID == prev.ID {
						r.m.requests[j] = prev
					}
				}
			})
			return true, nil
		}
	}
	return false, nil
}

func (r memRequests) ListPendingForReceiver(_ context.Context, receiverID uuid.UUID) ([]PendingRequest, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []PendingRequest
	for i := len(r.m.requests) - 1; i >= 0; i-- {
		fr := r.m.requests[i]
		sender, ok := r.m.users[fr.SenderID]
		if fr.ReceiverID != receiverID || fr.Status != StatusPending || !ok || sender.IsDeleted {
			continue
		}
		out = append(out, PendingRequest{RequestID: fr.ID, Name: sender.Name, Email: sender.Email})
	}
	return out, nil
}

type memFriendships struct {
	m  *memStore
	tx *memTx
}

func (r memFriendships) Create(_ context.Context, user1ID, user2ID uuid.UUID, at time.Time) (*Friendship, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failFriendshipCreate != nil {
		return nil, r.m.failFriendshipCreate
	}
	for _, f := range r.m.friendships {
		if (f.User1ID == user1ID && f.User2ID == user2ID) || (f.User1ID == user2ID && f.User2ID == user1ID) {
			return nil, ErrDuplicateFriendship
		}
	}
	f := Friendship{ID: uuid.New(), User1ID: user1ID, User2ID: user2ID, CreatedAt: at}
	r.m.friendships = append(r.m.friendships, f)
	r.tx.record(func() {
		for i := range r.m.friendships {
			if r.m.friendships[i].ID == f.ID {
				r.m.friendships = append(r.m.friendships[:i:i], r.m.friendships[i+1:]...)
				return
			}
		}
	})
	return &f, nil
}

func (r memFriendships) ListFriends(_ context.Context, userID uuid.UUID, limit, offset int) ([]user.User, int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var all []user.User
	for i := len(r.m.friendships) - 1; i >= 0; i-- {
		f := r.m.friendships[i]
		if f.User1ID != userID && f.User2ID != userID {
			continue
		}
		other, ok := r.m.users[f.Other(userID)]
		if !ok || other.IsDeleted {
			continue
		}
		all = append(all, *other)
	}

	start := min(offset, len(all))
	end := min(offset+limit, len(all))
	return all[start:end], len(all), nil
}

func removeRequest(requests []FriendRequest, id uuid.UUID) []FriendRequest {
	for i := range requests {
		if requests[i].ID == id {
			return append(requests[:i:i], requests[i+1:]...)
		}
	}
	return requests
}
