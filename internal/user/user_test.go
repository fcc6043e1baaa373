package user

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/go-social-api/internal/httputil"
)

type fakeSearcher struct {
	users []User
	err   error

	gotQuery  string
	gotLimit  int
	gotOffset int
}

func (f *fakeSearcher) Search(_ context.Context, query string, limit, offset int) ([]User, int, error) {
	f.gotQuery, f.gotLimit, f.gotOffset = query, limit, offset
	if f.err != nil {
		return nil, 0, f.err
	}
	end := offset + limit
	if offset > len(f.users) {
		offset = len(f.users)
	}
	if end > len(f.users) {
		end = len(f.users)
	}
	return f.users[offset:end], len(f.users), nil
}

func newTestUser(name, email string) User {
	return User{
		ID:        uuid.New(),
		Email:     email,
		Name:      name,
		IsActive:  true,
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandler_Profile(t *testing.T) {
	h := NewHandler(&fakeSearcher{}, httputil.NewPaginator(10, 10))
	u := newTestUser("Ann", "ann@example.com")

	req := httptest.NewRequest(http.MethodGet, "/user/detail/", nil)
	req = req.WithContext(WithUser(req.Context(), &u))
	rec := httptest.NewRecorder()

	h.Profile(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "User profile fetched successfully", body["message"])
	data := body["data"].(map[string]any)
	assert.Equal(t, u.ID.String(), data["id"])
	assert.Equal(t, "Ann", data["name"])
	assert.Equal(t, "ann@example.com", data["email"])
	assert.Equal(t, "2026-03-01T12:00:00Z", data["created_at"])
	assert.NotContains(t, data, "password_hash")
}

func TestHandler_Profile_NoUser(t *testing.T) {
	h := NewHandler(&fakeSearcher{}, httputil.NewPaginator(10, 10))
	rec := httptest.NewRecorder()

	h.Profile(rec, httptest.NewRequest(http.MethodGet, "/user/detail/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized", decode(t, rec)["message"])
}

func TestHandler_Search(t *testing.T) {
	users := make([]User, 0, 12)
	for i := 0; i < 12; i++ {
		users = append(users, newTestUser("user", "u@example.com"))
	}
	searcher := &fakeSearcher{users: users}
	h := NewHandler(searcher, httputil.NewPaginator(10, 10))

	rec := httptest.NewRecorder()
	h.Search(rec, httptest.NewRequest(http.MethodGet, "/user/search/?search=Ann&page=2", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ann", searcher.gotQuery)
	assert.Equal(t, 10, searcher.gotLimit)
	assert.Equal(t, 10, searcher.gotOffset)

	body := decode(t, rec)
	assert.Equal(t, "User Fetched Successfully", body["message"])
	data := body["data"].(map[string]any)
	assert.EqualValues(t, 12, data["count"])
	assert.Nil(t, data["next"])
	assert.NotNil(t, data["previous"])
	assert.Len(t, data["results"], 2)
	first := data["results"].([]any)[0].(map[string]any)
	assert.ElementsMatch(t, []string{"id", "email", "name"}, keys(first))
}

func TestHandler_Search_InvalidPage(t *testing.T) {
	h := NewHandler(&fakeSearcher{}, httputil.NewPaginator(10, 10))

	rec := httptest.NewRecorder()
	h.Search(rec, httptest.NewRequest(http.MethodGet, "/user/search/?page=zero", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, map[string]any{"detail": "Invalid page."}, body["errors"])
}

func TestHandler_Search_StoreFailure(t *testing.T) {
	h := NewHandler(&fakeSearcher{err: errors.New("db down")}, httputil.NewPaginator(10, 10))

	rec := httptest.NewRecorder()
	h.Search(rec, httptest.NewRequest(http.MethodGet, "/user/search/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "error", decode(t, rec)["type"])
}

func TestUser_CanAuthenticate(t *testing.T) {
	u := newTestUser("a", "a@example.com")
	assert.True(t, u.CanAuthenticate())

	u.IsDeleted = true
	assert.False(t, u.CanAuthenticate())

	u.IsDeleted, u.IsActive = false, false
	assert.False(t, u.CanAuthenticate())
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ann@example.com", NormalizeEmail("  Ann@Example.COM "))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off\_now\\`, escapeLike(`50% off_now\`))
}

func TestContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	u := newTestUser("a", "a@example.com")
	got, ok := FromContext(WithUser(context.Background(), &u))
	require.True(t, ok)
	assert.Same(t, &u, got)
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ann Lee", "Ann Lee"},
		{"  Ann   Lee ", "Ann Lee"},
		{"<script>alert(1)</script>Bob", "Bob"},
		{"<b>Carl</b>", "Carl"},
		{"Tom & Jerry", "Tom & Jerry"},
		{"Nul\x00l", "Null"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeName(tt.in), "input %q", tt.in)
	}
}
