package user

import (
	"context"
	"fmt"
	"net/http"

	"github.com/redmonkez12/go-social-api/internal/apperror"
	"github.com/redmonkez12/go-social-api/internal/httputil"
)

const (
	msgProfileFetched = "User profile fetched successfully"
	msgProfileFailed  = "User Profile Failed"
	msgSearchFetched  = "User Fetched Successfully"
	msgSearchFailed   = "User Search Failed"
)

// Searcher finds users for the search endpoint
type Searcher interface {
	Search(ctx context.Context, query string, limit, offset int) ([]User, int, error)
}

// Handler serves the profile and search endpoints
type Handler struct {
	users     Searcher
	paginator httputil.Paginator
}

func NewHandler(users Searcher, paginator httputil.Paginator) *Handler {
	return &Handler{users: users, paginator: paginator}
}

// Profile returns the authenticated user's profile
// @Summary      Current user profile
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} httputil.Envelope{data=Profile}
// @Failure      401 {object} httputil.Envelope "Unauthorized"
// @Router       /user/detail/ [get]
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	httputil.Handle(msgProfileFailed, h.profile)(w, r)
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) error {
	current, ok := FromContext(r.Context())
	if !ok {
		return apperror.Unauthorized("no authenticated user")
	}

	httputil.RespondSuccess(w, http.StatusOK, msgProfileFetched, current.Profile())
	return nil
}

// Search finds users by exact email or partial name
// @Summary      Search users
// @Description  Matches the exact email or any part of the name, ignoring case. An empty query lists everyone.
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Param        search    query string false "Email or name fragment"
// @Param        page      query int    false "Page number"
// @Param        page_size query int    false "Page size (max 10)"
// @Success      200 {object} httputil.Envelope{data=httputil.Page[Summary]}
// @Failure      400 {object} httputil.Envelope "Invalid page"
// @Failure      401 {object} httputil.Envelope "Unauthorized"
// @Router       /user/search/ [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	httputil.Handle(msgSearchFailed, h.search)(w, r)
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) error {
	page, err := h.paginator.Parse(r)
	if err != nil {
		return err
	}

	users, count, err := h.users.Search(r.Context(), r.URL.Query().Get("search"), page.Limit(), page.Offset())
	if err != nil {
		return fmt.Errorf("failed to search users: %w", err)
	}

	httputil.RespondSuccess(w, http.StatusOK, msgSearchFetched, httputil.NewPage(r, page, count, Summaries(users)))
	return nil
}
