package friendship

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/redmonkez12/go-social-api/internal/apperror"
	"github.com/redmonkez12/go-social-api/internal/httputil"
	"github.com/redmonkez12/go-social-api/internal/user"
)

const (
	msgRequestSent      = "Friend request sent"
	msgSendFailed       = "Failed to send friend request"
	msgRespondFailed    = "Failed to accept/reject friend request"
	msgPendingFetched   = "Pending friend requests fetched successfully"
	msgPendingFailed    = "Pending Friend Requests Failed"
	msgFriendsFetched   = "User Friends List Fetched Successfully"
	msgFriendsFailed    = "User Friends List Failed"
	requestIDParam      = "id"
	noAuthenticatedUser = "no authenticated user"
)

// Handler serves the friend request endpoints
type Handler struct {
	service   *Service
	paginator httputil.Paginator
}

func NewHandler(service *Service, paginator httputil.Paginator) *Handler {
	return &Handler{service: service, paginator: paginator}
}

// SendRequestBody is the body of POST /user/friend-requests/
type SendRequestBody struct {
	ReceiverID string `json:"receiver_id"`
}

// RespondBody is the body of PUT /user/friend-request/{id}/
type RespondBody struct {
	Status string `json:"status"`
}

// SendRequest sends a friend request from the caller
// @Summary      Send a friend request
// @Description  At most three requests per sender per minute. One request per ordered pair.
// @Tags         friends
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body SendRequestBody true "Receiver"
// @Success      201 {object} httputil.Envelope
// @Failure      400 {object} httputil.Envelope "Invalid input, self request, rate limited or duplicate"
// @Failure      401 {object} httputil.Envelope "Unauthorized"
// @Router       /user/friend-requests/ [post]
func (h *Handler) SendRequest(w http.ResponseWriter, r *http.Request) {
	httputil.Handle(msgSendFailed, h.sendRequest)(w, r)
}

func (h *Handler) sendRequest(w http.ResponseWriter, r *http.Request) error {
	sender, ok := user.FromContext(r.Context())
	if !ok {
		return apperror.Unauthorized(noAuthenticatedUser)
	}

	var body SendRequestBody
	if err := httputil.DecodeJSON(r, &body); err != nil {
		return err
	}

	if _, err := h.service.SendRequest(r.Context(), sender, body.ReceiverID); err != nil {
		return err
	}

	httputil.RespondSuccess(w, http.StatusCreated, msgRequestSent, nil)
	return nil
}

// RespondToRequest accepts or rejects a request addressed to the caller
// @Summary      Accept or reject a friend request
// @Tags         friends
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string      true "Friend request ID"
// @Param        request body RespondBody true "accepted or rejected"
// @Success      200 {object} httputil.Envelope
// @Failure      400 {object} httputil.Envelope "Invalid status, not found, forbidden or already answered"
// @Failure      401 {object} httputil.Envelope "Unauthorized"
// @Router       /user/friend-request/{id}/ [put]
func (h *Handler) RespondToRequest(w http.ResponseWriter, r *http.Request) {
	httputil.Handle(msgRespondFailed, h.respondToRequest)(w, r)
}

func (h *Handler) respondToRequest(w http.ResponseWriter, r *http.Request) error {
	responder, ok := user.FromContext(r.Context())
	if !ok {
		return apperror.Unauthorized(noAuthenticatedUser)
	}

	requestID, err := uuid.Parse(chi.URLParam(r, requestIDParam))
	if err != nil {
		return apperror.NotFound(detailRequestNotFound)
	}

	var body RespondBody
	if err := httputil.DecodeJSON(r, &body); err != nil {
		return err
	}

	req, err := h.service.RespondToRequest(r.Context(), requestID, responder, Status(body.Status))
	if err != nil {
		return err
	}

	httputil.RespondSuccess(w, http.StatusOK, "Friend request "+string(req.Status), nil)
	return nil
}

// ListPending lists pending requests addressed to the caller
// @Summary      Pending friend requests
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} httputil.Envelope{data=[]PendingRequest}
// @Failure      401 {object} httputil.Envelope "Unauthorized"
// @Router       /user/friend-requests-pending/ [get]
func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	httputil.Handle(msgPendingFailed, h.listPending)(w, r)
}

func (h *Handler) listPending(w http.ResponseWriter, r *http.Request) error {
	receiver, ok := user.FromContext(r.Context())
	if !ok {
		return apperror.Unauthorized(noAuthenticatedUser)
	}

	pending, err := h.service.ListPending(r.Context(), receiver)
	if err != nil {
		return err
	}
	if pending == nil {
		pending = []PendingRequest{}
	}

	httputil.RespondSuccess(w, http.StatusOK, msgPendingFetched, pending)
	return nil
}

// ListFriends lists the caller's friends
// @Summary      Friends list
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        page      query int false "Page number"
// @Param        page_size query int false "Page size (max 10)"
// @Success      200 {object} httputil.Envelope{data=httputil.Page[user.Summary]}
// @Failure      400 {object} httputil.Envelope "Invalid page"
// @Failure      401 {object} httputil.Envelope "Unauthorized"
// @Router       /user/friends-list/ [get]
func (h *Handler) ListFriends(w http.ResponseWriter, r *http.Request) {
	httputil.Handle(msgFriendsFailed, h.listFriends)(w, r)
}

func (h *Handler) listFriends(w http.ResponseWriter, r *http.Request) error {
	current, ok := user.FromContext(r.Context())
	if !ok {
		return apperror.Unauthorized(noAuthenticatedUser)
	}

	page, err := h.paginator.Parse(r)
	if err != nil {
		return err
	}

	friends, count, err := h.service.ListFriends(r.Context(), current, page.Limit(), page.Offset())
	if err != nil {
		return err
	}

	httputil.RespondSuccess(w, http.StatusOK, msgFriendsFetched, httputil.NewPage(r, page, count, user.Summaries(friends)))
	return nil
}
