package httputil

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/redmonkez12/go-social-api/internal/apperror"
	"github.com/redmonkez12/go-social-api/internal/logging"
)

// NonFieldErrors is the key for validation errors not tied to one field
const NonFieldErrors = "non_field_errors"

// ValidationError carries field-level messages for a rejected request body.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError(field, message string) *ValidationError {
	e := &ValidationError{}
	e.Add(field, message)
	return e
}

func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// HandlerFunc is an HTTP handler that reports failure through its return value.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle adapts fn to http.HandlerFunc. Any error fn returns is written with
// WriteError using failureMessage as the envelope message.
func Handle(failureMessage string, fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			WriteError(w, r, failureMessage, err)
		}
	}
}

// WriteError maps err to a status code and envelope:
// validation and domain errors are 400, Unauthorized is 401 and the rest 500.
func WriteError(w http.ResponseWriter, r *http.Request, failureMessage string, err error) {
	logger := logging.GetLoggerFromContext(r.Context())

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		logger.Warn("request validation failed", "error", validationErr.Error())
		RespondFailure(w, http.StatusBadRequest, failureMessage, validationErr.Fields)
		return
	}

	var appErr *apperror.Error
	switch kind := apperror.KindOf(err); {
	case kind == apperror.KindUnauthorized:
		logger.WithError(err).Warn("unauthorized")
		RespondUnauthorized(w)
		return
	case kind != apperror.KindInternal && errors.As(err, &appErr):
		logger.Warn("request rejected", "kind", string(kind), "detail", appErr.Detail)
		RespondFailure(w, http.StatusBadRequest, failureMessage, Detail{Detail: appErr.Detail})
		return
	}

	logger.WithError(err).Error("unexpected error")
	respondInternalError(w, err, exposeErrors(r.Context()))
}

type exposeErrorsKey struct{}

// ExposeErrors makes 500 responses include the raw error text. Enable in development only.
func ExposeErrors(enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), exposeErrorsKey{}, enabled)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func exposeErrors(ctx context.Context) bool {
	enabled, _ := ctx.Value(exposeErrorsKey{}).(bool)
	return enabled
}
