package httputil

import (
	"encoding/json"
	"log"
	"net/http"
)

// ResponseType is the "type" field of every envelope
type ResponseType string

const (
	TypeSuccess ResponseType = "success"
	TypeFailure ResponseType = "failure"
	TypeError   ResponseType = "error"
)

const (
	MessageUnauthorized  = "Unauthorized"
	DetailTokenInvalid   = "Token Expired or Invalid"
	MessageInternalError = "An unexpected error occurred"
)

// Envelope is the response body shared by every endpoint.
type Envelope struct {
	Message string       `json:"message"`
	Data    any          `json:"data"`
	Type    ResponseType `json:"type"`
	Errors  any          `json:"errors"`
	// Error carries the raw internal error outside production only.
	Error string `json:"error,omitempty"`
}

// Detail is the errors payload for domain rejections
type Detail struct {
	Detail string `json:"detail"`
}

// RespondJSON sends a JSON response with the given status code.
// Logs encoding errors to avoid silent failures.
func RespondJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("ERROR: failed to encode JSON response: %v", err)
	}
}

// RespondSuccess writes a success envelope. A nil data becomes {}.
func RespondSuccess(w http.ResponseWriter, statusCode int, message string, data any) {
	RespondJSON(w, Envelope{
		Message: message,
		Data:    orEmpty(data),
		Type:    TypeSuccess,
	}, statusCode)
}

// RespondFailure writes a failure envelope with empty data.
func RespondFailure(w http.ResponseWriter, statusCode int, message string, errs any) {
	RespondJSON(w, Envelope{
		Message: message,
		Data:    struct{}{},
		Type:    TypeFailure,
		Errors:  errs,
	}, statusCode)
}

// RespondUnauthorized writes the normalized 401 envelope used for every
// missing, malformed, expired or revoked credential.
func RespondUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	RespondFailure(w, http.StatusUnauthorized, MessageUnauthorized, Detail{Detail: DetailTokenInvalid})
}

func respondInternalError(w http.ResponseWriter, err error, expose bool) {
	body := Envelope{
		Message: MessageInternalError,
		Data:    struct{}{},
		Type:    TypeError,
	}
	if expose && err != nil {
		body.Error = err.Error()
	}
	RespondJSON(w, body, http.StatusInternalServerError)
}

func orEmpty(data any) any {
	if data == nil {
		return struct{}{}
	}
	return data
}
