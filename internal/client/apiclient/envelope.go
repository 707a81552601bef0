package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/fleetdesk/internal/common"
)

// Envelope is the response wrapper used by every endpoint.
type Envelope struct {
	StatusCode int             `json:"statusCode,omitempty"`
	Message    string          `json:"message,omitempty"`
	Code       string          `json:"code,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
}

// APIError is a non-2xx response. Body holds the response body exactly as
// received so callers can show or inspect whatever the server sent.
type APIError struct {
	Status   int
	Envelope Envelope
	Body     json.RawMessage
	Header   http.Header
}

// Message returns the server-authored message, or the HTTP status text when
// the server sent none.
func (e *APIError) Message() string {
	if e.Envelope.Message != "" {
		return e.Envelope.Message
	}
	if txt := http.StatusText(e.Status); txt != "" {
		return txt
	}
	return fmt.Sprintf("status %d", e.Status)
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message())
}

// Is maps the response onto the shared sentinels so callers can write
// errors.Is(err, common.ErrorNotFound).
func (e *APIError) Is(target error) bool {
	switch e.Envelope.Code {
	case common.CodeTokenExpired:
		if target == common.ErrTokenExpired {
			return true
		}
	case common.CodeTokenInvalid:
		if target == common.ErrInvalidToken {
			return true
		}
	case common.CodeTokenMissing:
		if target == common.ErrTokenMissing {
			return true
		}
	}

	switch e.Status {
	case http.StatusUnauthorized:
		return target == common.ErrorUnauthorized
	case http.StatusForbidden:
		return target == common.ErrorForbidden
	case http.StatusNotFound:
		return target == common.ErrorNotFound
	case http.StatusConflict:
		return target == common.ErrorAlreadyExists
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return target == common.ErrorValidation
	}
	if e.Status >= 500 {
		return target == common.ErrorInternal
	}
	return false
}

// AsAPIError unwraps err to an *APIError if there is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// UserMessage returns what a console should show for err: the server's
// message when it sent one, fallback otherwise.
func UserMessage(err error, fallback string) string {
	if apiErr, ok := AsAPIError(err); ok && apiErr.Envelope.Message != "" {
		return apiErr.Envelope.Message
	}
	return fallback
}

func decodeEnvelope(body []byte) (Envelope, bool) {
	var env Envelope
	if len(body) == 0 {
		return env, false
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return Envelope{}, false
	}
	return env, true
}
