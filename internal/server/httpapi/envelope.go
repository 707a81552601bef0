package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type envelope struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Code       string `json:"code,omitempty"`
	Data       any    `json:"data"`
}

func respond(c echo.Context, status int, data any) error {
	return c.JSON(status, envelope{StatusCode: status, Message: http.StatusText(status), Data: data})
}

// apiError is a failure with a fixed status, envelope code and message.
type apiError struct {
	status    int
	code      string
	message   string
	challenge string
}

func (e *apiError) Error() string { return e.message }

func newAPIError(status int, code, message string) *apiError {
	return &apiError{status: status, code: code, message: message}
}
