package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/fleetdesk/internal/common"
	"github.com/dmitrijs2005/fleetdesk/internal/logging"
	"github.com/labstack/echo/v4"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps known
// errors to their status and code, logs unexpected ones without leaking
// details, and always renders the envelope.
func NewHTTPErrorHandler(log logging.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		ae := resolveError(err)
		if ae.status >= http.StatusInternalServerError {
			log.Error(c.Request().Context(), "unhandled error",
				"method", c.Request().Method, "path", c.Path(), "error", err)
		}
		if ae.challenge != "" {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, ae.challenge)
		}

		body := envelope{StatusCode: ae.status, Message: ae.message, Code: ae.code}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(ae.status)
			return
		}
		_ = c.JSON(ae.status, body)
	}
}

func resolveError(err error) *apiError {
	var ae *apiError
	if errors.As(err, &ae) {
		return ae
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return newAPIError(he.Code, codeForStatus(he.Code), fmt.Sprintf("%v", he.Message))
	}

	switch {
	case errors.Is(err, common.ErrorValidation):
		msg := strings.TrimPrefix(err.Error(), common.ErrorValidation.Error()+": ")
		return newAPIError(http.StatusBadRequest, common.CodeValidation, msg)
	case errors.Is(err, common.ErrorNotFound):
		return newAPIError(http.StatusNotFound, common.CodeNotFound, "Not found")
	case errors.Is(err, common.ErrorAlreadyExists):
		return newAPIError(http.StatusConflict, common.CodeConflict, err.Error())
	case errors.Is(err, common.ErrorForbidden):
		return newAPIError(http.StatusForbidden, common.CodeForbidden, "Forbidden")
	case errors.Is(err, common.ErrorUnauthorized):
		return newAPIError(http.StatusUnauthorized, common.CodeUnauthorized, "Unauthorized")
	}

	return newAPIError(http.StatusInternalServerError, common.CodeInternal, "Internal server error")
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusRequestEntityTooLarge:
		return common.CodeValidation
	case http.StatusUnauthorized:
		return common.CodeUnauthorized
	case http.StatusForbidden:
		return common.CodeForbidden
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return common.CodeNotFound
	case http.StatusConflict:
		return common.CodeConflict
	}
	if status >= http.StatusInternalServerError {
		return common.CodeInternal
	}
	return ""
}

// notFound turns common.ErrorNotFound into a 404 naming what is missing.
func notFound(what string, err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return newAPIError(http.StatusNotFound, common.CodeNotFound, what+" not found")
	}
	return err
}
