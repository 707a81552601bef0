package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/fleetdesk/internal/common"
	"github.com/dmitrijs2005/fleetdesk/internal/validatex"
	"github.com/labstack/echo/v4"
)

// echoValidator lets handlers call c.Validate(req) with the same rules the
// console checks before sending.
type echoValidator struct{}

func (echoValidator) Validate(i any) error {
	return validatex.Struct(i)
}

// bindValid decodes the request body into req and validates it.
func bindValid(c echo.Context, req any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, req); err != nil {
		return newAPIError(http.StatusBadRequest, common.CodeValidation, "Invalid payload")
	}
	return c.Validate(req)
}

// queryError reports a malformed query parameter by name.
func queryError(err error) error {
	if err == nil {
		return nil
	}
	var be *echo.BindingError
	if errors.As(err, &be) {
		return newAPIError(http.StatusBadRequest, common.CodeValidation, fmt.Sprintf("invalid query parameter %s", be.Field))
	}
	return newAPIError(http.StatusBadRequest, common.CodeValidation, "invalid query parameters")
}
