package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/fleetdesk/internal/common"
	"github.com/dmitrijs2005/fleetdesk/internal/dto"
	"github.com/labstack/echo/v4"
)

// listQuery reads the paging and search parameters shared by list routes.
func listQuery(c echo.Context) (dto.ListQuery, error) {
	var q dto.ListQuery
	err := echo.QueryParamsBinder(c).
		Int("page", &q.Page).
		Int("limit", &q.Limit).
		String("search", &q.Search).
		BindError()
	return q, queryError(err)
}

func (h *handler) listUsers(c echo.Context) error {
	lq, err := listQuery(c)
	if err != nil {
		return err
	}
	q := dto.UserListQuery{ListQuery: lq, Role: c.QueryParam("role")}
	if err := c.Validate(q); err != nil {
		return err
	}

	page, err := h.users.List(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, page)
}

func (h *handler) getUser(c echo.Context) error {
	user, err := h.users.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return notFound("User", err)
	}
	return respond(c, http.StatusOK, user.DTO())
}

func (h *handler) updateUserRole(c echo.Context) error {
	var req dto.UpdateRoleRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	id := c.Param("id")
	if id == userID(c) {
		return newAPIError(http.StatusBadRequest, common.CodeValidation, "You cannot change your own role")
	}
	user, err := h.users.UpdateRole(c.Request().Context(), id, req.Role)
	if err != nil {
		return notFound("User", err)
	}
	return respond(c, http.StatusOK, user.DTO())
}

func (h *handler) setUserStatus(c echo.Context) error {
	var req dto.SetStatusRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	id := c.Param("id")
	if id == userID(c) {
		return newAPIError(http.StatusBadRequest, common.CodeValidation, "You cannot change your own status")
	}
	user, err := h.users.SetStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return notFound("User", err)
	}
	return respond(c, http.StatusOK, user.DTO())
}

func (h *handler) dashboard(c echo.Context) error {
	total, err := h.users.Count(c.Request().Context())
	if err != nil {
		return err
	}
	stats := h.fleet.Stats()
	stats.TotalUsers = total
	return respond(c, http.StatusOK, stats)
}
