package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/fleetdesk/internal/dto"
	"github.com/labstack/echo/v4"
)

func (h *handler) listDrivers(c echo.Context) error {
	lq, err := listQuery(c)
	if err != nil {
		return err
	}
	q := dto.DriverListQuery{ListQuery: lq, Status: c.QueryParam("status")}
	if err := c.Validate(q); err != nil {
		return err
	}
	return respond(c, http.StatusOK, h.fleet.ListDrivers(q))
}

func (h *handler) getDriver(c echo.Context) error {
	d, err := h.fleet.GetDriver(c.Param("id"))
	if err != nil {
		return notFound("Driver", err)
	}
	return respond(c, http.StatusOK, d)
}

func (h *handler) approveDriver(c echo.Context) error {
	d, err := h.fleet.ApproveDriver(c.Param("id"))
	if err != nil {
		return notFound("Driver", err)
	}
	h.log.Info(c.Request().Context(), "driver approved", "driver", d.ID, "by", userID(c))
	return respond(c, http.StatusOK, d)
}

func (h *handler) suspendDriver(c echo.Context) error {
	var req dto.SuspendDriverRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	d, err := h.fleet.SuspendDriver(c.Param("id"), userID(c), req.Reason)
	if err != nil {
		return notFound("Driver", err)
	}
	h.log.Info(c.Request().Context(), "driver suspended", "driver", d.ID, "by", userID(c))
	return respond(c, http.StatusOK, d)
}

func (h *handler) listOrders(c echo.Context) error {
	var q dto.OrderListQuery
	err := echo.QueryParamsBinder(c).
		Int("page", &q.Page).
		Int("limit", &q.Limit).
		String("search", &q.Search).
		String("status", &q.Status).
		Time("from", &q.From, time.RFC3339).
		Time("to", &q.To, time.RFC3339).
		BindError()
	if err != nil {
		return queryError(err)
	}
	if err := c.Validate(q); err != nil {
		return err
	}
	return respond(c, http.StatusOK, h.fleet.ListOrders(q))
}

func (h *handler) getOrder(c echo.Context) error {
	o, err := h.fleet.GetOrder(c.Param("id"))
	if err != nil {
		return notFound("Order", err)
	}
	return respond(c, http.StatusOK, o)
}

func (h *handler) updateOrderStatus(c echo.Context) error {
	var req dto.UpdateOrderStatusRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	o, err := h.fleet.UpdateOrderStatus(c.Param("id"), req.Status)
	if err != nil {
		return notFound("Order", err)
	}
	return respond(c, http.StatusOK, o)
}

func (h *handler) assignDriver(c echo.Context) error {
	var req dto.AssignDriverRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	o, err := h.fleet.AssignDriver(c.Param("id"), req.DriverID)
	if err != nil {
		return notFound("Order", err)
	}
	return respond(c, http.StatusOK, o)
}

func (h *handler) getPricing(c echo.Context) error {
	return respond(c, http.StatusOK, h.fleet.Pricing())
}

func (h *handler) updatePricing(c echo.Context) error {
	var req dto.Pricing
	if err := bindValid(c, &req); err != nil {
		return err
	}
	return respond(c, http.StatusOK, h.fleet.UpdatePricing(req))
}

func (h *handler) listPromotions(c echo.Context) error {
	q, err := listQuery(c)
	if err != nil {
		return err
	}
	if err := c.Validate(q); err != nil {
		return err
	}
	return respond(c, http.StatusOK, h.fleet.ListPromotions(q))
}

func (h *handler) createPromotion(c echo.Context) error {
	var req dto.PromotionRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	p, err := h.fleet.CreatePromotion(req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, p)
}

func (h *handler) updatePromotion(c echo.Context) error {
	var req dto.PromotionRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	p, err := h.fleet.UpdatePromotion(c.Param("id"), req)
	if err != nil {
		return notFound("Promotion", err)
	}
	return respond(c, http.StatusOK, p)
}

func (h *handler) deletePromotion(c echo.Context) error {
	if err := h.fleet.DeletePromotion(c.Param("id")); err != nil {
		return notFound("Promotion", err)
	}
	return respond(c, http.StatusOK, dto.Message{Message: "Promotion deleted"})
}

func (h *handler) listTickets(c echo.Context) error {
	lq, err := listQuery(c)
	if err != nil {
		return err
	}
	q := dto.TicketListQuery{ListQuery: lq, Status: c.QueryParam("status")}
	if err := c.Validate(q); err != nil {
		return err
	}
	return respond(c, http.StatusOK, h.fleet.ListTickets(q))
}

func (h *handler) getTicket(c echo.Context) error {
	t, err := h.fleet.GetTicket(c.Param("id"))
	if err != nil {
		return notFound("Ticket", err)
	}
	return respond(c, http.StatusOK, t)
}

func (h *handler) replyTicket(c echo.Context) error {
	var req dto.ReplyTicketRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	t, err := h.fleet.ReplyTicket(c.Param("id"), userID(c), req.Body)
	if err != nil {
		return notFound("Ticket", err)
	}
	return respond(c, http.StatusOK, t)
}

func (h *handler) closeTicket(c echo.Context) error {
	t, err := h.fleet.CloseTicket(c.Param("id"))
	if err != nil {
		return notFound("Ticket", err)
	}
	return respond(c, http.StatusOK, t)
}

func (h *handler) report(series func(period string) (dto.Series, error)) echo.HandlerFunc {
	return func(c echo.Context) error {
		q := dto.ReportQuery{Period: c.QueryParam("period")}
		if err := c.Validate(q); err != nil {
			return err
		}
		s, err := series(q.Period)
		if err != nil {
			return err
		}
		return respond(c, http.StatusOK, s)
	}
}
