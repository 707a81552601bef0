package adminapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/fleetdesk/internal/dto"
)

type TicketService struct{ base }

func (s *TicketService) List(ctx context.Context, q dto.TicketListQuery) (dto.Page[dto.Ticket], error) {
	v, err := checked(q)
	if err != nil {
		return dto.Page[dto.Ticket]{}, err
	}
	return get[dto.Page[dto.Ticket]](ctx, s.base, "/admin/tickets", v)
}

func (s *TicketService) Get(ctx context.Context, id string) (dto.Ticket, error) {
	return get[dto.Ticket](ctx, s.base, "/admin/tickets/"+url.PathEscape(id), nil)
}

func (s *TicketService) Reply(ctx context.Context, id string, req dto.ReplyTicketRequest) (dto.Ticket, error) {
	return call[dto.Ticket](ctx, s.base, http.MethodPost, "/admin/tickets/"+url.PathEscape(id)+"/reply", nil, req)
}

func (s *TicketService) Close(ctx context.Context, id string) (dto.Ticket, error) {
	return apiPost[dto.Ticket](ctx, s.base, "/admin/tickets/"+url.PathEscape(id)+"/close")
}
