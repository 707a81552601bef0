package adminapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/fleetdesk/internal/dto"
)

type OrderService struct{ base }

func (s *OrderService) List(ctx context.Context, q dto.OrderListQuery) (dto.Page[dto.Order], error) {
	v, err := checked(q)
	if err != nil {
		return dto.Page[dto.Order]{}, err
	}
	return get[dto.Page[dto.Order]](ctx, s.base, "/admin/orders", v)
}

func (s *OrderService) Get(ctx context.Context, id string) (dto.Order, error) {
	return get[dto.Order](ctx, s.base, "/admin/orders/"+url.PathEscape(id), nil)
}

func (s *OrderService) UpdateStatus(ctx context.Context, id string, req dto.UpdateOrderStatusRequest) (dto.Order, error) {
	return call[dto.Order](ctx, s.base, http.MethodPatch, "/admin/orders/"+url.PathEscape(id)+"/status", nil, req)
}

func (s *OrderService) Assign(ctx context.Context, id string, req dto.AssignDriverRequest) (dto.Order, error) {
	return call[dto.Order](ctx, s.base, http.MethodPost, "/admin/orders/"+url.PathEscape(id)+"/assign", nil, req)
}
