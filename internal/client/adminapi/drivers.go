package adminapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/fleetdesk/internal/dto"
)

type DriverService struct{ base }

func (s *DriverService) List(ctx context.Context, q dto.DriverListQuery) (dto.Page[dto.Driver], error) {
	v, err := checked(q)
	if err != nil {
		return dto.Page[dto.Driver]{}, err
	}
	return get[dto.Page[dto.Driver]](ctx, s.base, "/admin/drivers", v)
}

func (s *DriverService) Get(ctx context.Context, id string) (dto.Driver, error) {
	return get[dto.Driver](ctx, s.base, "/admin/drivers/"+url.PathEscape(id), nil)
}

func (s *DriverService) Approve(ctx context.Context, id string) (dto.Driver, error) {
	return apiPost[dto.Driver](ctx, s.base, "/admin/drivers/"+url.PathEscape(id)+"/approve")
}

func (s *DriverService) Suspend(ctx context.Context, id string, req dto.SuspendDriverRequest) (dto.Driver, error) {
	return call[dto.Driver](ctx, s.base, http.MethodPost, "/admin/drivers/"+url.PathEscape(id)+"/suspend", nil, req)
}

// apiPost sends a body-less POST.
func apiPost[T any](ctx context.Context, b base, path string) (T, error) {
	return call[T](ctx, b, http.MethodPost, path, nil, nil)
}
