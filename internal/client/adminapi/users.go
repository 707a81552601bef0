package adminapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/fleetdesk/internal/dto"
)

type UserService struct{ base }

func (s *UserService) List(ctx context.Context, q dto.UserListQuery) (dto.Page[dto.User], error) {
	v, err := checked(q)
	if err != nil {
		return dto.Page[dto.User]{}, err
	}
	return get[dto.Page[dto.User]](ctx, s.base, "/admin/users", v)
}

func (s *UserService) Get(ctx context.Context, id string) (dto.User, error) {
	return get[dto.User](ctx, s.base, "/admin/users/"+url.PathEscape(id), nil)
}

func (s *UserService) UpdateRole(ctx context.Context, id string, req dto.UpdateRoleRequest) (dto.User, error) {
	return call[dto.User](ctx, s.base, http.MethodPatch, "/admin/users/"+url.PathEscape(id)+"/role", nil, req)
}

func (s *UserService) SetStatus(ctx context.Context, id string, req dto.SetStatusRequest) (dto.User, error) {
	return call[dto.User](ctx, s.base, http.MethodPatch, "/admin/users/"+url.PathEscape(id)+"/status", nil, req)
}
