package adminapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/fleetdesk/internal/dto"
)

type PromotionService struct{ base }

func (s *PromotionService) List(ctx context.Context, q dto.ListQuery) (dto.Page[dto.Promotion], error) {
	v, err := checked(q)
	if err != nil {
		return dto.Page[dto.Promotion]{}, err
	}
	return get[dto.Page[dto.Promotion]](ctx, s.base, "/admin/promotions", v)
}

func (s *PromotionService) Create(ctx context.Context, req dto.PromotionRequest) (dto.Promotion, error) {
	return call[dto.Promotion](ctx, s.base, http.MethodPost, "/admin/promotions", nil, req)
}

func (s *PromotionService) Update(ctx context.Context, id string, req dto.PromotionRequest) (dto.Promotion, error) {
	return call[dto.Promotion](ctx, s.base, http.MethodPut, "/admin/promotions/"+url.PathEscape(id), nil, req)
}

func (s *PromotionService) Delete(ctx context.Context, id string) error {
	return s.c.Delete(ctx, "/admin/promotions/"+url.PathEscape(id), nil, nil)
}
