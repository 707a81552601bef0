package adminapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/fleetdesk/internal/dto"
)

type PricingService struct{ base }

func (s *PricingService) Get(ctx context.Context) (dto.Pricing, error) {
	return get[dto.Pricing](ctx, s.base, "/admin/pricing", nil)
}

func (s *PricingService) Update(ctx context.Context, p dto.Pricing) (dto.Pricing, error) {
	return call[dto.Pricing](ctx, s.base, http.MethodPut, "/admin/pricing", nil, p)
}
