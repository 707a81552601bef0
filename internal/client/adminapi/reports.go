package adminapi

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/fleetdesk/internal/dto"
	"github.com/dmitrijs2005/fleetdesk/internal/validatex"
)

type ReportService struct{ base }

func (s *ReportService) Revenue(ctx context.Context, period string) (dto.Series, error) {
	return s.series(ctx, "/admin/reports/revenue", period)
}

func (s *ReportService) Orders(ctx context.Context, period string) (dto.Series, error) {
	return s.series(ctx, "/admin/reports/orders", period)
}

func (s *ReportService) series(ctx context.Context, path, period string) (dto.Series, error) {
	q := dto.ReportQuery{Period: period}
	if err := validatex.Struct(q); err != nil {
		return dto.Series{}, err
	}
	return get[dto.Series](ctx, s.base, path, url.Values{"period": {period}})
}

type DashboardService struct{ base }

func (s *DashboardService) Stats(ctx context.Context) (dto.DashboardStats, error) {
	return get[dto.DashboardStats](ctx, s.base, "/admin/dashboard", nil)
}
