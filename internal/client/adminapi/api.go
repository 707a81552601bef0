package adminapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/fleetdesk/internal/client/apiclient"
	"github.com/dmitrijs2005/fleetdesk/internal/validatex"
)

// API groups the endpoint families.
type API struct {
	Auth       *AuthService
	Users      *UserService
	Drivers    *DriverService
	Orders     *OrderService
	Pricing    *PricingService
	Promotions *PromotionService
	Tickets    *TicketService
	Reports    *ReportService
	Dashboard  *DashboardService
	Upload     *UploadService
}

func New(c *apiclient.Client) *API {
	b := base{c: c}
	return &API{
		Auth:       &AuthService{b},
		Users:      &UserService{b},
		Drivers:    &DriverService{b},
		Orders:     &OrderService{b},
		Pricing:    &PricingService{b},
		Promotions: &PromotionService{b},
		Tickets:    &TicketService{b},
		Reports:    &ReportService{b},
		Dashboard:  &DashboardService{b},
		Upload:     &UploadService{b},
	}
}

type base struct {
	c *apiclient.Client
}

func call[T any](ctx context.Context, b base, method, path string, query url.Values, body any) (T, error) {
	if body != nil {
		if err := validatex.Struct(body); err != nil {
			var zero T
			return zero, err
		}
	}
	return apiclient.Fetch[T](ctx, b.c, method, path, query, body)
}

func get[T any](ctx context.Context, b base, path string, query url.Values) (T, error) {
	return call[T](ctx, b, http.MethodGet, path, query, nil)
}

// checked validates a query record and returns its URL values.
func checked(q interface{ Values() url.Values }) (url.Values, error) {
	if err := validatex.Struct(q); err != nil {
		return nil, err
	}
	return q.Values(), nil
}
