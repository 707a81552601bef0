package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/fleetdesk/internal/logging"
	"github.com/dmitrijs2005/fleetdesk/internal/server/config"
	"github.com/dmitrijs2005/fleetdesk/internal/server/fleet"
	"github.com/dmitrijs2005/fleetdesk/internal/server/users"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	address string
	echo    *echo.Echo
	logger  logging.Logger
}

// New builds the REST server. Metrics are registered on reg and exposed at
// /metrics.
func New(cfg *config.Config, l logging.Logger, us *users.Service, fs *fleet.Store, reg *prometheus.Registry) *Server {
	logger := l.With("module", "http_server")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = echoValidator{}
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger)

	m := newMetrics(reg)
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestContext)
	e.Use(m.middleware)
	e.Use(requestLogger(logger))
	e.Use(middleware.BodyLimit("6M"))

	h := &handler{users: us, fleet: fs, log: logger, basePath: cfg.BasePath}
	registerRoutes(e, h, cfg)

	e.GET("/health", func(c echo.Context) error {
		return respond(c, http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	return &Server{address: cfg.HTTPAddr, echo: e, logger: logger}
}

func registerRoutes(e *echo.Echo, h *handler, cfg *config.Config) {
	authn := Auth([]byte(cfg.SecretKey))
	admin := RBAC("ADMIN")
	staff := RBAC("ADMIN", "DISPATCHER")

	api := e.Group(cfg.BasePath)

	api.POST("/auth/register", h.register)
	api.POST("/auth/login", h.login)
	api.POST("/auth/forgot-password", h.forgotPassword)
	api.POST("/auth/reset-password", h.resetPassword)
	api.POST("/auth/change-password", h.changePassword, authn)
	api.GET("/auth/profile", h.profile, authn)
	api.PATCH("/auth/profile", h.updateProfile, authn)

	api.GET("/admin/dashboard", h.dashboard, authn, admin)

	api.GET("/admin/users", h.listUsers, authn, admin)
	api.GET("/admin/users/:id", h.getUser, authn, admin)
	api.PATCH("/admin/users/:id/role", h.updateUserRole, authn, admin)
	api.PATCH("/admin/users/:id/status", h.setUserStatus, authn, admin)

	api.GET("/admin/drivers", h.listDrivers, authn, staff)
	api.GET("/admin/drivers/:id", h.getDriver, authn, staff)
	api.POST("/admin/drivers/:id/approve", h.approveDriver, authn, staff)
	api.POST("/admin/drivers/:id/suspend", h.suspendDriver, authn, staff)

	api.GET("/admin/orders", h.listOrders, authn, staff)
	api.GET("/admin/orders/:id", h.getOrder, authn, staff)
	api.PATCH("/admin/orders/:id/status", h.updateOrderStatus, authn, staff)
	api.POST("/admin/orders/:id/assign", h.assignDriver, authn, staff)

	api.GET("/admin/pricing", h.getPricing, authn, admin)
	api.PUT("/admin/pricing", h.updatePricing, authn, admin)

	api.GET("/admin/promotions", h.listPromotions, authn, admin)
	api.POST("/admin/promotions", h.createPromotion, authn, admin)
	api.PUT("/admin/promotions/:id", h.updatePromotion, authn, admin)
	api.DELETE("/admin/promotions/:id", h.deletePromotion, authn, admin)

	api.GET("/admin/tickets", h.listTickets, authn, admin)
	api.GET("/admin/tickets/:id", h.getTicket, authn, admin)
	api.POST("/admin/tickets/:id/reply", h.replyTicket, authn, admin)
	api.POST("/admin/tickets/:id/close", h.closeTicket, authn, admin)

	api.GET("/admin/reports/revenue", h.report(h.fleet.Revenue), authn, admin)
	api.GET("/admin/reports/orders", h.report(h.fleet.Orders), authn, admin)

	api.POST("/upload/image", h.uploadImage, authn)
	api.GET("/uploads/*", h.serveUpload)
}

// requestContext puts the request ID on the request context so every log
// line written while serving it carries the ID. The console sends its own
// X-Request-ID, which echo's RequestID middleware keeps.
func requestContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Response().Header().Get(echo.HeaderXRequestID)
		req := c.Request()
		c.SetRequest(req.WithContext(logging.ContextWith(req.Context(), "request_id", id)))
		return next(c)
	}
}

func requestLogger(log logging.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info(c.Request().Context(), "request",
				"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency.String())
			return nil
		},
	})
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		if err := s.echo.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
