// Package http exposes the bakery workflow over a JSON API served by echo.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"bakery/internal/core/application/usecases/commands"
	"bakery/internal/core/application/usecases/queries"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/metrics"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/oapi-codegen/runtime"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const apiPrefix = "/api/v1"

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	RegisterUser      commands.RegisterUserCommandHandler
	CreateOrder       commands.CreateOrderCommandHandler
	UpdateOrderStatus commands.UpdateOrderStatusCommandHandler
	AssignOrder       commands.AssignOrderCommandHandler
	CancelOrder       commands.CancelOrderCommandHandler
	SubmitReview      commands.SubmitReviewCommandHandler
	SendMessage       commands.SendMessageCommandHandler
	SubmitApplication commands.SubmitApplicationCommandHandler
	DecideApplication commands.DecideApplicationCommandHandler

	GetOrdersForActor queries.GetOrdersForActorQueryHandler
	GetOrder          queries.GetOrderQueryHandler
	GetMessages       queries.GetMessagesQueryHandler
	GetApplications   queries.GetApplicationsQueryHandler
	GetBakerStats     queries.GetBakerStatsQueryHandler
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	h       Handlers
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewServer(handlers Handlers, m *metrics.Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{h: handlers, metrics: m, logger: logger}
}

// Router builds the echo instance serving the API, health, metrics and
// the Swagger UI. The limiter applies to /api/v1 only; nil disables it.
func (s *Server) Router(doc *openapi3.T, limiter *RateLimiter) (*echo.Echo, error) {
	validate, err := RequestValidator(doc)
	if err != nil {
		return nil, fmt.Errorf("build request validator: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler(s.logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	if s.metrics != nil {
		e.Use(s.metrics.Middleware())
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if s.metrics != nil {
		e.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group(apiPrefix, Authenticate(isRegistration))
	if limiter != nil {
		v1.Use(limiter.Middleware())
	}
	v1.Use(validate)
	s.register(v1)
	return e, nil
}

func isRegistration(c echo.Context) bool {
	return c.Request().Method == http.MethodPost && c.Path() == apiPrefix+"/users"
}

func (s *Server) register(g *echo.Group) {
	g.POST("/users", s.RegisterUser)

	g.GET("/orders", s.ListOrders)
	g.POST("/orders", s.CreateOrder)
	g.GET("/orders/:orderId", s.GetOrder)
	g.POST("/orders/:orderId/status", s.UpdateOrderStatus)
	g.POST("/orders/:orderId/assignment", s.AssignOrder)
	g.POST("/orders/:orderId/cancellation", s.CancelOrder)
	g.POST("/orders/:orderId/review", s.SubmitReview)
	g.GET("/orders/:orderId/messages", s.ListOrderMessages)

	g.GET("/messages", s.ListMessages)
	g.POST("/messages", s.SendMessage)

	g.GET("/applications", s.ListApplications)
	g.POST("/applications", s.SubmitApplication)
	g.POST("/applications/:applicationId/decision", s.DecideApplication)

	g.GET("/bakers/:bakerId/stats", s.GetBakerStats)
}

func (s *Server) record(command string, err error) {
	if s.metrics != nil {
		s.metrics.RecordCommand(command, err)
	}
}

func pathID(c echo.Context, name string) (kernel.ID, error) {
	var raw int64
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid %s: %s", name, err))
	}
	return kernel.NewID(raw)
}

func bindBody(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return nil
}
