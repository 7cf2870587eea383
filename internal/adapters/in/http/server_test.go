package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bakery/api"
	"bakery/cmd"
	httpin "bakery/internal/adapters/in/http"
	"bakery/internal/adapters/out/memory"
	"bakery/internal/adapters/out/notify"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/user"
	"bakery/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ServerSuite struct {
	suite.Suite

	uows *memory.UnitOfWorkFactory
	e    *echo.Echo

	customer  kernel.ID
	stranger  kernel.ID
	mainBaker kernel.ID
	junior    kernel.ID
	admin     kernel.ID
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func (s *ServerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.uows = memory.NewUnitOfWorkFactory(memory.NewStore())

	root := cmd.NewCompositionRoot(cmd.Config{
		PromotionMinCompletedOrders: 1,
		RateLimitRPS:                100,
		RateLimitBurst:              100,
	}, s.uows, notify.NewLogNotifier(logger), metrics.New(), logger)

	doc, err := api.Load()
	s.Require().NoError(err)
	s.Require().NoError(api.RegisterSwagger(doc))

	s.e, err = root.CreateHTTPServer().Router(doc, nil)
	s.Require().NoError(err)

	s.customer = s.seedUser("ann", user.Customer)
	s.stranger = s.seedUser("eve", user.Customer)
	s.mainBaker = s.seedUser("marco", user.MainBaker)
	s.junior = s.seedUser("jules", user.JuniorBaker)
	s.admin = s.seedUser("root", user.Admin)
}

func (s *ServerSuite) seedUser(name string, role user.Role) kernel.ID {
	u, err := user.NewUser(name, name+"@bakery.test", "hash", role, time.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.uows.Create().UserRepository().Add(context.Background(), u))
	return u.ID()
}

func (s *ServerSuite) call(method, path string, actor kernel.ID, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if !actor.IsZero() {
		req.Header.Set(httpin.ActorHeader, actor.String())
	}

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *ServerSuite) decode(rec *httptest.ResponseRecorder, dst any) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func (s *ServerSuite) requireError(rec *httptest.ResponseRecorder, code int, kind string) {
	s.Require().Equal(code, rec.Code, rec.Body.String())
	var body httpin.Error
	s.decode(rec, &body)
	s.Equal(code, body.Code)
	if kind != "" {
		s.Equal(kind, body.Kind)
	}
}

func newOrder() httpin.NewOrder {
	return httpin.NewOrder{
		Items: []httpin.NewItem{
			{ProductID: 7, Name: "Sourdough", Quantity: 2, UnitPrice: "4.50"},
			{ProductID: 9, Name: "Croissant", Quantity: 1, UnitPrice: "2.25"},
		},
		Delivery:      httpin.Delivery{Recipient: "Ann", Phone: "+100200300", Address: "1 Baker St", City: "London"},
		PaymentMethod: "card",
	}
}

func (s *ServerSuite) placeOrder() kernel.ID {
	rec := s.call(http.MethodPost, "/api/v1/orders", s.customer, newOrder())
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var created httpin.Created
	s.decode(rec, &created)
	return kernel.ID(created.ID)
}

func (s *ServerSuite) move(orderID, actor kernel.ID, status string) *httptest.ResponseRecorder {
	return s.call(http.MethodPost, fmt.Sprintf("/api/v1/orders/%d/status", orderID), actor,
		httpin.StatusUpdate{Status: status})
}

func (s *ServerSuite) TestHealth() {
	rec := s.call(http.MethodGet, "/health", 0, nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Healthy", rec.Body.String())
}

func (s *ServerSuite) TestRequiresActorHeader() {
	rec := s.call(http.MethodGet, "/api/v1/orders", 0, nil)
	s.requireError(rec, http.StatusUnauthorized, "http")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set(httpin.ActorHeader, "abc")
	rec = httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	s.requireError(rec, http.StatusUnauthorized, "http")
}

func (s *ServerSuite) TestRegisterUser() {
	body := httpin.NewUser{Name: "Nina", Email: "nina@bakery.test", Password: "correct-horse"}

	rec := s.call(http.MethodPost, "/api/v1/users", 0, body)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var created httpin.Created
	s.decode(rec, &created)
	s.Positive(created.ID)

	stored, err := s.uows.Create().UserRepository().Get(context.Background(), kernel.ID(created.ID))
	s.Require().NoError(err)
	s.Equal(user.Customer, stored.Role())

	rec = s.call(http.MethodPost, "/api/v1/users", 0, body)
	s.requireError(rec, http.StatusConflict, "email_already_registered")

	rec = s.call(http.MethodPost, "/api/v1/users", 0, httpin.NewUser{Name: "Short", Email: "s@bakery.test", Password: "x"})
	s.requireError(rec, http.StatusBadRequest, "")
}

func (s *ServerSuite) TestCreateOrderValidation() {
	invalid := newOrder()
	invalid.Items = nil
	rec := s.call(http.MethodPost, "/api/v1/orders", s.customer, invalid)
	s.requireError(rec, http.StatusBadRequest, "")

	invalid = newOrder()
	invalid.PaymentMethod = "barter"
	rec = s.call(http.MethodPost, "/api/v1/orders", s.customer, invalid)
	s.requireError(rec, http.StatusBadRequest, "")

	invalid = newOrder()
	invalid.Items[0].UnitPrice = "4.505"
	rec = s.call(http.MethodPost, "/api/v1/orders", s.customer, invalid)
	s.requireError(rec, http.StatusBadRequest, "")
}

func (s *ServerSuite) TestOrderLifecycle() {
	orderID := s.placeOrder()
	base := fmt.Sprintf("/api/v1/orders/%d", orderID)

	rec := s.call(http.MethodGet, base, s.customer, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var detail httpin.OrderDetail
	s.decode(rec, &detail)
	s.Equal("pending", detail.Order.Status)
	s.Equal("11.25", detail.Order.Total)
	s.Nil(detail.Order.MainBakerID)

	rec = s.call(http.MethodPost, base+"/assignment", s.mainBaker, httpin.Assignment{})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var o httpin.Order
	s.decode(rec, &o)
	s.Equal("assigned", o.Status)
	s.Require().NotNil(o.MainBakerID)
	s.Equal(s.mainBaker.Int64(), *o.MainBakerID)

	junior := s.junior.Int64()
	rec = s.call(http.MethodPost, base+"/assignment", s.mainBaker, httpin.Assignment{JuniorBakerID: &junior})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.decode(rec, &o)
	s.Require().NotNil(o.JuniorBakerID)
	s.Equal(junior, *o.JuniorBakerID)

	s.requireError(s.move(orderID, s.junior, "delivered"), http.StatusUnprocessableEntity, "invalid_transition")
	s.requireError(s.move(orderID, s.customer, "in_progress"), http.StatusForbidden, "unauthorized")

	for _, next := range []string{"in_progress", "completed", "ready_for_delivery", "delivered"} {
		rec = s.move(orderID, s.junior, next)
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
		s.decode(rec, &o)
		s.Equal(next, o.Status)
	}

	rec = s.call(http.MethodPost, base+"/review", s.customer, httpin.NewReview{Rating: 5, Comment: "lovely crumb"})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	rec = s.call(http.MethodPost, base+"/review", s.customer, httpin.NewReview{Rating: 4})
	s.requireError(rec, http.StatusConflict, "already_reviewed")

	rec = s.call(http.MethodGet, base, s.customer, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.decode(rec, &detail)
	s.Require().NotEmpty(detail.History)
	s.Equal("pending", detail.History[0].To)
	s.Equal("delivered", detail.History[len(detail.History)-1].To)
	s.Equal(s.junior.Int64(), detail.History[len(detail.History)-1].ActorID)
	s.Require().NotNil(detail.Review)
	s.Equal(5, detail.Review.Rating)

	rec = s.call(http.MethodGet, fmt.Sprintf("/api/v1/bakers/%d/stats", s.junior), s.junior, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var stats httpin.BakerStats
	s.decode(rec, &stats)
	s.Equal(1, stats.FulfilledOrders)
	s.Equal(1, stats.ReviewCount)
	s.InDelta(5.0, stats.AverageRating, 0.001)

	rec = s.call(http.MethodGet, fmt.Sprintf("/api/v1/bakers/%d/stats", s.junior), s.mainBaker, nil)
	s.requireError(rec, http.StatusForbidden, "unauthorized")
}

func (s *ServerSuite) TestOrderVisibility() {
	orderID := s.placeOrder()

	var orders []httpin.Order
	rec := s.call(http.MethodGet, "/api/v1/orders", s.mainBaker, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.decode(rec, &orders)
	s.Require().Len(orders, 1)
	s.Equal(orderID.Int64(), orders[0].ID)

	rec = s.call(http.MethodGet, "/api/v1/orders", s.stranger, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.decode(rec, &orders)
	s.Empty(orders)

	rec = s.call(http.MethodGet, fmt.Sprintf("/api/v1/orders/%d", orderID), s.stranger, nil)
	s.requireError(rec, http.StatusForbidden, "unauthorized")

	rec = s.call(http.MethodGet, "/api/v1/orders/999", s.admin, nil)
	s.requireError(rec, http.StatusNotFound, "not_found")

	rec = s.call(http.MethodGet, "/api/v1/orders/0", s.admin, nil)
	s.requireError(rec, http.StatusBadRequest, "")
}

func (s *ServerSuite) TestCancelOrder() {
	open := s.placeOrder()
	claimed := s.placeOrder()

	rec := s.call(http.MethodPost, fmt.Sprintf("/api/v1/orders/%d/assignment", claimed), s.mainBaker, httpin.Assignment{})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = s.call(http.MethodPost, fmt.Sprintf("/api/v1/orders/%d/cancellation", open), s.stranger, nil)
	s.requireError(rec, http.StatusForbidden, "unauthorized")

	rec = s.call(http.MethodPost, fmt.Sprintf("/api/v1/orders/%d/cancellation", open), s.customer, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var o httpin.Order
	s.decode(rec, &o)
	s.Equal("cancelled", o.Status)

	rec = s.call(http.MethodPost, fmt.Sprintf("/api/v1/orders/%d/cancellation", claimed), s.customer, nil)
	s.requireError(rec, http.StatusUnprocessableEntity, "invalid_transition")
}

func (s *ServerSuite) TestJuniorWithoutMainBaker() {
	orderID := s.placeOrder()
	junior := s.junior.Int64()

	rec := s.call(http.MethodPost, fmt.Sprintf("/api/v1/orders/%d/assignment", orderID), s.admin,
		httpin.Assignment{JuniorBakerID: &junior})
	s.requireError(rec, http.StatusUnprocessableEntity, "assignment_precondition")
}

func (s *ServerSuite) TestApplications() {
	rec := s.call(http.MethodPost, "/api/v1/applications", s.customer, httpin.NewApplication{
		CurrentRole: "customer", RequestedRole: "junior_baker", Experience: "home baking", Reason: "love bread",
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var created httpin.Created
	s.decode(rec, &created)

	rec = s.call(http.MethodPost, "/api/v1/applications", s.customer, httpin.NewApplication{
		CurrentRole: "customer", RequestedRole: "junior_baker", Experience: "two years", Reason: "ready to lead",
	})
	s.requireError(rec, http.StatusConflict, "duplicate_pending_application")

	rec = s.call(http.MethodPost, "/api/v1/applications", s.junior, httpin.NewApplication{
		CurrentRole: "customer", RequestedRole: "main_baker", Experience: "two years", Reason: "ready to lead",
	})
	s.requireError(rec, http.StatusUnprocessableEntity, "stale_role")

	rec = s.call(http.MethodPost, "/api/v1/applications", s.junior, httpin.NewApplication{
		CurrentRole: "junior_baker", RequestedRole: "main_baker", Experience: "two years", Reason: "ready to lead",
	})
	s.requireError(rec, http.StatusUnprocessableEntity, "not_eligible")

	decision := fmt.Sprintf("/api/v1/applications/%d/decision", created.ID)
	rec = s.call(http.MethodPost, decision, s.mainBaker, httpin.ApplicationDecision{Decision: "approved"})
	s.requireError(rec, http.StatusForbidden, "unauthorized")

	rec = s.call(http.MethodPost, decision, s.admin, httpin.ApplicationDecision{Decision: "maybe"})
	s.requireError(rec, http.StatusBadRequest, "")

	rec = s.call(http.MethodPost, decision, s.admin, httpin.ApplicationDecision{Decision: "approved"})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var app httpin.Application
	s.decode(rec, &app)
	s.Equal("approved", app.Status)
	s.Require().NotNil(app.ReviewedBy)
	s.Equal(s.admin.Int64(), *app.ReviewedBy)

	promoted, err := s.uows.Create().UserRepository().Get(context.Background(), s.customer)
	s.Require().NoError(err)
	s.Equal(user.JuniorBaker, promoted.Role())

	rec = s.call(http.MethodPost, decision, s.admin, httpin.ApplicationDecision{Decision: "rejected"})
	s.requireError(rec, http.StatusConflict, "already_decided")

	var apps []httpin.Application
	rec = s.call(http.MethodGet, "/api/v1/applications?status=approved", s.admin, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.decode(rec, &apps)
	s.Len(apps, 1)

	rec = s.call(http.MethodGet, "/api/v1/applications", s.stranger, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.decode(rec, &apps)
	s.Empty(apps)
}

func (s *ServerSuite) TestMessages() {
	orderID := s.placeOrder()
	rec := s.call(http.MethodPost, fmt.Sprintf("/api/v1/orders/%d/assignment", orderID), s.mainBaker, httpin.Assignment{})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	about := orderID.Int64()
	rec = s.call(http.MethodPost, "/api/v1/messages", s.customer, httpin.NewMessage{
		RecipientID: s.mainBaker.Int64(), OrderID: &about, Body: "Is it gluten free?",
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.call(http.MethodPost, "/api/v1/messages", s.stranger, httpin.NewMessage{
		RecipientID: s.mainBaker.Int64(), OrderID: &about, Body: "Me too?",
	})
	s.requireError(rec, http.StatusForbidden, "unauthorized")

	var messages []httpin.Message
	rec = s.call(http.MethodGet, fmt.Sprintf("/api/v1/orders/%d/messages", orderID), s.mainBaker, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.decode(rec, &messages)
	s.Require().Len(messages, 1)
	s.Equal("Is it gluten free?", messages[0].Body)

	rec = s.call(http.MethodGet, fmt.Sprintf("/api/v1/messages?peer_id=%d", s.customer), s.mainBaker, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.decode(rec, &messages)
	s.Len(messages, 1)

	since := time.Now().Add(time.Hour).UTC().Format(time.RFC3339)
	rec = s.call(http.MethodGet, "/api/v1/messages?since="+since, s.mainBaker, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.decode(rec, &messages)
	s.Empty(messages)
}

func (s *ServerSuite) TestMetricsAndSwagger() {
	s.placeOrder()

	rec := s.call(http.MethodGet, "/metrics", 0, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `bakery_workflow_commands_total{command="create_order",outcome="ok"} 1`)

	rec = s.call(http.MethodGet, "/swagger/doc.json", 0, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.True(strings.Contains(rec.Body.String(), "/api/v1/orders"))
}

func TestRateLimiterGuardsAPIOnly(t *testing.T) {
	doc, err := api.Load()
	require.NoError(t, err)
	e, err := httpin.NewServer(httpin.Handlers{}, nil, nil).Router(doc, httpin.NewRateLimiter(1, 1))
	require.NoError(t, err)

	serve := func(req *http.Request) int {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}
	createOrder := func(actor string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(httpin.ActorHeader, actor)
		return req
	}

	assert.Equal(t, http.StatusBadRequest, serve(createOrder("1")))
	assert.Equal(t, http.StatusTooManyRequests, serve(createOrder("1")))
	assert.Equal(t, http.StatusBadRequest, serve(createOrder("2")))
	for range 3 {
		assert.Equal(t, http.StatusOK, serve(httptest.NewRequest(http.MethodGet, "/health", nil)))
	}
}
