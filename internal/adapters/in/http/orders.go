package http

import (
	"net/http"

	"bakery/internal/core/application/usecases/commands"
	"bakery/internal/core/application/usecases/queries"
	"bakery/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req NewOrder
	if err := bindBody(c, &req); err != nil {
		return err
	}
	items, delivery, payment, err := req.toDomain()
	if err != nil {
		return err
	}
	cmd, err := commands.NewCreateOrderCommand(actorOf(c), items, delivery, payment)
	if err != nil {
		return err
	}

	id, err := s.h.CreateOrder.Handle(c.Request().Context(), cmd)
	s.record("create_order", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{ID: id.Int64()})
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(c echo.Context) error {
	query, err := queries.NewGetOrdersForActorQuery(actorOf(c))
	if err != nil {
		return err
	}
	orders, err := s.h.GetOrdersForActor.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrders(orders))
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := pathID(c, "orderId")
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderQuery(orderID, actorOf(c))
	if err != nil {
		return err
	}
	detail, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderDetail(detail))
}

// UpdateOrderStatus handles POST /api/v1/orders/{orderId}/status.
func (s *Server) UpdateOrderStatus(c echo.Context) error {
	orderID, err := pathID(c, "orderId")
	if err != nil {
		return err
	}
	var req StatusUpdate
	if err = bindBody(c, &req); err != nil {
		return err
	}
	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return err
	}
	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, actorOf(c), target)
	if err != nil {
		return err
	}

	o, err := s.h.UpdateOrderStatus.Handle(c.Request().Context(), cmd)
	s.record("update_order_status", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrder(queries.ToOrderResponse(o)))
}

// AssignOrder handles POST /api/v1/orders/{orderId}/assignment. An empty
// body from a main baker claims the order for that baker.
func (s *Server) AssignOrder(c echo.Context) error {
	orderID, err := pathID(c, "orderId")
	if err != nil {
		return err
	}
	var req Assignment
	if err = bindBody(c, &req); err != nil {
		return err
	}
	mainBakerID, err := optionalID(req.MainBakerID)
	if err != nil {
		return err
	}
	juniorBakerID, err := optionalID(req.JuniorBakerID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewAssignOrderCommand(orderID, actorOf(c), mainBakerID, juniorBakerID)
	if err != nil {
		return err
	}

	o, err := s.h.AssignOrder.Handle(c.Request().Context(), cmd)
	s.record("assign_order", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrder(queries.ToOrderResponse(o)))
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancellation.
func (s *Server) CancelOrder(c echo.Context) error {
	orderID, err := pathID(c, "orderId")
	if err != nil {
		return err
	}
	cmd, err := commands.NewCancelOrderCommand(orderID, actorOf(c))
	if err != nil {
		return err
	}

	o, err := s.h.CancelOrder.Handle(c.Request().Context(), cmd)
	s.record("cancel_order", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrder(queries.ToOrderResponse(o)))
}

// SubmitReview handles POST /api/v1/orders/{orderId}/review.
func (s *Server) SubmitReview(c echo.Context) error {
	orderID, err := pathID(c, "orderId")
	if err != nil {
		return err
	}
	var req NewReview
	if err = bindBody(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewSubmitReviewCommand(orderID, actorOf(c), req.Rating, req.Comment)
	if err != nil {
		return err
	}

	id, err := s.h.SubmitReview.Handle(c.Request().Context(), cmd)
	s.record("submit_review", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{ID: id.Int64()})
}
