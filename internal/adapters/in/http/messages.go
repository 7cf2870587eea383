package http

import (
	"net/http"
	"time"

	"bakery/internal/core/application/usecases/commands"
	"bakery/internal/core/application/usecases/queries"
	"bakery/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// SendMessage handles POST /api/v1/messages.
func (s *Server) SendMessage(c echo.Context) error {
	var req NewMessage
	if err := bindBody(c, &req); err != nil {
		return err
	}
	recipientID, err := kernel.NewID(req.RecipientID)
	if err != nil {
		return err
	}
	orderID, err := optionalID(req.OrderID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewSendMessageCommand(actorOf(c), recipientID, orderID, req.Body)
	if err != nil {
		return err
	}

	id, err := s.h.SendMessage.Handle(c.Request().Context(), cmd)
	s.record("send_message", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{ID: id.Int64()})
}

// ListMessages handles GET /api/v1/messages. With peer_id it returns the
// conversation with that user, otherwise everything after since.
func (s *Server) ListMessages(c echo.Context) error {
	var (
		peer  *int64
		since *time.Time
	)
	if err := runtime.BindQueryParameter("form", true, false, "peer_id", c.QueryParams(), &peer); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid peer_id: "+err.Error())
	}
	if err := runtime.BindQueryParameter("form", true, false, "since", c.QueryParams(), &since); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid since: "+err.Error())
	}

	peerID, err := optionalID(peer)
	if err != nil {
		return err
	}
	var after time.Time
	if since != nil {
		after = *since
	}

	query, err := queries.NewGetMessagesQuery(actorOf(c), nil, peerID, after)
	if err != nil {
		return err
	}
	return s.listMessages(c, query)
}

// ListOrderMessages handles GET /api/v1/orders/{orderId}/messages.
func (s *Server) ListOrderMessages(c echo.Context) error {
	orderID, err := pathID(c, "orderId")
	if err != nil {
		return err
	}
	query, err := queries.NewGetMessagesQuery(actorOf(c), &orderID, nil, time.Time{})
	if err != nil {
		return err
	}
	return s.listMessages(c, query)
}

func (s *Server) listMessages(c echo.Context, query queries.GetMessagesQuery) error {
	messages, err := s.h.GetMessages.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMessages(messages))
}
