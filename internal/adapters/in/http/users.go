package http

import (
	"net/http"

	"bakery/internal/core/application/usecases/commands"
	"bakery/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// GetBakerStats handles GET /api/v1/bakers/{bakerId}/stats.
func (s *Server) GetBakerStats(c echo.Context) error {
	bakerID, err := pathID(c, "bakerId")
	if err != nil {
		return err
	}
	query, err := queries.NewGetBakerStatsQuery(actorOf(c), bakerID)
	if err != nil {
		return err
	}
	stats, err := s.h.GetBakerStats.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBakerStats(stats))
}

// RegisterUser handles POST /api/v1/users. It is the only endpoint that
// does not require an actor.
func (s *Server) RegisterUser(c echo.Context) error {
	var req NewUser
	if err := bindBody(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewRegisterUserCommand(req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	id, err := s.h.RegisterUser.Handle(c.Request().Context(), cmd)
	s.record("register_user", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{ID: id.Int64()})
}
