package http

import (
	"net/http"

	"bakery/internal/core/application/usecases/commands"
	"bakery/internal/core/application/usecases/queries"
	"bakery/internal/core/domain/model/application"
	"bakery/internal/core/domain/model/user"

	"github.com/labstack/echo/v4"
)

// SubmitApplication handles POST /api/v1/applications.
func (s *Server) SubmitApplication(c echo.Context) error {
	var req NewApplication
	if err := bindBody(c, &req); err != nil {
		return err
	}
	claimed, err := user.ParseRole(req.CurrentRole)
	if err != nil {
		return err
	}
	requested, err := user.ParseRole(req.RequestedRole)
	if err != nil {
		return err
	}
	cmd, err := commands.NewSubmitApplicationCommand(actorOf(c), claimed, requested, req.Experience, req.Reason)
	if err != nil {
		return err
	}

	id, err := s.h.SubmitApplication.Handle(c.Request().Context(), cmd)
	s.record("submit_application", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{ID: id.Int64()})
}

// DecideApplication handles POST /api/v1/applications/{applicationId}/decision.
func (s *Server) DecideApplication(c echo.Context) error {
	applicationID, err := pathID(c, "applicationId")
	if err != nil {
		return err
	}
	var req ApplicationDecision
	if err = bindBody(c, &req); err != nil {
		return err
	}
	decision, err := application.ParseDecision(req.Decision)
	if err != nil {
		return err
	}
	cmd, err := commands.NewDecideApplicationCommand(applicationID, actorOf(c), decision)
	if err != nil {
		return err
	}

	app, err := s.h.DecideApplication.Handle(c.Request().Context(), cmd)
	s.record("decide_application", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toApplication(queries.ToApplicationResponse(app)))
}

// ListApplications handles GET /api/v1/applications.
func (s *Server) ListApplications(c echo.Context) error {
	status := application.UnknownStatus
	if raw := c.QueryParam("status"); raw != "" {
		parsed, err := application.ParseStatus(raw)
		if err != nil {
			return err
		}
		status = parsed
	}
	query, err := queries.NewGetApplicationsQuery(actorOf(c), status)
	if err != nil {
		return err
	}
	apps, err := s.h.GetApplications.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toApplications(apps))
}
