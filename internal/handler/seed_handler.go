package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"handson/internal/seed"
	"handson/internal/service"
)

// SeedHandler populates demo data for local development. Seeding goes
// through the real domain operations so the same invariants apply
// (creator self-joins, admin memberships, capacity counters).
type SeedHandler struct {
	authService  service.AuthService
	eventService service.EventService
	teamService  service.TeamService
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(authService service.AuthService, eventService service.EventService, teamService service.TeamService) *SeedHandler {
	return &SeedHandler{
		authService:  authService,
		eventService: eventService,
		teamService:  teamService,
	}
}

// SeedDemo godoc
// @Summary Seed demo users, events, and teams
// @Tags seed
// @Produce json
// @Success 200 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /seed/demo [get]
func (h *SeedHandler) SeedDemo(c echo.Context) error {
	result, err := seed.Run(c.Request().Context(), h.authService, h.eventService, h.teamService)
	if err != nil {
		return respondError(c, err)
	}

	if result.Users == 0 {
		return respond(c, http.StatusOK, "Demo data already present", result)
	}
	return respond(c, http.StatusOK, "Demo data seeded", result)
}
