package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"handson/internal/auth"
	"handson/internal/model"
	"handson/internal/service"
)

// TeamHandler handles team endpoints.
type TeamHandler struct {
	teamService service.TeamService
	jwtService  *auth.JWTService
}

// NewTeamHandler creates a new team handler.
func NewTeamHandler(teamService service.TeamService, jwtService *auth.JWTService) *TeamHandler {
	return &TeamHandler{teamService: teamService, jwtService: jwtService}
}

// CreateTeamRequest represents a team creation payload.
type CreateTeamRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	IsPrivate   bool   `json:"isPrivate"`
}

// JoinTeamRequest represents an open-join payload.
type JoinTeamRequest struct {
	UserID uint `json:"userId" validate:"required"`
}

// CreateTeam godoc
// @Summary Create a team; the creator becomes its admin
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Creator user ID"
// @Param request body CreateTeamRequest true "Team payload"
// @Success 201 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /create-team/{id} [post]
func (h *TeamHandler) CreateTeam(c echo.Context) error {
	creatorID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return respondErrorMessage(c, http.StatusBadRequest, "invalid user id")
	}

	var req CreateTeamRequest
	if err := c.Bind(&req); err != nil {
		return respondErrorMessage(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondErrorMessage(c, http.StatusBadRequest, err.Error())
	}

	team, err := h.teamService.CreateTeam(c.Request().Context(), &model.Team{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		IsPrivate:   req.IsPrivate,
		CreatedBy:   uint(creatorID),
	})
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, http.StatusCreated, "Team created successfully", team)
}

// ListTeams godoc
// @Summary List teams with member counts and membership status
// @Tags teams
// @Produce json
// @Success 200 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /get-teams [get]
func (h *TeamHandler) ListTeams(c echo.Context) error {
	userID := requestUserID(c, h.jwtService)

	teams, err := h.teamService.ListTeams(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, http.StatusOK, "Teams fetched successfully", teams)
}

// JoinTeam godoc
// @Summary Join a public team
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param teamId path int true "Team ID"
// @Param request body JoinTeamRequest true "Join payload"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Failure 409 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /join-team/{teamId} [post]
func (h *TeamHandler) JoinTeam(c echo.Context) error {
	teamID, err := strconv.ParseUint(c.Param("teamId"), 10, 32)
	if err != nil {
		return respondErrorMessage(c, http.StatusBadRequest, "invalid team id")
	}

	var req JoinTeamRequest
	if err := c.Bind(&req); err != nil {
		return respondErrorMessage(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondErrorMessage(c, http.StatusBadRequest, err.Error())
	}

	membership, err := h.teamService.JoinTeam(c.Request().Context(), uint(teamID), req.UserID)
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, http.StatusOK, "Team joined successfully", membership)
}

// GetTeam godoc
// @Summary Get a team with its roster
// @Tags teams
// @Produce json
// @Param teamId path int true "Team ID"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /team/{teamId} [get]
func (h *TeamHandler) GetTeam(c echo.Context) error {
	teamID, err := strconv.ParseUint(c.Param("teamId"), 10, 32)
	if err != nil {
		return respondErrorMessage(c, http.StatusBadRequest, "invalid team id")
	}

	userID := requestUserID(c, h.jwtService)

	detail, err := h.teamService.GetTeam(c.Request().Context(), uint(teamID), userID)
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, http.StatusOK, "Team details fetched successfully", detail)
}
