package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"handson/internal/auth"
	"handson/internal/model"
	"handson/internal/service"
)

// EventHandler handles event endpoints.
type EventHandler struct {
	eventService service.EventService
	jwtService   *auth.JWTService
}

// NewEventHandler creates a new event handler.
func NewEventHandler(eventService service.EventService, jwtService *auth.JWTService) *EventHandler {
	return &EventHandler{eventService: eventService, jwtService: jwtService}
}

// CreateEventRequest represents an event creation payload.
type CreateEventRequest struct {
	Title       string `json:"title" validate:"required"`
	Details     string `json:"details" validate:"required"`
	Date        string `json:"date" validate:"required"`
	Location    string `json:"location" validate:"required"`
	StartTime   string `json:"start_time" validate:"required"`
	EndTime     string `json:"end_time" validate:"required"`
	Category    string `json:"category" validate:"required"`
	MemberLimit *int   `json:"member_limit" validate:"required,min=1"`
}

// JoinEventRequest represents a join request.
type JoinEventRequest struct {
	EventID  uint   `json:"event_id" validate:"required"`
	UserID   uint   `json:"user_id" validate:"required"`
	JoinDate string `json:"join_date"`
}

// CreateEventResponse bundles the event and the creator's self-join row.
type CreateEventResponse struct {
	Event      *model.Event           `json:"event"`
	Membership *model.EventMembership `json:"membership"`
}

// CreateEvent godoc
// @Summary Create an event; the creator is auto-joined
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Creator user ID"
// @Param request body CreateEventRequest true "Event payload"
// @Success 201 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /create-event/{id} [post]
func (h *EventHandler) CreateEvent(c echo.Context) error {
	creatorID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return respondErrorMessage(c, http.StatusBadRequest, "invalid user id")
	}

	var req CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return respondErrorMessage(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondErrorMessage(c, http.StatusBadRequest, "Missing required fields")
	}

	event := &model.Event{
		Title:       req.Title,
		Details:     req.Details,
		Date:        req.Date,
		Location:    req.Location,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Category:    req.Category,
		MemberLimit: req.MemberLimit,
		CreatedBy:   uint(creatorID),
	}

	created, membership, err := h.eventService.CreateEvent(c.Request().Context(), event)
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, http.StatusCreated, "Event created successfully", CreateEventResponse{
		Event:      created,
		Membership: membership,
	})
}

// GetEvent godoc
// @Summary Get a single event
// @Tags events
// @Produce json
// @Param eventId path int true "Event ID"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /event/{eventId} [get]
func (h *EventHandler) GetEvent(c echo.Context) error {
	eventID, err := strconv.ParseUint(c.Param("eventId"), 10, 32)
	if err != nil {
		return respondErrorMessage(c, http.StatusBadRequest, "invalid event id")
	}

	event, err := h.eventService.GetEvent(c.Request().Context(), uint(eventID))
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, http.StatusOK, "Event details fetched successfully", event)
}

// ListEvents godoc
// @Summary List events with registration counts and join status
// @Tags events
// @Produce json
// @Param user_id query int false "Requesting user ID"
// @Success 200 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /get-events [get]
func (h *EventHandler) ListEvents(c echo.Context) error {
	// Explicit user_id query wins; otherwise fall back to the token.
	var userID uint
	if raw := c.QueryParam("user_id"); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 32); err == nil {
			userID = uint(parsed)
		}
	} else {
		userID = requestUserID(c, h.jwtService)
	}

	events, err := h.eventService.ListEvents(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, http.StatusOK, "Events fetched successfully", events)
}

// JoinEvent godoc
// @Summary Join an event, bounded by its member limit
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body JoinEventRequest true "Join payload"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Failure 409 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /join-event [post]
func (h *EventHandler) JoinEvent(c echo.Context) error {
	var req JoinEventRequest
	if err := c.Bind(&req); err != nil {
		return respondErrorMessage(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondErrorMessage(c, http.StatusBadRequest, err.Error())
	}

	joinDate := req.JoinDate
	if joinDate == "" {
		joinDate = time.Now().Format(time.DateOnly)
	}

	membership, err := h.eventService.JoinEvent(c.Request().Context(), req.EventID, req.UserID, joinDate)
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, http.StatusOK, "Event joined successfully", membership)
}
