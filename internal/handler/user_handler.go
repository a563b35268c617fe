package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"handson/internal/model"
	"handson/internal/service"
)

// UserHandler handles profile endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateProfileRequest represents a profile update. Skills and causes accept
// null, a bare string, or an array; decoding normalizes all three.
type UpdateProfileRequest struct {
	Name   string           `json:"name" validate:"required"`
	Gender string           `json:"gender"`
	DOB    string           `json:"dob"`
	About  string           `json:"about"`
	Skills model.StringList `json:"skills"`
	Causes model.StringList `json:"causes"`
}

// GetUser godoc
// @Summary Get a user's profile with joined events and teams
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return respondErrorMessage(c, http.StatusBadRequest, "invalid user id")
	}

	profile, err := h.userService.GetProfile(c.Request().Context(), uint(id))
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, http.StatusOK, "User fetched successfully", profile)
}

// UpdateUser godoc
// @Summary Update a user's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return respondErrorMessage(c, http.StatusBadRequest, "invalid user id")
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return respondErrorMessage(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondErrorMessage(c, http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), uint(id), service.ProfileUpdate{
		Name:   req.Name,
		Gender: req.Gender,
		DOB:    req.DOB,
		About:  req.About,
		Skills: req.Skills,
		Causes: req.Causes,
	})
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, http.StatusOK, "User updated successfully", user)
}
