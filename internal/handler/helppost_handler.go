package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"handson/internal/model"
	"handson/internal/service"
)

// HelpPostHandler handles help-post endpoints.
type HelpPostHandler struct {
	helpPostService service.HelpPostService
}

// NewHelpPostHandler creates a new help-post handler.
func NewHelpPostHandler(helpPostService service.HelpPostService) *HelpPostHandler {
	return &HelpPostHandler{helpPostService: helpPostService}
}

// CreateHelpPostRequest represents a help-post creation payload.
type CreateHelpPostRequest struct {
	Details      string `json:"details" validate:"required"`
	Location     string `json:"location"`
	UrgencyLevel string `json:"urgency_level"`
}

// AddCommentRequest represents a comment payload.
type AddCommentRequest struct {
	PostID  uint   `json:"postId" validate:"required"`
	UserID  uint   `json:"userId" validate:"required"`
	Comment string `json:"comment" validate:"required"`
}

// CreateHelpPost godoc
// @Summary Create a help post
// @Tags help-posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Requester user ID"
// @Param request body CreateHelpPostRequest true "Help post payload"
// @Success 201 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /create-help-post/{id} [post]
func (h *HelpPostHandler) CreateHelpPost(c echo.Context) error {
	createdBy, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return respondErrorMessage(c, http.StatusBadRequest, "invalid user id")
	}

	var req CreateHelpPostRequest
	if err := c.Bind(&req); err != nil {
		return respondErrorMessage(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondErrorMessage(c, http.StatusBadRequest, err.Error())
	}

	post, err := h.helpPostService.CreateHelpPost(c.Request().Context(), &model.HelpPost{
		CreatedBy:    uint(createdBy),
		Details:      req.Details,
		Location:     req.Location,
		UrgencyLevel: req.UrgencyLevel,
	})
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, http.StatusCreated, "Help post created successfully", post)
}

// ListHelpPosts godoc
// @Summary List help posts, urgent first
// @Tags help-posts
// @Produce json
// @Success 200 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /get-help-posts [get]
func (h *HelpPostHandler) ListHelpPosts(c echo.Context) error {
	posts, err := h.helpPostService.ListHelpPosts(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, http.StatusOK, "Help posts fetched successfully", posts)
}

// GetHelpPost godoc
// @Summary Get a help post with its comment thread
// @Tags help-posts
// @Produce json
// @Param postId path int true "Help post ID"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /help-post/{postId} [get]
func (h *HelpPostHandler) GetHelpPost(c echo.Context) error {
	postID, err := strconv.ParseUint(c.Param("postId"), 10, 32)
	if err != nil {
		return respondErrorMessage(c, http.StatusBadRequest, "invalid help post id")
	}

	detail, err := h.helpPostService.GetHelpPost(c.Request().Context(), uint(postID))
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, http.StatusOK, "Help post details fetched successfully", detail)
}

// AddComment godoc
// @Summary Add a comment to a help post
// @Tags help-posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddCommentRequest true "Comment payload"
// @Success 201 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /help-post/comment [post]
func (h *HelpPostHandler) AddComment(c echo.Context) error {
	var req AddCommentRequest
	if err := c.Bind(&req); err != nil {
		return respondErrorMessage(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondErrorMessage(c, http.StatusBadRequest, "Missing required fields")
	}

	comment, err := h.helpPostService.AddComment(c.Request().Context(), req.PostID, req.UserID, req.Comment)
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, http.StatusCreated, "Comment added successfully", comment)
}
