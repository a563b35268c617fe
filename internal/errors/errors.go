package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrEventNotFound is returned when an event is not found.
	ErrEventNotFound = errors.New("event not found")
	// ErrTeamNotFound is returned when a team is not found.
	ErrTeamNotFound = errors.New("team not found")
	// ErrHelpPostNotFound is returned when a help post is not found.
	ErrHelpPostNotFound = errors.New("help post not found")
	// ErrEventFull is returned when an event has reached its member limit.
	ErrEventFull = errors.New("event has reached its member limit")
	// ErrAlreadyJoined is returned when a user has already joined an event.
	ErrAlreadyJoined = errors.New("user has already joined this event")
	// ErrAlreadyMember is returned when a user is already a team member.
	ErrAlreadyMember = errors.New("user is already a member of this team")
	// ErrPrivateTeam is returned when joining a private team through the open join path.
	ErrPrivateTeam = errors.New("private teams cannot be joined directly")
	// ErrInvalidInput is returned when a required field is missing or malformed.
	ErrInvalidInput = errors.New("invalid input")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Business-rule
// violations (capacity, duplicates, privacy) are conflicts, not server
// failures.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrEventNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "EVENT_NOT_FOUND")
	case errors.Is(err, ErrTeamNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "TEAM_NOT_FOUND")
	case errors.Is(err, ErrHelpPostNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "HELP_POST_NOT_FOUND")
	case errors.Is(err, ErrEventFull):
		return NewHTTPError(http.StatusConflict, err.Error(), "EVENT_FULL")
	case errors.Is(err, ErrAlreadyJoined):
		return NewHTTPError(http.StatusConflict, err.Error(), "ALREADY_JOINED")
	case errors.Is(err, ErrAlreadyMember):
		return NewHTTPError(http.StatusConflict, err.Error(), "ALREADY_MEMBER")
	case errors.Is(err, ErrPrivateTeam):
		return NewHTTPError(http.StatusConflict, err.Error(), "PRIVATE_TEAM")
	case errors.Is(err, ErrInvalidInput):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_INPUT")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
