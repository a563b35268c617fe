package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{name: "user not found", err: ErrUserNotFound, expectedStatus: http.StatusNotFound, expectedCode: "USER_NOT_FOUND"},
		{name: "event not found", err: ErrEventNotFound, expectedStatus: http.StatusNotFound, expectedCode: "EVENT_NOT_FOUND"},
		{name: "team not found", err: ErrTeamNotFound, expectedStatus: http.StatusNotFound, expectedCode: "TEAM_NOT_FOUND"},
		{name: "help post not found", err: ErrHelpPostNotFound, expectedStatus: http.StatusNotFound, expectedCode: "HELP_POST_NOT_FOUND"},
		{name: "event full is a conflict", err: ErrEventFull, expectedStatus: http.StatusConflict, expectedCode: "EVENT_FULL"},
		{name: "already joined is a conflict", err: ErrAlreadyJoined, expectedStatus: http.StatusConflict, expectedCode: "ALREADY_JOINED"},
		{name: "already member is a conflict", err: ErrAlreadyMember, expectedStatus: http.StatusConflict, expectedCode: "ALREADY_MEMBER"},
		{name: "private team is a conflict", err: ErrPrivateTeam, expectedStatus: http.StatusConflict, expectedCode: "PRIVATE_TEAM"},
		{name: "invalid input", err: ErrInvalidInput, expectedStatus: http.StatusBadRequest, expectedCode: "INVALID_INPUT"},
		{name: "unknown error", err: errors.New("database on fire"), expectedStatus: http.StatusInternalServerError, expectedCode: "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.expectedStatus, httpErr.StatusCode)
			assert.Equal(t, tt.expectedCode, httpErr.Code)
		})
	}
}

func TestMapErrorToHTTP_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("join event: %w", ErrEventFull)
	httpErr := MapErrorToHTTP(wrapped)
	assert.Equal(t, http.StatusConflict, httpErr.StatusCode)
	assert.Equal(t, "EVENT_FULL", httpErr.Code)
}

func TestMapErrorToHTTP_HidesInternalDetail(t *testing.T) {
	httpErr := MapErrorToHTTP(errors.New("dial tcp 10.0.0.3:3306: connection refused"))
	assert.Equal(t, "internal server error", httpErr.Message)
}
