package handler

import (
	"strings"

	"github.com/labstack/echo/v4"

	"handson/internal/auth"
	apperrors "handson/internal/errors"
)

// Envelope is the uniform response shape: {status, message, data}. Data is
// always present, null when an operation has nothing to return.
type Envelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func respond(c echo.Context, statusCode int, message string, data interface{}) error {
	return c.JSON(statusCode, Envelope{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func respondError(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return c.JSON(httpErr.StatusCode, Envelope{
		Status:  "error",
		Message: httpErr.Message,
	})
}

func respondErrorMessage(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, Envelope{
		Status:  "error",
		Message: message,
	})
}

// requestUserID opportunistically resolves the acting user from the
// Authorization header to personalize list endpoints. Returns 0 when the
// header is absent or the token does not verify; callers treat 0 as
// anonymous and never reject.
func requestUserID(c echo.Context, jwtService *auth.JWTService) uint {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return 0
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return 0
	}
	claims, err := jwtService.ValidateToken(parts[1])
	if err != nil {
		return 0
	}
	return claims.UserID
}
