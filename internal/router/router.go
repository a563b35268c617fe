package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"handson/internal/config"
	"handson/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	eventHandler *handler.EventHandler,
	teamHandler *handler.TeamHandler,
	helpPostHandler *handler.HelpPostHandler,
	seedHandler *handler.SeedHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Auth routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Public reads. List endpoints decode the Authorization header
	// opportunistically to personalize join/membership flags but never
	// require it.
	api.GET("/users/:id", userHandler.GetUser)
	api.GET("/get-events", eventHandler.ListEvents)
	api.GET("/event/:eventId", eventHandler.GetEvent)
	api.GET("/get-help-posts", helpPostHandler.ListHelpPosts)
	api.GET("/help-post/:postId", helpPostHandler.GetHelpPost)
	api.GET("/get-teams", teamHandler.ListTeams)
	api.GET("/team/:teamId", teamHandler.GetTeam)
	api.GET("/seed/demo", seedHandler.SeedDemo)

	// Mutations require a valid JWT.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}))

	secured.PUT("/users/:id", userHandler.UpdateUser)
	secured.POST("/create-event/:id", eventHandler.CreateEvent)
	secured.POST("/join-event", eventHandler.JoinEvent)
	secured.POST("/create-help-post/:id", helpPostHandler.CreateHelpPost)
	secured.POST("/help-post/comment", helpPostHandler.AddComment)
	secured.POST("/create-team/:id", teamHandler.CreateTeam)
	secured.POST("/join-team/:teamId", teamHandler.JoinTeam)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
