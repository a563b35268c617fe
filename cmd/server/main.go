package main

import (
	"log"
	"net/http"
	"os"

	_ "handson/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"handson/internal/auth"
	"handson/internal/cache"
	"handson/internal/config"
	"handson/internal/db"
	"handson/internal/handler"
	"handson/internal/model"
	"handson/internal/repository"
	"handson/internal/router"
	"handson/internal/service"
)

// @title HandsOn Volunteer Coordination API
// @version 1.0
// @description Volunteer coordination API: events with capacity-bounded joining, teams with role-based membership, and help-post threads.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.HelpPostComment{},
			&model.HelpPost{},
			&model.TeamMembership{},
			&model.Team{},
			&model.EventMembership{},
			&model.Event{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Event{},
		&model.EventMembership{},
		&model.Team{},
		&model.TeamMembership{},
		&model.HelpPost{},
		&model.HelpPostComment{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	eventRepo := repository.NewEventRepository(gormDB)
	teamRepo := repository.NewTeamRepository(gormDB)
	helpPostRepo := repository.NewHelpPostRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, eventRepo, teamRepo, cacheClient)
	eventService := service.NewEventService(eventRepo, cacheClient)
	teamService := service.NewTeamService(teamRepo)
	helpPostService := service.NewHelpPostService(helpPostRepo, userRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	eventHandler := handler.NewEventHandler(eventService, jwtService)
	teamHandler := handler.NewTeamHandler(teamService, jwtService)
	helpPostHandler := handler.NewHelpPostHandler(helpPostService)
	seedHandler := handler.NewSeedHandler(authService, eventService, teamService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		userHandler,
		eventHandler,
		teamHandler,
		helpPostHandler,
		seedHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
