package main

import (
	"context"
	"log"

	"handson/internal/auth"
	"handson/internal/cache"
	"handson/internal/config"
	"handson/internal/db"
	"handson/internal/model"
	"handson/internal/repository"
	"handson/internal/seed"
	"handson/internal/service"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Event{},
		&model.EventMembership{},
		&model.Team{},
		&model.TeamMembership{},
		&model.HelpPost{},
		&model.HelpPostComment{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	userRepo := repository.NewUserRepository(gormDB)
	eventRepo := repository.NewEventRepository(gormDB)
	teamRepo := repository.NewTeamRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	eventService := service.NewEventService(eventRepo, cacheClient)
	teamService := service.NewTeamService(teamRepo)

	result, err := seed.Run(context.Background(), authService, eventService, teamService)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeding complete: %d users, %d events, %d teams", result.Users, result.Events, result.Teams)
}
