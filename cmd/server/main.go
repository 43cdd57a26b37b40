package main

import (
	"log"
	"net/http"

	_ "gatepass/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"gatepass/internal/auth"
	"gatepass/internal/cache"
	"gatepass/internal/config"
	"gatepass/internal/db"
	"gatepass/internal/handler"
	"gatepass/internal/model"
	"gatepass/internal/repository"
	"gatepass/internal/router"
	"gatepass/internal/service"
)

// @title Gate Pass API
// @version 1.0
// @description Campus gate-pass management: students request leave passes, wardens review them, guards verify approved passes at the gate.
// @host localhost:8080
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()

	e := echo.New()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Pass{},
		&model.Notification{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	passRepo := repository.NewPassRepository(gormDB)
	notificationRepo := repository.NewNotificationRepository(gormDB)

	// Initialize session components
	sessionService := auth.NewSessionService(cfg.SessionSecret)
	sessionStore := auth.NewSessionStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, sessionService, sessionStore, cacheClient)
	passService := service.NewPassService(passRepo, userRepo, notificationRepo)
	notificationService := service.NewNotificationService(notificationRepo)
	userService := service.NewUserService(userRepo, cacheClient, cfg.UploadDir)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg.Production())
	passHandler := handler.NewPassHandler(passService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	userHandler := handler.NewUserHandler(userService)

	// Register routes
	router.Register(
		e,
		cfg,
		gormDB,
		cacheClient,
		sessionStore,
		authService,
		authHandler,
		passHandler,
		notificationHandler,
		userHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
