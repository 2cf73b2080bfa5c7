package main

import (
	"log"
	"net/http"
	"os"

	_ "diarium/docs" // swagger docs

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"diarium/internal/auth"
	"diarium/internal/cache"
	"diarium/internal/config"
	"diarium/internal/db"
	"diarium/internal/handler"
	"diarium/internal/middleware"
	"diarium/internal/model"
	"diarium/internal/repository"
	"diarium/internal/router"
	"diarium/internal/service"
)

// @title Diary API
// @version 1.0
// @description Personal diary API with JWT authentication and per-user entry isolation.
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(echomw.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.DiaryEntry{},
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
		&model.DiaryEntry{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	diaryRepo := repository.NewDiaryRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	guard := middleware.NewAccessGuard(jwtService, userRepo)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	diaryService := service.NewDiaryService(diaryRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	diaryHandler := handler.NewDiaryHandler(diaryService)

	// Register routes
	router.Register(e, guard, authHandler, diaryHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
