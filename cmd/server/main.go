package main

import (
	"log"
	"net/http"
	"os"

	_ "carlisting/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"carlisting/internal/auth"
	"carlisting/internal/cache"
	"carlisting/internal/config"
	"carlisting/internal/db"
	"carlisting/internal/handler"
	"carlisting/internal/model"
	"carlisting/internal/repository"
	"carlisting/internal/router"
	"carlisting/internal/service"
)

// @title Car Listing API
// @version 1.0
// @description Car marketplace API with role-based listings, service records, favorites and JWT authentication.
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
			&model.UserFavorite{},
			&model.ServiceRecord{},
			&model.Car{},
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
		&model.Car{},
		&model.ServiceRecord{},
		&model.UserFavorite{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	carRepo := repository.NewCarRepository(gormDB)
	favoriteRepo := repository.NewFavoriteRepository(gormDB)
	recordRepo := repository.NewServiceRecordRepository(gormDB)

	// Initialize auth and services
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	authService := service.NewAuthService(userRepo, jwtService)
	userService := service.NewUserService(userRepo)
	carService := service.NewCarService(carRepo, userRepo, cacheClient)
	favoriteService := service.NewFavoriteService(favoriteRepo, userRepo, carRepo)
	recordService := service.NewServiceRecordService(recordRepo, carRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	carHandler := handler.NewCarHandler(carService)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService)
	recordHandler := handler.NewServiceRecordHandler(recordService)

	// Register routes
	router.Register(
		e,
		jwtService,
		userRepo,
		authHandler,
		userHandler,
		carHandler,
		favoriteHandler,
		recordHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
