package main

import (
	"log"
	"net/http"
	"os"

	_ "bookameal/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"bookameal/internal/auth"
	"bookameal/internal/cache"
	"bookameal/internal/config"
	"bookameal/internal/db"
	"bookameal/internal/handler"
	"bookameal/internal/model"
	"bookameal/internal/repository"
	"bookameal/internal/router"
	"bookameal/internal/service"
)

// @title Book-A-Meal API
// @version 1.0
// @description Meal ordering API with a menu catalog, serving-hours order window and JWT authentication.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey TokenAuth
// @in header
// @name x-access-token
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
			&model.Order{},
			&model.Meal{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Meal{},
		&model.Order{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	mealRepo := repository.NewMealRepository(gormDB)
	orderRepo := repository.NewOrderRepository(gormDB)

	// Initialize services
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	authService := service.NewAuthService(userRepo, jwtService)
	userService := service.NewUserService(userRepo)
	mealService := service.NewMealService(mealRepo, cacheClient)
	orderService := service.NewOrderService(orderRepo, mealRepo, userRepo, service.ServingHours{
		Open:  cfg.OpenHour,
		Close: cfg.CloseHour,
	})

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	mealHandler := handler.NewMealHandler(mealService)
	menuHandler := handler.NewMenuHandler(mealService)
	orderHandler := handler.NewOrderHandler(orderService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		userHandler,
		mealHandler,
		menuHandler,
		orderHandler,
	)

	log.Printf("serving hours: orders accepted strictly between %d:00 and %d:00", cfg.OpenHour, cfg.CloseHour)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
