package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"bookameal/internal/auth"
	"bookameal/internal/config"
	"bookameal/internal/handler"
)

// Register wires routes and middleware. Authorization is layered: the token
// gate wraps everything under the secured group, and the admin gate wraps
// catalog and user management on top of it. Handlers behind these gates never
// re-check authentication.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	mealHandler *handler.MealHandler,
	menuHandler *handler.MenuHandler,
	orderHandler *handler.OrderHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Coarse per-IP request cap.
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.RateLimit))))

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/api-docs/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")

	// Public routes
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)

	// Secured routes (valid token in the x-access-token header)
	secured := api.Group("", auth.TokenRequired(cfg.JWTSecret))

	secured.POST("/auth/reset", authHandler.ResetPassword)

	secured.GET("/menu", menuHandler.ListMenu)
	secured.GET("/menu/:meal_id", menuHandler.GetMenuItem)

	secured.POST("/orders", orderHandler.CreateOrder)
	secured.GET("/orders", orderHandler.ListOrders)
	secured.GET("/orders/:id", orderHandler.GetOrder)
	secured.PUT("/orders/:id", orderHandler.UpdateOrder)
	secured.DELETE("/orders/:id", orderHandler.DeleteOrder)

	// Self-or-admin: the ownership rule lives in the service.
	secured.GET("/users/:id", userHandler.GetUser)
	secured.PUT("/users/:id", userHandler.UpdateUser)
	secured.DELETE("/users/:id", userHandler.DeleteUser)

	// Admin-only routes
	admin := secured.Group("", auth.AdminRequired)

	admin.POST("/users", userHandler.CreateUser)
	admin.GET("/users", userHandler.ListUsers)

	admin.POST("/meals", mealHandler.CreateMeal)
	admin.GET("/meals", mealHandler.ListMeals)
	admin.GET("/meals/:id", mealHandler.GetMeal)
	admin.PUT("/meals/:id", mealHandler.UpdateMeal)
	admin.DELETE("/meals/:id", mealHandler.DeleteMeal)

	admin.POST("/menu", menuHandler.AddToMenu)
	admin.DELETE("/menu/:meal_id", menuHandler.RemoveFromMenu)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
