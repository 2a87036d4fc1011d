package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"carlisting/internal/auth"
	"carlisting/internal/handler"
	"carlisting/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	userRepo repository.UserRepository,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	carHandler *handler.CarHandler,
	favoriteHandler *handler.FavoriteHandler,
	recordHandler *handler.ServiceRecordHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/cars", carHandler.List)
	api.GET("/cars/:id", carHandler.GetByID)
	api.GET("/cars/:id/service-records", recordHandler.List)
	api.GET("/cars/:id/service-records/:recordId", recordHandler.GetByID)

	// Secured routes: token must verify, account must not be blocked.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
	}), BlockedUserMiddleware(userRepo))

	// User routes
	secured.GET("/users", userHandler.List)
	secured.GET("/users/:id", userHandler.GetByID)
	secured.GET("/users/by-email/:email", userHandler.GetByEmail)
	secured.POST("/users", userHandler.Create)
	secured.PUT("/users/:id", userHandler.Update)
	secured.DELETE("/users/:id", userHandler.Delete)

	// Car routes (reads are public above)
	secured.POST("/cars", carHandler.Create)
	secured.PUT("/cars/:id", carHandler.Update)
	secured.DELETE("/cars/:id", carHandler.Delete)

	// Service record routes (reads are public above)
	secured.POST("/cars/:id/service-records", recordHandler.Create)
	secured.PUT("/cars/:id/service-records/:recordId", recordHandler.Update)
	secured.DELETE("/cars/:id/service-records/:recordId", recordHandler.Delete)

	// Favorites routes
	secured.GET("/favorites", favoriteHandler.List)
	secured.POST("/favorites", favoriteHandler.Add)
	secured.DELETE("/favorites/:carId", favoriteHandler.Remove)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
