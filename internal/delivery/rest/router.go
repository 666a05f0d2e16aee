package rest

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"catalog-service/internal/application/interfaces"
	"catalog-service/internal/domain/repositories"
	"catalog-service/internal/infrastructure"
	"catalog-service/internal/infrastructure/logging"
)

// RouterConfig carries everything the HTTP surface depends on.
type RouterConfig struct {
	ProductService interfaces.ProductService
	UserService    interfaces.UserService
	JWTService     *infrastructure.JWTService
	RateLimiter    *infrastructure.RateLimiter
	Idempotency    repositories.IdempotencyRepository
	Events         http.Handler
	HealthCheck    func(ctx context.Context) error
	AllowedOrigins []string
	Logger         *logging.Logger
}

func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)
	e.JSONSerializer = strictJSONSerializer{}

	e.Use(middleware.RequestID())
	e.Use(RequestLogger(cfg.Logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType},
	}))
	if cfg.RateLimiter != nil {
		e.Use(RateLimit(cfg.RateLimiter))
	}

	products := NewProductHandler(cfg.ProductService)
	users := NewUserHandler(cfg.UserService)

	productRoutes := e.Group("/products", Authenticate(cfg.JWTService, cfg.Logger))
	var createMiddleware []echo.MiddlewareFunc
	if cfg.Idempotency != nil {
		createMiddleware = append(createMiddleware, Idempotency(cfg.Idempotency, cfg.Logger))
	}

	productRoutes.POST("", products.Create, createMiddleware...)
	productRoutes.GET("", products.List)
	productRoutes.GET("/:id", products.Get)
	productRoutes.PUT("/:id", products.Update)
	productRoutes.DELETE("/:id", products.Delete)

	e.POST("/users", users.Create)
	e.GET("/users/:uuid/access-token", users.AccessToken)
	e.POST("/users/refresh-token", users.RefreshToken)

	if cfg.Events != nil {
		e.GET("/ws", echo.WrapHandler(cfg.Events))
	}
	e.GET("/healthz", healthHandler(cfg.HealthCheck))

	return e
}

func healthHandler(check func(ctx context.Context) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		if check != nil {
			if err := check(c.Request().Context()); err != nil {
				return c.JSON(http.StatusServiceUnavailable, Response{
					Error:   true,
					Message: "Database unavailable",
					Data:    map[string]string{"database": "down"},
				})
			}
		}
		return sendJSONResponse(c, http.StatusOK, "OK", map[string]string{"database": "up"})
	}
}
