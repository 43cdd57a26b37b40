package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"gorm.io/gorm"

	"gatepass/internal/auth"
	"gatepass/internal/cache"
	"gatepass/internal/config"
	"gatepass/internal/handler"
	"gatepass/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	db *gorm.DB,
	cacheClient *cache.Client,
	sessionStore auth.SessionStoreInterface,
	userResolver auth.UserResolver,
	authHandler *handler.AuthHandler,
	passHandler *handler.PassHandler,
	notificationHandler *handler.NotificationHandler,
	userHandler *handler.UserHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		sqlDB, err := db.DB()
		dbHealthy := err == nil && sqlDB.PingContext(c.Request().Context()) == nil
		redisHealthy := cacheClient.Healthy(c.Request().Context())
		status := http.StatusOK
		if !dbHealthy || !redisHealthy {
			status = http.StatusServiceUnavailable
		}
		return c.JSON(status, echo.Map{"status": "ok", "db": dbHealthy, "redis": redisHealthy})
	})

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Uploaded profile photos
	e.Static("/uploads", cfg.UploadDir)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/register", authHandler.Register)

	// Secured routes (require a live session)
	secured := api.Group("",
		auth.CookieAuth(cfg.SessionSecret),
		auth.ResolveSession(sessionStore, userResolver),
	)

	secured.GET("/auth/user", authHandler.Me)
	secured.POST("/auth/logout", authHandler.Logout)

	// Pass routes
	secured.POST("/passes", passHandler.Create, auth.RequireRole(model.RoleStudent))
	secured.GET("/passes", passHandler.ListMine, auth.RequireRole(model.RoleStudent))
	secured.GET("/passes/pending", passHandler.ListPending, auth.RequireRole(model.RoleWarden))
	secured.GET("/passes/approved", passHandler.ListApproved, auth.RequireRole(model.RoleWarden, model.RoleGuard))
	secured.GET("/passes/rejected", passHandler.ListRejected, auth.RequireRole(model.RoleWarden))
	secured.POST("/passes/review", passHandler.Review, auth.RequireRole(model.RoleWarden))

	// Notification routes
	secured.GET("/notifications", notificationHandler.List)
	secured.POST("/notifications/:id/read", notificationHandler.MarkRead)

	// Profile routes
	secured.POST("/users/profile-photo", userHandler.UploadProfilePhoto)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
