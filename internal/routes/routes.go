package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/orders-api/internal/audit"
	"github.com/BruksfildServices01/orders-api/internal/auth"
	"github.com/BruksfildServices01/orders-api/internal/config"
	orderdomain "github.com/BruksfildServices01/orders-api/internal/domain/order"
	userdomain "github.com/BruksfildServices01/orders-api/internal/domain/user"
	"github.com/BruksfildServices01/orders-api/internal/handlers"
	"github.com/BruksfildServices01/orders-api/internal/metrics"
	"github.com/BruksfildServices01/orders-api/internal/middleware"
	ucOrder "github.com/BruksfildServices01/orders-api/internal/usecase/order"
	ucUser "github.com/BruksfildServices01/orders-api/internal/usecase/user"
	"github.com/BruksfildServices01/orders-api/internal/validators"
)

// Deps are the singletons built by the entrypoint.
type Deps struct {
	Orders    orderdomain.Repository
	Users     userdomain.Repository
	Sequencer ucOrder.Sequencer
	Clock     ucOrder.Clock
	Audit     *audit.Dispatcher
	Issuer    *auth.Issuer
	Log       *zap.Logger

	// AuditLogs backs GET /api/audit-logs. Optional.
	AuditLogs handlers.AuditReader

	// Ping reports database health for /health. Optional.
	Ping func(ctx context.Context) error

	// Done stops background sweepers when closed.
	Done <-chan struct{}
}

const limiterSweepInterval = time.Minute

func RegisterRoutes(r *gin.Engine, cfg *config.Config, d Deps) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(metrics.Middleware())
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	var checkEmail ucUser.EmailChecker
	if cfg.CheckEmailDomain {
		checkEmail = validators.IsEmailDomainValid
	}

	createOrderUC := ucOrder.NewCreateOrder(d.Orders, d.Sequencer, d.Audit, d.Clock, cfg.OrderNumberMaxAttempts)
	updateOrderUC := ucOrder.NewUpdateOrder(d.Orders, d.Audit, d.Clock)
	deleteOrderUC := ucOrder.NewDeleteOrder(d.Orders, d.Audit)
	getOrderUC := ucOrder.NewGetOrder(d.Orders)
	listOrdersUC := ucOrder.NewListOrders(d.Orders)

	registerUserUC := ucUser.NewRegisterUser(d.Users, d.Audit, checkEmail)
	updateUserUC := ucUser.NewUpdateUser(d.Users, checkEmail)
	deleteUserUC := ucUser.NewDeleteUser(d.Users, d.Audit)
	getUserUC := ucUser.NewGetUser(d.Users)
	listUsersUC := ucUser.NewListUsers(d.Users)
	authenticateUC := ucUser.NewAuthenticate(d.Users)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(authenticateUC, d.Issuer)
	meHandler := handlers.NewMeHandler(getUserUC)
	orderHandler := handlers.NewOrderHandler(createOrderUC, updateOrderUC, deleteOrderUC, getOrderUC, listOrdersUC)
	userHandler := handlers.NewUserHandler(registerUserUC, updateUserUC, deleteUserUC, getUserUC, listUsersUC)

	loginLimiter := middleware.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateBurst, d.Log)
	loginLimiter.StartCleanup(limiterSweepInterval, d.Done)

	// ======================================================
	// 🩺 OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		if d.Ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := d.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/login", loginLimiter.Handler(), authHandler.Login)
		api.POST("/users", middleware.OptionalAuth(d.Issuer), userHandler.Register)

		// ------------------------------
		// 🔐 AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Issuer))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/users", userHandler.List)
			secured.GET("/users/:id", userHandler.Get)
			secured.PUT("/users/:id", userHandler.Update)
			secured.DELETE("/users/:id", userHandler.Delete)
			secured.GET("/users/:id/orders", orderHandler.ListForUser)

			secured.POST("/orders", orderHandler.Create)
			secured.GET("/orders", orderHandler.List)
			secured.GET("/orders/:id", orderHandler.Get)
			secured.PUT("/orders/:id", orderHandler.Update)
			secured.DELETE("/orders/:id", orderHandler.Delete)

			if d.AuditLogs != nil {
				secured.GET("/audit-logs", handlers.NewAuditLogsHandler(d.AuditLogs).List)
			}
		}
	}
}
