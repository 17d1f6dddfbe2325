package router

import (
	"net/http"
	"time"

	"github.com/evalpoint/evalpoint-backend/internal/config"
	"github.com/evalpoint/evalpoint-backend/internal/handler"
	"github.com/evalpoint/evalpoint-backend/internal/middleware"
	"github.com/evalpoint/evalpoint-backend/internal/response"
	"github.com/evalpoint/evalpoint-backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Limits applied per client IP. Login and registration are throttled far
// harder than authenticated traffic to blunt brute-force and signup abuse.
const (
	generalLimit  = 100
	generalWindow = 15 * time.Minute

	loginLimit  = 5
	loginWindow = 15 * time.Minute

	registrationLimit  = 3
	registrationWindow = time.Hour
)

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authHandler *handler.AuthHandler,
	tokens *service.TokenService,
	users service.UserStore,
	counters middleware.CounterStore,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally.
	router.Use(response.RequestIDMiddleware())

	// ─── Rate Limiters ─────────────────────────────────────────────────
	generalLimiter := middleware.NewRateLimiter(counters, "general", generalLimit, generalWindow, response.ErrRateLimitExceeded)
	loginLimiter := middleware.NewRateLimiter(counters, "login", loginLimit, loginWindow, response.ErrLoginRateLimitExceeded)
	registrationLimiter := middleware.NewRateLimiter(counters, "register", registrationLimit, registrationWindow, response.ErrRegistrationRateLimitExceeded)

	// Health check.
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "EvalPoint API is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// API information.
	router.GET("/api/info", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "Success", gin.H{
			"name":        "EvalPoint Educational Platform API",
			"description": "Backend API for educational platform with authentication",
			"version":     "1.0.0",
			"documentation": gin.H{
				"authentication": "/api/auth",
				"health":         "/api/health",
			},
		})
	})

	// ─── Auth Group ────────────────────────────────────────────────────
	requireAuth := middleware.RequireAuth(tokens, users)

	auth := router.Group("/api/auth")
	{
		auth.POST("/register", registrationLimiter.Middleware(), authHandler.Register)
		auth.POST("/login", loginLimiter.Middleware(), authHandler.Login)

		// Protected routes share the general limiter and the access gate.
		protected := auth.Group("")
		protected.Use(generalLimiter.Middleware(), requireAuth)
		{
			protected.GET("/profile", authHandler.GetProfile)
			protected.PUT("/profile", authHandler.UpdateProfile)
			protected.PUT("/change-password", authHandler.ChangePassword)
			protected.POST("/logout", authHandler.Logout)
			protected.GET("/verify-token", authHandler.VerifyToken)
		}
	}

	// 404 handler for undefined routes.
	router.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, response.ErrRouteNotFound)
	})

	return router
}
