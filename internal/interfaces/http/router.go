package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authapp "subhub/internal/application/auth"
	catalogapp "subhub/internal/application/catalog"
	dashboardapp "subhub/internal/application/dashboard"
	subscriptionapp "subhub/internal/application/subscription"
	"subhub/internal/infrastructure/config"
	"subhub/internal/infrastructure/identity"
	"subhub/internal/infrastructure/ratelimit"
	"subhub/internal/infrastructure/repository"
	"subhub/internal/interfaces/http/handlers"
	"subhub/internal/interfaces/http/middleware"
	"subhub/internal/interfaces/http/routes"
	"subhub/internal/shared/db"
	"subhub/internal/shared/logger"
	"subhub/internal/shared/services/markdown"
)

// Router assembles the HTTP surface: repositories, services, handlers and
// middleware, wired per request-scoped transaction semantics.
type Router struct {
	engine *gin.Engine
	logger logger.Interface
}

func NewRouter(cfg *config.Config, gormDB *gorm.DB, log logger.Interface) *Router {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.Recovery(log))
	engine.Use(middleware.RequestLogger(log))
	engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	engine.Use(middleware.SecurityHeaders())

	// repositories
	userRepo := repository.NewUserRepository(gormDB, log)
	productRepo := repository.NewProductRepository(gormDB, log)
	featureRepo := repository.NewProductFeatureRepository(gormDB, log)
	subscriptionRepo := repository.NewSubscriptionRepository(gormDB, log)
	eventRepo := repository.NewSubscriptionEventRepository(gormDB, log)

	txManager := db.NewTransactionManager(gormDB)

	// identity gateway
	identityClient := identity.NewClient(&cfg.Identity, log)
	tokenVerifier := identity.NewTokenVerifier(&cfg.Identity)

	// services
	authService := authapp.NewService(identityClient, userRepo, log)
	catalogService := catalogapp.NewService(productRepo, featureRepo, subscriptionRepo, markdown.NewService(), txManager, log)
	subscriptionService := subscriptionapp.NewService(subscriptionRepo, eventRepo, productRepo, txManager, log)
	dashboardService := dashboardapp.NewService(subscriptionRepo, log)

	// handlers
	authHandler := handlers.NewAuthHandler(authService, log)
	productHandler := handlers.NewProductHandler(catalogService, log)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService, log)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, log)
	healthHandler := handlers.NewHealthHandler(gormDB)

	authMiddleware := middleware.NewAuthMiddleware(tokenVerifier, userRepo, log)
	requireAuth := authMiddleware.RequireAuth()
	rateLimit := buildAuthRateLimit(cfg, log)

	engine.GET("/health", healthHandler.Check)

	api := engine.Group("/api/v1")
	routes.RegisterAuthRoutes(api, authHandler, requireAuth, rateLimit)
	routes.RegisterProductRoutes(api, productHandler, requireAuth)
	routes.RegisterSubscriptionRoutes(api, subscriptionHandler, requireAuth)
	routes.RegisterDashboardRoutes(api, dashboardHandler, requireAuth)

	return &Router{
		engine: engine,
		logger: log,
	}
}

// buildAuthRateLimit picks the redis limiter when redis is configured and
// falls back to the in-process one otherwise.
func buildAuthRateLimit(cfg *config.Config, log logger.Interface) gin.HandlerFunc {
	limitConfig := ratelimit.Config{
		RequestsPerMinute: cfg.RateLimit.AuthRequestsPerMinute,
		RequestsPerHour:   cfg.RateLimit.AuthRequestsPerHour,
	}

	var limiter ratelimit.Limiter
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		limiter = ratelimit.NewRedisLimiter(client)
		log.Infow("using redis rate limiter", "addr", cfg.Redis.GetAddr())
	} else {
		limiter = ratelimit.NewMemoryLimiter()
		log.Infow("using in-memory rate limiter")
	}

	return middleware.RateLimit(limiter, limitConfig, log)
}

// Engine exposes the underlying gin engine for the HTTP server.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
