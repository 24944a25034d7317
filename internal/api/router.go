package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/influconnect/marketplace-api/internal/api/handler"
	"github.com/influconnect/marketplace-api/internal/api/middleware"
	"github.com/influconnect/marketplace-api/internal/core/domain"
	"github.com/influconnect/marketplace-api/internal/core/service"
	mongorepo "github.com/influconnect/marketplace-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/influconnect/marketplace-api/internal/infrastructure/db/redis"
	"github.com/influconnect/marketplace-api/internal/infrastructure/storage"
)

// Deps carries everything the router needs to assemble the application.
// Redis is optional: when nil, contact-query dedup is disabled.
type Deps struct {
	Client      *mongodriver.Client
	DB          *mongodriver.Database
	Redis       *redis.Client
	Avatars     *storage.AvatarStore
	JWTSecret   string
	JWTTTL      time.Duration
	DedupWindow time.Duration
	Log         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	// --- Repositories ---
	users := mongorepo.NewUserRepository(d.DB)
	projects := mongorepo.NewProjectRepository(d.DB)
	bids := mongorepo.NewBidRepository(d.DB)
	queries := mongorepo.NewQueryRepository(d.DB)
	prober := mongorepo.NewSlugProber(d.DB)

	// --- Services ---
	slugs := service.NewSlugResolver(prober, d.Log)
	authService := service.NewAuthService(users, slugs, d.JWTSecret, d.JWTTTL, d.Log)
	userService := service.NewUserService(users, slugs, d.Log)
	projectService := service.NewProjectService(projects, users, bids, slugs, d.Log)
	bidService := service.NewBidService(bids, projects, users, d.Log)

	var dedup service.DedupChecker
	if d.Redis != nil {
		dedup = redisinfra.NewQueryDedup(d.Redis, d.DedupWindow)
	}
	queryService := service.NewQueryService(queries, dedup, d.Log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	influencerHandler := handler.NewInfluencerHandler(userService, d.Avatars)
	clientHandler := handler.NewClientHandler(userService)
	projectHandler := handler.NewProjectHandler(projectService)
	bidHandler := handler.NewBidHandler(bidService)
	queryHandler := handler.NewQueryHandler(queryService)
	healthHandler := handler.NewHealthHandler(d.Client, d.Redis)

	auth := middleware.Auth(d.JWTSecret)
	influencerOnly := middleware.RBAC(domain.RoleInfluencer)
	clientOnly := middleware.RBAC(domain.RoleClient)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, auth)

	// --- Influencers ---
	inf := e.Group("/influencers")
	inf.GET("", influencerHandler.List)
	inf.GET("/filter", influencerHandler.List)
	inf.GET("/slug/:slug", influencerHandler.GetBySlug)
	inf.GET("/me/profile", influencerHandler.MyProfile, auth, influencerOnly)
	inf.PUT("/me/profile", influencerHandler.UpdateProfile, auth, influencerOnly)
	inf.POST("/me/avatar", influencerHandler.UploadAvatar, auth, influencerOnly)
	inf.GET("/me/bids", bidHandler.ListMine, auth, influencerOnly)
	inf.POST("/bids", bidHandler.Place, auth, influencerOnly)
	inf.GET("/:id", influencerHandler.GetByID)

	// --- Clients ---
	cl := e.Group("/clients")
	cl.GET("/filter", clientHandler.List)
	cl.GET("/me/profile", clientHandler.MyProfile, auth, clientOnly)
	cl.PUT("/me/profile", clientHandler.UpdateProfile, auth, clientOnly)
	cl.POST("/projects", projectHandler.Create, auth, clientOnly)
	cl.GET("/projects", projectHandler.List)
	cl.GET("/projects/slug/:slug", projectHandler.GetBySlug)
	cl.GET("/projects/:id", projectHandler.GetByID)

	// --- Projects ---
	pr := e.Group("/projects")
	pr.GET("", projectHandler.List)
	pr.GET("/slug/:slug", projectHandler.GetBySlug)
	pr.GET("/:id", projectHandler.GetByID)
	pr.GET("/:id/bids", projectHandler.ListBids, auth, middleware.RBAC(domain.RoleClient, domain.RoleAdmin))

	// --- Bid lifecycle ---
	bd := e.Group("/bids", auth)
	bd.POST("/:id/accept", bidHandler.Accept, clientOnly)
	bd.POST("/:id/reject", bidHandler.Reject, clientOnly)
	bd.POST("/:id/withdraw", bidHandler.Withdraw, influencerOnly)

	// --- Contact queries ---
	e.POST("/queries", queryHandler.Submit)
	e.GET("/queries", queryHandler.List, auth, adminOnly)

	// --- Static uploads ---
	if d.Avatars != nil {
		e.Static("/uploads/avatars", d.Avatars.Dir())
	}

	// --- Health and metrics ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
