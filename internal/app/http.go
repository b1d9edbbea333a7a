package app

import (
	"context"

	"launchbay-gateway/internal/auth/accounts"
	authhandler "launchbay-gateway/internal/auth/handler"
	"launchbay-gateway/internal/auth/provider"
	"launchbay-gateway/internal/auth/provider/google"
	"launchbay-gateway/internal/config"
	"launchbay-gateway/internal/entitlement"
	"launchbay-gateway/internal/gate"
	"launchbay-gateway/internal/handler"
	"launchbay-gateway/internal/logger"
	marketclient "launchbay-gateway/internal/marketplace/client"
	"launchbay-gateway/internal/middleware"
	"launchbay-gateway/internal/role"
	"launchbay-gateway/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	sessionStore := session.NewRedisStore(infra.Redis.Client)
	accountStore := accounts.NewStore(infra.DB)

	market := marketclient.New(cfg.MarketplaceBaseURL, cfg.MarketplaceTimeout)
	roleCache := role.NewCache(marketclient.NewRoleResolver(market))

	manager := session.NewManager()

	// every identity change drops the previous identity's role entry
	snaps, cancelSub := manager.Subscribe()
	go func() {
		for range snaps {
			roleCache.Invalidate()
		}
	}()

	googleProvider, err := google.New(
		ctx,
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
	)
	if err != nil {
		return nil, nil, err
	}

	registry := provider.NewRegistry(
		googleProvider,
	)

	authHandler := authhandler.NewHandler(
		registry,
		sessionStore,
		accountStore,
		manager,
		roleCache,
		cfg.SessionTTL,
	)

	apiHandler := handler.NewHandler(market, accountStore, roleCache)

	routeGate := gate.New(sessionStore, roleCache)
	loginLimiter := middleware.NewLoginLimiter(cfg.LoginRatePerMinute, cfg.LoginRateBurst)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Metrics())

	// ----------------------------
	// Public Routes
	// ----------------------------

	authHandler.RegisterRoutes(router, loginLimiter.Middleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.Static("/assets", "./web/assets")
	router.GET("/", func(c *gin.Context) {
		c.File("./web/index.html")
	})
	router.GET(gate.LoginPath, func(c *gin.Context) {
		c.File("./web/login.html")
	})
	router.GET(gate.ForbiddenPath, func(c *gin.Context) {
		c.File("./web/forbidden.html")
	})

	// Browse surface: open, but identity attached when present so the
	// detail screen can report vote eligibility.
	browse := router.Group("/api")
	browse.Use(routeGate.Attach())

	browse.GET("/products", apiHandler.ListProducts)
	browse.GET("/products/featured", apiHandler.FeaturedProducts)
	browse.GET("/products/trending", apiHandler.TrendingProducts)
	browse.GET("/products/:id", apiHandler.GetProduct)
	browse.GET("/products/:id/reviews", apiHandler.ListReviews)
	browse.GET("/coupons", apiHandler.ValidCoupons)
	browse.GET("/coupons/apply", apiHandler.ApplyCoupon)

	// ----------------------------
	// Protected API Routes
	// ----------------------------

	api := router.Group("/api")
	api.Use(routeGate.RequireAPI(entitlement.RequireAuthenticated))

	api.GET("/me", apiHandler.Me)
	api.PATCH("/me", apiHandler.UpdateMe)

	api.GET("/my-products", apiHandler.MyProducts)
	api.POST("/products", apiHandler.AddProduct)
	api.PATCH("/products/:id", apiHandler.UpdateProduct)
	api.DELETE("/products/:id", apiHandler.DeleteProduct)
	api.PATCH("/products/upvote/:id", apiHandler.Upvote)
	api.PATCH("/products/report/:id", apiHandler.Report)
	api.POST("/products/:id/reviews", apiHandler.AddReview)

	api.POST("/payments/intent", apiHandler.CreateMembershipIntent)
	api.POST("/payments/confirm", apiHandler.ConfirmPayment)
	api.GET("/payments/history", apiHandler.PaymentHistory)

	// Membership moderation surface (admin passes too)
	moderation := router.Group("/api/moderation")
	moderation.Use(routeGate.RequireAPI(entitlement.RequireMembership))

	moderation.GET("/queue", apiHandler.ReviewQueue)
	moderation.PATCH("/queue/:id/approve", apiHandler.ApproveProduct)
	moderation.PATCH("/queue/:id/reject", apiHandler.RejectProduct)
	moderation.PATCH("/queue/:id/feature", apiHandler.FeatureProduct)
	moderation.GET("/reported", apiHandler.ReportedProducts)
	moderation.DELETE("/reported/:id", apiHandler.RemoveReportedProduct)

	// Admin surface
	admin := router.Group("/api/admin")
	admin.Use(routeGate.RequireAPI(entitlement.RequireAdmin))

	admin.GET("/users", apiHandler.ManageUsers)
	admin.PATCH("/users/:email/promote", apiHandler.PromoteAdmin)
	admin.PATCH("/users/:email/demote", apiHandler.DemoteAdmin)
	admin.GET("/coupons", apiHandler.AdminCoupons)
	admin.POST("/coupons", apiHandler.AddCoupon)
	admin.DELETE("/coupons/:id", apiHandler.DeleteCoupon)
	admin.GET("/coupon-analytics", apiHandler.CouponAnalytics)
	admin.GET("/statistics", apiHandler.Statistics)

	// ----------------------------
	// Protected Web Routes
	// ----------------------------

	dashboard := router.Group("/dashboardLayout")
	dashboard.Use(routeGate.Require(entitlement.RequireAuthenticated))

	dashboard.GET("/profile", func(c *gin.Context) {
		c.File("./web/dashboard.html")
	})
	dashboard.GET("/my-products", func(c *gin.Context) {
		c.File("./web/dashboard.html")
	})

	reviewQueue := router.Group("/dashboardLayout/review-queue")
	reviewQueue.Use(routeGate.Require(entitlement.RequireMembership))
	reviewQueue.GET("", func(c *gin.Context) {
		c.File("./web/dashboard.html")
	})

	adminWeb := router.Group("/dashboardLayout/admin")
	adminWeb.Use(routeGate.Require(entitlement.RequireAdmin))
	adminWeb.GET("", func(c *gin.Context) {
		c.File("./web/dashboard.html")
	})

	logger.Info("router assembled", map[string]any{
		"routes": len(router.Routes()),
	})

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		cancelSub()
		loginLimiter.Stop()
		if err := infra.Redis.Close(); err != nil {
			return err
		}
		return infra.DB.Close()
	}, nil
}
