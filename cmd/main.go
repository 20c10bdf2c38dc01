package main

import (
	"affiliate-service/internal/handler"
	mid "affiliate-service/internal/middleware"
	"affiliate-service/internal/store"
	"affiliate-service/internal/upstream"
	"affiliate-service/pkg/config"
	"affiliate-service/pkg/database"
	"affiliate-service/pkg/jwtutil"
	"affiliate-service/pkg/logger"
	"affiliate-service/prometheus"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; production environments set real env vars
	_ = godotenv.Load()

	appConfig, err := config.Load("affiliate-service")
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.InitLogger(appConfig)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	log.Info("Starting affiliate-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	db, err := database.New(appConfig)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established and categories seeded")

	st := store.New(db, log)
	up := upstream.NewClient(&appConfig.Affiliate, log)
	jwt := jwtutil.New(&appConfig.JWT)
	h := handler.New(st, up, log)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", h.Health)

	api := e.Group("/api")

	// Catalog
	api.GET("/products", h.SearchProducts)
	api.GET("/products/:product_id", h.GetProduct)
	api.POST("/products", h.UpsertProduct)
	api.GET("/search", h.LiveSearch)

	// Affiliate link tracking
	api.POST("/products/:product_id/link", h.RecordLink)
	api.GET("/products/:product_id/link", h.GetLink)
	api.POST("/links/:product_id/click", h.TrackClick)
	api.POST("/links/:product_id/conversion", h.TrackConversion)

	// Saved products, scoped by the X-Session-ID header
	api.POST("/products/:product_id/save", h.SaveProduct)
	api.DELETE("/products/:product_id/save", h.UnsaveProduct)
	api.GET("/saved", h.ListSaved)

	// Categories and stats
	api.GET("/categories", h.ListCategories)
	api.GET("/stats", h.GetStats)

	// Administrative routes
	admin := api.Group("/admin", mid.AdminAuth(jwt))
	admin.DELETE("/products/:product_id", h.DeleteProduct)
	admin.PUT("/categories/:category_id", h.UpsertCategory)
	admin.GET("/searches", h.RecentSearches)

	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
