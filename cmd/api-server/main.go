package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"vinylshop/internal/auth"
	"vinylshop/internal/catalog"
	"vinylshop/internal/events"
	"vinylshop/internal/images"
	"vinylshop/internal/importer"
	"vinylshop/internal/orders"
	"vinylshop/internal/product"
	"vinylshop/internal/storage"
	"vinylshop/pkg/config"
	"vinylshop/pkg/database"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	dbCfg := database.DefaultConfig()
	db := database.MustOpen(dbCfg)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Db,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("redis unreachable, rate limiting disabled: %v", err)
			rdb = nil
		}
		cancel()
	}

	var uploader storage.Uploader
	if cld, err := storage.NewCloudinary(cfg.Cloudinary); err != nil {
		log.Printf("image hosting disabled: %v", err)
	} else {
		uploader = cld
	}

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	hub := events.NewHub()
	router.GET("/ws", events.WSHandler(hub))

	router.GET("/api/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "db_error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": dbCfg.Path, "ws_clients": hub.Count()})
	})

	// Auth
	tokenSvc := auth.TokenService{
		Secret:   []byte(cfg.JWT.Secret),
		Issuer:   cfg.JWT.Issuer,
		Duration: cfg.JWT.Duration(),
	}
	authRepo := auth.NewRepo(db)
	authHandler := auth.NewHandler(authRepo, tokenSvc, rdb)
	authHandler.RegisterRoutes(router.Group("/api/auth"))

	// Public catalog
	imageRepo := images.NewRepo(db)
	catalogRepo := catalog.NewRepo(db)
	catalogHandler := catalog.NewHandler(catalogRepo, imageRepo)
	catalogHandler.RegisterProductRoutes(router.Group("/api/products"))
	catalogHandler.RegisterCategoryRoutes(router.Group("/api/categories"))

	adminGate := []gin.HandlerFunc{auth.Middleware(tokenSvc, authRepo), auth.RequireAdmin()}

	// Gallery sub-resource (listing public, mutations admin)
	imageHandler := images.NewHandler(imageRepo)
	imageHandler.RegisterRoutes(router.Group("/api/products"), adminGate...)

	// Admin panel
	adminGroup := router.Group("/api/admin", adminGate...)

	productRepo := product.NewRepo(db)
	productSvc := product.NewService(productRepo, imageRepo, uploader)
	productHandler := product.NewHandler(productSvc, importer.New(db), hub)
	productHandler.RegisterRoutes(adminGroup)

	orderRepo := orders.NewRepo(db)
	orderHandler := orders.NewHandler(orderRepo, hub)
	orderHandler.RegisterRoutes(adminGroup)

	httpSrv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("HTTP API server listening on %s", cfg.Server.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("shutdown signal received: %s", sig)
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	log.Println("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
	log.Println("server stopped")
}
