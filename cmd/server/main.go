package main // Entry point for the gateway HTTP server

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"

	"github.com/irondb/gateway/internal/config"
	"github.com/irondb/gateway/internal/database"
	"github.com/irondb/gateway/internal/handler"
	"github.com/irondb/gateway/internal/middleware"
	"github.com/irondb/gateway/internal/repository"
	"github.com/irondb/gateway/internal/router"
	"github.com/irondb/gateway/internal/service"
)

func main() {
	cfg := config.Load()

	pool, err := database.Open(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer pool.Close()

	users := repository.NewUserRepo(pool)
	catalog := repository.NewCatalogRepo(pool)
	jobs := service.NewJobDispatcher()

	// Rate limiting degrades to a no-op when Redis is unreachable.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unreachable; rate limiting disabled")
	}
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, router.Handlers{
		Health:    handler.NewHealthHandler(pool),
		Auth:      handler.NewAuthHandler(cfg, users),
		Google:    handler.NewGoogleHandler(cfg, users),
		Catalog:   handler.NewCatalogHandler(catalog),
		SQL:       handler.NewSQLHandler(catalog),
		Functions: handler.NewFunctionHandler(catalog),
		Policies:  handler.NewPolicyHandler(catalog),
		Jobs:      handler.NewJobHandler(jobs),
	}, cfg.JWTSecret, limiter)

	addr := ":" + cfg.Port
	log.Printf("gateway listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
