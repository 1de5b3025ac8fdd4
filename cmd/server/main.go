package main // Entry point package

import (
	"log" // Logging library

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/roshnikutty/neighborfoods-api/internal/config"
	"github.com/roshnikutty/neighborfoods-api/internal/database"
	"github.com/roshnikutty/neighborfoods-api/internal/handler"
	"github.com/roshnikutty/neighborfoods-api/internal/middleware"
	"github.com/roshnikutty/neighborfoods-api/internal/queue"
	"github.com/roshnikutty/neighborfoods-api/internal/repository"
	"github.com/roshnikutty/neighborfoods-api/internal/router"
	queue_publisher "github.com/roshnikutty/neighborfoods-api/internal/service"
)

func main() {
	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}

	sellers := repository.NewSellerRepo(db)
	buyers := repository.NewBuyerRepo(db)
	users := repository.NewUserRepo(db)

	h := router.Handlers{
		Auth:        handler.NewAuthHandler(cfg, users),
		Meals:       handler.NewMealHandler(sellers),
		Buyers:      handler.NewBuyerHandler(buyers),
		Reservation: handler.NewReservationHandler(sellers, queue_publisher.PublishMealReserved),
		Cache:       middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
	}

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	router.Register(e, h, cfg.JWTSecret)

	// Consume meal.reserved events in the background; the consumer has its
	// own reconnect loop and never takes the API down with it.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
