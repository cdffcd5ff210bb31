package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/mzohaibq/roomstay/internal/booking"
	"github.com/mzohaibq/roomstay/internal/config"
	"github.com/mzohaibq/roomstay/internal/database"
	"github.com/mzohaibq/roomstay/internal/handler"
	"github.com/mzohaibq/roomstay/internal/logger"
	mw "github.com/mzohaibq/roomstay/internal/middleware"
	"github.com/mzohaibq/roomstay/internal/queue"
	"github.com/mzohaibq/roomstay/internal/repository"
	"github.com/mzohaibq/roomstay/internal/router"
	"github.com/mzohaibq/roomstay/internal/service"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log := logger.New(cfg.Env)
	defer func() { _ = log.Sync() }()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal("database connect failed", zap.Error(err))
	}
	defer db.Close()

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(migrateCtx, db); err != nil {
		cancel()
		log.Fatal("migrations failed", zap.Error(err))
	}
	cancel()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unavailable, cache and rate limiting disabled")
	}

	amqpURL := os.Getenv("RABBITMQ_URL")
	if amqpURL == "" {
		amqpURL = os.Getenv("AMQP_URL")
	}
	publisher := service.NewEventPublisher(amqpURL, log)
	go queue.StartConsumer(amqpURL, log)

	// Repositories.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	properties := repository.NewPropertyRepo(db)
	categories := repository.NewRoomCategoryRepo(db)
	bookings := repository.NewBookingRepo(db)

	engine := booking.NewEngine(bookings, booking.WithPublisher(publisher))

	// Handlers.
	authH := handler.NewAuthHandler(cfg, users, tokens)
	publicH := handler.NewPublicHandler(properties, categories, engine)
	bookingH := handler.NewBookingHandler(engine, bookings, publisher)
	vendorPropH := handler.NewVendorPropertyHandler(properties, cfg.DefaultCurrency)
	vendorCatH := handler.NewVendorRoomCategoryHandler(categories, properties)
	vendorBookH := handler.NewVendorBookingHandler(bookings, publisher)
	adminH := handler.NewAdminHandler(users, bookings, publisher)

	vendorStatus := func(ctx context.Context, id uint64) (string, error) {
		u, err := users.GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		return u.VendorStatus, nil
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Use(echomw.Recover())
	e.Use(mw.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	cache := mw.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, publicH, bookingH, cfg.JWTSecret, cache)
	router.RegisterCustomer(e, bookingH, cfg.JWTSecret)
	router.RegisterVendor(e, vendorPropH, vendorCatH, vendorBookH, cfg.JWTSecret, vendorStatus)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
