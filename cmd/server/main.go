package main // Entry point package

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fleet-management/internal/auth"
	"github.com/iliyamo/fleet-management/internal/config"
	"github.com/iliyamo/fleet-management/internal/database"
	"github.com/iliyamo/fleet-management/internal/handler"
	"github.com/iliyamo/fleet-management/internal/middleware"
	"github.com/iliyamo/fleet-management/internal/queue"
	"github.com/iliyamo/fleet-management/internal/repository"
	"github.com/iliyamo/fleet-management/internal/router"
	queue_publisher "github.com/iliyamo/fleet-management/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the reset-intent store and the auth rate limiter.  A
	// nil client falls back to an in-process intent store and disables
	// rate limiting, so the service still runs without Redis.
	rdb := config.NewRedisClient()
	var intents auth.IntentStore
	if rdb != nil {
		intents = auth.NewRedisIntentStore(rdb)
	} else {
		log.Println("redis unavailable; using in-memory reset intent store")
		intents = auth.NewMemoryIntentStore()
	}

	userRepo := repository.NewUserRepo(db)
	otpRepo := repository.NewOTPRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	driverRepo := repository.NewDriverRepo(db)
	vehicleRepo := repository.NewVehicleRepo(db)
	documentRepo := repository.NewDocumentRepo(db)
	maintenanceRepo := repository.NewMaintenanceRepo(db)

	flow := auth.NewFlow(
		userRepo, otpRepo, tokenRepo, intents,
		queue_publisher.SMSDelivery{},
		cfg.BcryptCost,
		time.Duration(cfg.OTPTTLMin)*time.Minute,
		time.Duration(cfg.ResetTTLMin)*time.Minute,
	)

	// The consumer turns queued OTP events into (stubbed) SMS messages.
	// It reconnects forever on its own; the server does not wait for it.
	go func() {
		if err := queue.StartOTPConsumer(); err != nil {
			log.Printf("sms consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	authHandler := handler.NewAuthHandler(cfg, userRepo, driverRepo, tokenRepo, flow)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret, limiter)

	managerHandler := handler.NewManagerHandler(vehicleRepo, driverRepo, documentRepo, maintenanceRepo)
	router.RegisterManager(e, managerHandler, cfg.JWTSecret)

	driverHandler := handler.NewDriverFleetHandler(driverRepo, vehicleRepo, documentRepo)
	router.RegisterDriver(e, driverHandler, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
