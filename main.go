package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"gift-exchange-system/handlers"
	"gift-exchange-system/models"
	"gift-exchange-system/repository"
	"gift-exchange-system/services"
	"gift-exchange-system/utils"
	"gift-exchange-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	sessionTTL           = 24 * time.Hour
	invitationSweepEvery = 10 * time.Minute
	eventExpiryEvery     = 1 * time.Minute
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB, enough for cover photos
	})

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(allowedOriginsList, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	tokenSecret := os.Getenv("TOKEN_SECRET")
	if tokenSecret == "" {
		log.Fatal("TOKEN_SECRET environment variable not set")
	}

	// Cover photo uploads are optional; without R2 credentials the upload
	// endpoint just errors while everything else works.
	if os.Getenv("CLOUDFLARE_ACCOUNT_ID") != "" {
		if err := utils.InitR2(); err != nil {
			log.Fatal("failed to initialize R2 client:", err)
		}
	} else {
		log.Println("⚠️  R2 not configured, cover photo uploads disabled")
	}

	// TranslateError turns driver duplicate-key failures into
	// gorm.ErrDuplicatedKey, which the services map onto conflict errors.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Invitation{},
		&models.Event{},
		&models.EventParticipant{},
		&models.Gift{},
		&models.GiftReview{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	repo := repository.NewRepository(db)
	tokens := utils.NewTokenManager(tokenSecret, sessionTTL)

	authService := services.NewAuthService(repo, tokens)
	invitationService := services.NewInvitationService(repo)
	eventService := services.NewEventService(repo)
	giftService := services.NewGiftService(repo)
	reviewService := services.NewReviewService(repo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sweeper := invitationService.StartSweepScheduler(invitationSweepEvery)
	defer func() { _ = sweeper.Shutdown() }()

	go workers.PollExpiredEvents(ctx, eventService, eventExpiryEvery)

	handlers.SetupAuthRoutes(app, authService, tokens)
	handlers.SetupInvitationRoutes(app, invitationService, tokens)
	handlers.SetupEventRoutes(app, eventService, tokens)
	handlers.SetupGiftRoutes(app, giftService, tokens)
	handlers.SetupReviewRoutes(app, reviewService, tokens)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "5300"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Printf("✅ Invitation sweep running (every %s)", invitationSweepEvery)
	log.Printf("✅ Event expiry worker running (every %s)", eventExpiryEvery)

	<-ctx.Done()
	log.Println("Shutting down server...")
	_ = app.Shutdown()
}
