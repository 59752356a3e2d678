package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "portfolio-backend/docs" // swagger docs

	"portfolio-backend/internal/auth"
	"portfolio-backend/internal/cache"
	"portfolio-backend/internal/config"
	"portfolio-backend/internal/db"
	"portfolio-backend/internal/handler"
	"portfolio-backend/internal/mailer"
	"portfolio-backend/internal/model"
	"portfolio-backend/internal/repository"
	"portfolio-backend/internal/router"
	"portfolio-backend/internal/service"
	"portfolio-backend/internal/storage"
)

// @title Portfolio Backend API
// @version 1.0
// @description Portfolio website backend: owner signup/login, profile picture upload to object storage, and contact form relay.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v (using existing environment)", err)
	}

	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cacheClient.Ping(pingCtx); err != nil {
		log.Printf("redis unavailable, running without cache: %v", err)
	}
	cancelPing()

	initCtx, cancelInit := context.WithTimeout(context.Background(), 10*time.Second)
	objectStore, err := storage.NewS3Store(initCtx, storage.S3Options{
		Region:        cfg.S3Region,
		Bucket:        cfg.S3Bucket,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		Endpoint:      cfg.S3Endpoint,
		PublicBaseURL: cfg.S3PublicBaseURL,
		SignedURLTTL:  cfg.SignedURLTTL,
		Overwrite:     cfg.UploadOverwrite,
	})
	cancelInit()
	if err != nil {
		log.Fatalf("object store init: %v", err)
	}

	smtpMailer, err := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom, cfg.MailTo)
	if err != nil {
		log.Fatalf("mailer init: %v", err)
	}

	// Initialize repositories and auth components
	userRepo := repository.NewUserRepository(gormDB)
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTTTL)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	profileService := service.NewProfileService(userRepo, objectStore, cacheClient, cfg.UploadMaxBytes)
	contactService := service.NewContactService(smtpMailer)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(profileService)
	contactHandler := handler.NewContactHandler(contactService)

	// Register routes
	router.Register(e, cfg, authHandler, profileHandler, contactHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
