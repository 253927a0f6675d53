package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ducnguyen/caretrack/internal/config"
	"github.com/ducnguyen/caretrack/internal/handler"
	"github.com/ducnguyen/caretrack/internal/middleware"
	"github.com/ducnguyen/caretrack/internal/model"
	"github.com/ducnguyen/caretrack/internal/repository"
	"github.com/ducnguyen/caretrack/internal/service"
	"github.com/ducnguyen/caretrack/migrations"
	"github.com/ducnguyen/caretrack/pkg/auth"
	"github.com/ducnguyen/caretrack/pkg/mailer"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// @title           CareTrack API
// @version         1.0
// @description     Patient admissions API with user accounts and OTP password reset.

// @contact.name   API Support
// @contact.email  support@caretrack.local

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:3000
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// ==================== Load Config ====================
	cfg := config.Load()
	log.Printf("🚀 Starting CareTrack API Server [env=%s]", cfg.App.Env)

	// ==================== Database (MySQL) ====================
	gormLogger := logger.Default.LogMode(logger.Info)
	if cfg.App.Env == "production" {
		gormLogger = logger.Default.LogMode(logger.Warn)
	}

	db, err := gorm.Open(mysql.Open(cfg.DB.DSN()), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	log.Println("✅ Connected to MySQL")

	// ==================== Run Migrations ====================
	if err := migrations.Run(cfg.DB.URL()); err != nil {
		log.Printf("⚠️  Migration warning: %v", err)
		log.Println("📦 Falling back to GORM AutoMigrate...")
		if err := db.AutoMigrate(&model.User{}, &model.Admission{}); err != nil {
			log.Fatalf("❌ Failed to migrate database: %v", err)
		}
	}
	log.Println("✅ Database migrated successfully")

	// ==================== Redis ====================
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("❌ Failed to connect to Redis: %v", err)
	}
	log.Println("✅ Connected to Redis")

	// ==================== Email (SMTP / Mailpit) ====================
	mailClient := mailer.New(mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		FromName: cfg.SMTP.FromName,
	})
	log.Printf("📧 SMTP configured: %s:%s", cfg.SMTP.Host, cfg.SMTP.Port)

	// ==================== Initialize Layers ====================
	// JWT Manager
	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Expiry)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	admissionRepo := repository.NewAdmissionRepository(db)
	otpStore := repository.NewRedisOTPStore(rdb)

	// Services
	authService := service.NewAuthService(userRepo, jwtManager, rdb)
	resetService := service.NewResetService(userRepo, otpStore, jwtManager, mailClient)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	resetHandler := handler.NewResetHandler(resetService)
	admissionHandler := handler.NewAdmissionHandler(admissionRepo)

	// ==================== Gin Router ====================
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Swagger configuration
	// Serve swagger.json at /docs/swagger.json to avoid conflict with /swagger/* wildcard
	router.StaticFile("/docs/swagger.json", "./docs/swagger.json")

	url := ginSwagger.URL("/docs/swagger.json")
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, url))

	// Global middleware
	router.Use(middleware.CORSMiddleware(cfg.CORS.Origins))
	router.Use(middleware.RequestIDMiddleware())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "caretrack-api",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	// ==================== API Routes ====================
	api := router.Group("/api")
	{
		// Public routes
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		// Password reset (token carried in the body)
		resetGroup := api.Group("/reset")
		{
			resetGroup.POST("/request", resetHandler.RequestOTP)
			resetGroup.POST("/verify", resetHandler.VerifyOTP)
			resetGroup.POST("/confirm", resetHandler.ConfirmReset)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(jwtManager, rdb))
		{
			protected.POST("/logout", authHandler.Logout)
			protected.GET("/profile", authHandler.GetProfile)

			protected.GET("/admissions", admissionHandler.List)
			protected.POST("/admissions", admissionHandler.Create)
			protected.PUT("/admissions/:id", admissionHandler.Update)
			protected.DELETE("/admissions/:id", admissionHandler.Delete)
		}
	}

	// ==================== Start Server ====================
	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server failed: %v", err)
		}
	}()

	log.Printf("🌐 CareTrack API running on http://0.0.0.0:%s", cfg.App.Port)
	log.Printf("📋 API docs: http://0.0.0.0:%s/swagger/index.html", cfg.App.Port)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	// Give ongoing requests 5 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server exited gracefully")
}
