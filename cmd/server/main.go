package main

import (
	"alcyxob/exercise-screen/internal/api"
	"alcyxob/exercise-screen/internal/config"
	"alcyxob/exercise-screen/internal/domain"
	"alcyxob/exercise-screen/internal/picker"
	"alcyxob/exercise-screen/internal/repository/memory"
	"alcyxob/exercise-screen/internal/screen"
	"alcyxob/exercise-screen/internal/service"
	"alcyxob/exercise-screen/internal/storage"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// @title Exercise Screen API
// @version 1.0
// @description Exercise list with an add-exercise form and a detail overlay, one screen per session.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	log.Println("Starting Exercise Screen Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = randomSecret()
		log.Println("WARN: jwt.secret is not set; using a random secret, sessions will not survive a restart")
	}

	// --- Initialize Image Resolver ---
	var images storage.ImageURLResolver
	assets := api.StaticAssets{URLPrefix: cfg.Assets.URLPrefix, Dir: cfg.Assets.Dir}
	if cfg.S3.Enabled() {
		log.Println("Initializing S3 asset storage...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		fileStorage, err := storage.NewS3Storage(ctx, cfg.S3)
		cancel()
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
		}
		images = storage.NewBucketResolver(fileStorage, cfg.S3.AssetPrefix, storage.DefaultPresignedURLExpiry)
		assets.Dir = ""
	} else {
		log.Printf("Serving bundled images from %s under %s", cfg.Assets.Dir, cfg.Assets.URLPrefix)
		images = storage.NewStaticResolver(cfg.Assets.URLPrefix)
	}

	// --- Initialize Store ---
	exerciseRepo := memory.NewDefaultExerciseRepository()
	unsubscribe := exerciseRepo.Subscribe(func(all []*domain.Exercise) {
		if n := len(all); n > 0 {
			log.Printf("INFO: Exercise %s added (%d total)", all[n-1].ID, n)
		}
	})
	defer unsubscribe()

	// --- Initialize Services ---
	log.Println("Initializing services...")
	exerciseService := service.NewExerciseService(exerciseRepo)
	// Remote clients run their own picker and report back through the image endpoints.
	sessions := service.NewSessionService(cfg.JWT.Secret, cfg.JWT.Expiration, cfg.Sessions.Max, func() *screen.Screen {
		return screen.NewScreen(exerciseService, picker.Unavailable)
	})

	// --- Initialize Gin Engine ---
	router := gin.Default()

	log.Println("Setting up API routes...")
	api.SetupRoutes(router, exerciseService, sessions, images, assets)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatalf("FATAL: Could not generate session secret: %v", err)
	}
	return hex.EncodeToString(b)
}
