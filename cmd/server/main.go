// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chukainspires/coachsite/internal/api"
	"github.com/chukainspires/coachsite/internal/config"
	"github.com/chukainspires/coachsite/internal/di"
	"github.com/chukainspires/coachsite/internal/services"
	"github.com/chukainspires/coachsite/internal/store"
	"github.com/chukainspires/coachsite/internal/utils"
)

func main() {
	log.Println("starting coachsite server...")

	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	log.Printf("configuration loaded, port %s, store driver %s", cfg.Port, cfg.StoreDriver)

	// 2. Initialize logging
	if err := utils.InitLogger(filepath.Join(cfg.LogDir, "coachsite.log")); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	logger := utils.GetLogger()
	if cfg.DebugMode {
		logger.SetLogLevel(utils.DEBUG)
	}

	// 3. Open the record store
	st, err := store.Open(cfg)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer st.Close()
	log.Println("record store ready")

	// 4. Build services (dependency order) and register them
	if err := initServices(cfg, st, logger); err != nil {
		log.Fatalf("failed to initialize services: %v", err)
	}
	log.Println("services initialized")

	// 5. Initial content load + change-feed watch
	container := di.GetContainer()
	contentService := container.Get("content").(*services.ContentService)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	contentService.Load(ctx)
	contentService.Watch(ctx)
	defer contentService.Stop()

	// 6. Routes
	router, err := api.SetupRouter(cfg)
	if err != nil {
		log.Fatalf("failed to set up routes: %v", err)
	}
	log.Println("routes ready")

	// 7. Serve
	log.Printf("listening on http://localhost:%s", cfg.Port)
	runWithGracefulShutdown(router, cfg.Port)
}

// initServices builds every service and registers it in the container under
// the name the router looks up.
func initServices(cfg *config.Config, st store.Store, logger *utils.Logger) error {
	container := di.GetContainer()

	contentService := services.NewContentService(st, logger)
	container.Register("content", contentService)

	container.Register("drafts", services.NewDraftService(contentService, st, logger))

	authService, err := services.NewAuthService(cfg, logger)
	if err != nil {
		return err
	}
	container.Register("auth", authService)

	container.Register("submissions", services.NewSubmissionService(st, logger))
	container.Register("images", services.NewImageService(st))

	return nil
}

// runWithGracefulShutdown serves until SIGINT/SIGTERM, then drains in-flight
// requests.
func runWithGracefulShutdown(router *gin.Engine, port string) {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}

	log.Println("server stopped")
}
