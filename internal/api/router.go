// internal/api/router.go
package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chukainspires/coachsite/internal/config"
	"github.com/chukainspires/coachsite/internal/di"
	"github.com/chukainspires/coachsite/internal/services"
	"github.com/chukainspires/coachsite/internal/utils"
)

// SetupRouter wires the HTTP surface. Services come from the container; the
// router never constructs them.
func SetupRouter(cfg *config.Config) (*gin.Engine, error) {
	container := di.GetContainer()

	contentService, ok := container.Get("content").(*services.ContentService)
	if !ok {
		return nil, fmt.Errorf("content service not initialized")
	}

	draftService, ok := container.Get("drafts").(*services.DraftService)
	if !ok {
		return nil, fmt.Errorf("draft service not initialized")
	}

	authService, ok := container.Get("auth").(*services.AuthService)
	if !ok {
		return nil, fmt.Errorf("auth service not initialized")
	}

	submissionService, ok := container.Get("submissions").(*services.SubmissionService)
	if !ok {
		return nil, fmt.Errorf("submission service not initialized")
	}

	imageService, ok := container.Get("images").(*services.ImageService)
	if !ok {
		return nil, fmt.Errorf("image service not initialized")
	}

	handler := NewHandler(contentService, draftService, authService, submissionService, imageService)
	hub := NewUpdateHub(contentService, utils.GetLogger())

	if !cfg.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(corsMiddleware())
	r.Use(requestIDMiddleware())

	// The marketing site itself
	r.Static("/site", cfg.StaticDir)

	r.GET("/health", handler.Health)

	// ===============================
	// Public API
	// ===============================
	r.GET("/api/content", handler.GetContent)
	r.POST("/api/contact", handler.SubmitContact)
	r.GET("/ws/updates", hub.Serve)

	// ===============================
	// Operator API
	// ===============================
	limiter := NewRateLimiter()
	r.POST("/api/admin/login", limiter.Middleware(5, time.Minute), handler.Login)

	admin := r.Group("/api/admin", AuthRequired(authService))
	{
		admin.POST("/logout", handler.Logout)

		admin.GET("/draft", handler.GetDraft)
		admin.POST("/draft", handler.BeginDraft)
		admin.PATCH("/draft/field", handler.SetDraftField)
		admin.PATCH("/draft/item", handler.SetDraftItemField)
		admin.POST("/draft/items", handler.AddDraftItem)
		admin.DELETE("/draft/items/:section/:index", handler.RemoveDraftItem)
		admin.POST("/draft/save", handler.SaveDraft)
		admin.POST("/draft/reset", handler.ResetDraft)

		admin.GET("/submissions", handler.ListSubmissions)
		admin.DELETE("/submissions/:id", handler.DeleteSubmission)

		admin.GET("/images", handler.ListImages)
		admin.POST("/images", handler.SaveImage)
		admin.DELETE("/images/:id", handler.DeleteImage)
	}

	return r, nil
}
