package api

import (
	"alcyxob/exercise-screen/internal/screen"
	"alcyxob/exercise-screen/internal/service"
	"alcyxob/exercise-screen/internal/storage"
	"net/http"

	"github.com/gin-gonic/gin"
)

// StaticAssets serves bundled images from a local directory; leave Dir empty
// when they come from object storage instead.
type StaticAssets struct {
	URLPrefix string
	Dir       string
}

func SetupRoutes(
	router *gin.Engine,
	exerciseService service.ExerciseService,
	sessions service.SessionService[*screen.Screen],
	images storage.ImageURLResolver,
	assets StaticAssets,
) {
	exerciseHandler := NewExerciseHandler(exerciseService, images)
	sessionHandler := NewSessionHandler(sessions)
	screenHandler := NewScreenHandler(images)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	if assets.Dir != "" && assets.URLPrefix != "" {
		router.Static(assets.URLPrefix, assets.Dir)
	}

	apiV1 := router.Group("/api/v1")
	{
		// --- Exercise list (shared by every session) ---
		apiV1.GET("/exercises", exerciseHandler.ListExercises)
		apiV1.GET("/exercises/:id", exerciseHandler.GetExercise)

		// POST /api/v1/sessions - one per device; returns the Bearer token for /screen
		apiV1.POST("/sessions", sessionHandler.OpenSession)
	}

	screenGroup := apiV1.Group("/screen")
	screenGroup.Use(SessionMiddleware(sessions))
	{
		screenGroup.GET("", withScreen(screenHandler.GetScreen))
		screenGroup.POST("/add", withScreen(screenHandler.OpenAdd))
		screenGroup.POST("/detail/:id", withScreen(screenHandler.OpenDetail))
		screenGroup.POST("/close", withScreen(screenHandler.CloseOverlay))

		// --- Add form ---
		screenGroup.PATCH("/draft", withScreen(screenHandler.UpdateDraft))
		screenGroup.POST("/draft/submit", withScreen(screenHandler.Submit))
		screenGroup.POST("/draft/cancel", withScreen(screenHandler.Cancel))
		screenGroup.POST("/draft/image", withScreen(screenHandler.RequestImage))
		screenGroup.POST("/draft/image/:ticket", withScreen(screenHandler.ResolveImage))
	}
}
