package routes

import (
	"setsweet/controllers"
	"setsweet/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterSceneRoutes(rg *gin.RouterGroup, container *ServiceContainer) {
	sceneController := controllers.NewSceneController(container.SceneService)
	storyboardController := controllers.NewStoryboardController(container.StoryboardService, container.MaxImageSize)

	scenes := rg.Group("/scenes")
	scenes.Use(middleware.AuthMiddleware(container.JWTSecret))
	{
		scenes.GET("/:sceneId", sceneController.GetScene)
		scenes.PUT("/:sceneId", sceneController.UpdateScene)
		scenes.DELETE("/:sceneId", sceneController.DeleteScene)

		scenes.PUT("/:sceneId/notes", sceneController.UpdateNotes)
		scenes.PUT("/:sceneId/floorplan", sceneController.UpdateFloorplan)

		scenes.GET("/:sceneId/storyboard", storyboardController.ListFrames)
		scenes.POST("/:sceneId/storyboard", storyboardController.AddFrame)
		scenes.POST("/:sceneId/storyboard/batch", storyboardController.SetFrameCount)
		scenes.DELETE("/:sceneId/storyboard/:frameId", storyboardController.DeleteFrame)
		scenes.POST("/:sceneId/storyboard/:frameId/image", storyboardController.AttachImage)

		// Index-addressed variant used by the capture flow.
		scenes.POST("/:sceneId/storyboard/frames/:frameIndex/image", storyboardController.AttachImageByIndex)
	}
}
