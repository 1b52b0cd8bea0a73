package routes

import (
	"setsweet/controllers"
	"setsweet/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterProjectRoutes(rg *gin.RouterGroup, container *ServiceContainer) {
	projectController := controllers.NewProjectController(container.ProjectService, container.MaxScriptSize)
	sceneController := controllers.NewSceneController(container.SceneService)

	projects := rg.Group("/projects")
	projects.Use(middleware.AuthMiddleware(container.JWTSecret))
	{
		projects.GET("", projectController.ListProjects)
		projects.POST("", projectController.CreateProject)
		projects.GET("/:id", projectController.GetProject)
		projects.DELETE("/:id", projectController.DeleteProject)

		projects.POST("/:id/share", projectController.ShareProject)

		// Scenes are created and listed through their parent project so the
		// scene routes stay unambiguous (no id-shape sniffing).
		projects.GET("/:id/scenes", sceneController.ListScenes)
		projects.POST("/:id/scenes", sceneController.CreateScene)

		projects.GET("/:id/slates", projectController.ListSlates)
		projects.POST("/:id/slates", projectController.AddSlate)
		projects.DELETE("/:id/slates/:slateId", projectController.DeleteSlate)

		projects.GET("/:id/script", projectController.GetScript)
		projects.POST("/:id/script", projectController.UploadScript)
		projects.DELETE("/:id/script", projectController.DeleteScript)
	}
}
