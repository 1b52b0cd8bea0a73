package routes

import (
	"setsweet/controllers"
	"setsweet/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterInvitationRoutes(rg *gin.RouterGroup, container *ServiceContainer) {
	invitationController := controllers.NewInvitationController(container.InvitationService)

	invitations := rg.Group("/invitations")
	invitations.Use(middleware.AuthMiddleware(container.JWTSecret))
	{
		invitations.GET("", invitationController.ListInvitations)
		invitations.POST("/:projectId/accept", invitationController.AcceptInvitation)
		invitations.POST("/:projectId/decline", invitationController.DeclineInvitation)
	}
}
