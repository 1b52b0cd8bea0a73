package routes

import (
	"setsweet/controllers"
	"setsweet/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterAuthRoutes(rg *gin.RouterGroup, container *ServiceContainer) {
	authController := controllers.NewAuthController(container.DB, container.JWTSecret, container.JWTIssuer, container.JWTExpiration)

	// Public routes
	rg.POST("/register", authController.Register)
	rg.POST("/login", authController.Login)

	auth := rg.Group("/auth")
	auth.Use(middleware.AuthMiddleware(container.JWTSecret))
	{
		auth.GET("/me", authController.Me)
	}
}
