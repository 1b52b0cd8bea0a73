package controllers

import (
	"errors"
	"net/http"
	"time"

	"setsweet/services"
	"setsweet/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AuthController struct {
	authService *services.AuthService
}

func NewAuthController(db *mongo.Database, jwtSecret, jwtIssuer string, jwtExpiration time.Duration) *AuthController {
	return &AuthController{
		authService: services.NewAuthService(db, jwtSecret, jwtIssuer, jwtExpiration),
	}
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (ac *AuthController) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Email and password are required", nil)
		return
	}

	user, err := ac.authService.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateUser):
			utils.BadRequestResponse(c, "User already exists", nil)
		case errors.Is(err, services.ErrInvalidPayload):
			utils.BadRequestResponse(c, err.Error(), nil)
		default:
			utils.InternalServerErrorResponse(c, "Failed to register user", nil)
		}
		return
	}

	utils.CreatedResponse(c, "User registered", user)
}

func (ac *AuthController) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Email and password are required", nil)
		return
	}

	result, err := ac.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			utils.NotFoundResponse(c, "User not found")
		case errors.Is(err, services.ErrInvalidPassword):
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid password", nil)
		default:
			utils.InternalServerErrorResponse(c, "Failed to log in", nil)
		}
		return
	}

	utils.SuccessResponse(c, "Logged in", result)
}

func (ac *AuthController) Me(c *gin.Context) {
	userID := c.MustGet("userId").(primitive.ObjectID)

	user, err := ac.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.NotFoundResponse(c, "User not found")
			return
		}
		utils.InternalServerErrorResponse(c, "Failed to fetch profile", nil)
		return
	}

	utils.SuccessResponse(c, "Profile retrieved", user)
}
