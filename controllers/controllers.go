package controllers

import (
	"errors"

	"setsweet/services"
	"setsweet/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// callerID returns the authenticated user's id set by the auth middleware.
func callerID(c *gin.Context) primitive.ObjectID {
	return c.MustGet("userId").(primitive.ObjectID)
}

// objectIDParam parses a path parameter as an ObjectId, replying 400 itself
// when the value is malformed.
func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid "+name, nil)
		return primitive.NilObjectID, false
	}
	return id, true
}

// respondServiceError maps service sentinel errors onto HTTP statuses.
func respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		utils.NotFoundResponse(c, "Project not found")
	case errors.Is(err, services.ErrSceneNotFound):
		utils.NotFoundResponse(c, "Scene not found")
	case errors.Is(err, services.ErrSlateNotFound):
		utils.NotFoundResponse(c, "Slate not found")
	case errors.Is(err, services.ErrFrameNotFound):
		utils.NotFoundResponse(c, "Frame not found")
	case errors.Is(err, services.ErrUserNotFound):
		utils.NotFoundResponse(c, "User not found")
	case errors.Is(err, services.ErrForbidden):
		utils.ForbiddenResponse(c, "You do not have access to this project")
	case errors.Is(err, services.ErrAlreadyShared):
		utils.BadRequestResponse(c, "Project already shared with this user", nil)
	case errors.Is(err, services.ErrInvitePending):
		utils.BadRequestResponse(c, "Invitation already pending for this email", nil)
	case errors.Is(err, services.ErrNoInvitation):
		utils.NotFoundResponse(c, "No pending invitation for this project")
	case errors.Is(err, services.ErrFrameLimit):
		utils.BadRequestResponse(c, "Storyboard frame limit reached", nil)
	case errors.Is(err, services.ErrInvalidCount):
		utils.BadRequestResponse(c, "Frame count must be between 0 and 30", nil)
	case errors.Is(err, services.ErrInvalidPayload):
		utils.BadRequestResponse(c, err.Error(), nil)
	default:
		utils.InternalServerErrorResponse(c, fallback, nil)
	}
}
