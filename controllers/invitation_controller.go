package controllers

import (
	"setsweet/services"
	"setsweet/utils"

	"github.com/gin-gonic/gin"
)

type InvitationController struct {
	invitationService *services.InvitationService
}

func NewInvitationController(invitationService *services.InvitationService) *InvitationController {
	return &InvitationController{invitationService: invitationService}
}

func (ic *InvitationController) ListInvitations(c *gin.Context) {
	invitations, err := ic.invitationService.ListForUser(c.Request.Context(), callerID(c))
	if err != nil {
		respondServiceError(c, err, "Failed to list invitations")
		return
	}

	utils.SuccessResponse(c, "Invitations retrieved", invitations)
}

func (ic *InvitationController) AcceptInvitation(c *gin.Context) {
	projectID, ok := objectIDParam(c, "projectId")
	if !ok {
		return
	}

	if err := ic.invitationService.Accept(c.Request.Context(), projectID, callerID(c)); err != nil {
		respondServiceError(c, err, "Failed to accept invitation")
		return
	}

	utils.SuccessResponse(c, "Invitation accepted", nil)
}

func (ic *InvitationController) DeclineInvitation(c *gin.Context) {
	projectID, ok := objectIDParam(c, "projectId")
	if !ok {
		return
	}

	if err := ic.invitationService.Decline(c.Request.Context(), projectID, callerID(c)); err != nil {
		respondServiceError(c, err, "Failed to decline invitation")
		return
	}

	utils.SuccessResponse(c, "Invitation declined", nil)
}
