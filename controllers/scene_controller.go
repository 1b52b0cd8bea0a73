package controllers

import (
	"setsweet/models"
	"setsweet/services"
	"setsweet/utils"

	"github.com/gin-gonic/gin"
)

type SceneController struct {
	sceneService *services.SceneService
}

func NewSceneController(sceneService *services.SceneService) *SceneController {
	return &SceneController{sceneService: sceneService}
}

type createSceneRequest struct {
	Title string `json:"title" binding:"required"`
}

func (sc *SceneController) CreateScene(c *gin.Context) {
	projectID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var req createSceneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Title is required", nil)
		return
	}

	scene, err := sc.sceneService.Create(c.Request.Context(), projectID, callerID(c), req.Title)
	if err != nil {
		respondServiceError(c, err, "Failed to create scene")
		return
	}

	utils.CreatedResponse(c, "Scene created", scene)
}

func (sc *SceneController) ListScenes(c *gin.Context) {
	projectID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	scenes, err := sc.sceneService.ListByProject(c.Request.Context(), projectID, callerID(c))
	if err != nil {
		respondServiceError(c, err, "Failed to list scenes")
		return
	}

	utils.SuccessResponse(c, "Scenes retrieved", scenes)
}

func (sc *SceneController) GetScene(c *gin.Context) {
	sceneID, ok := objectIDParam(c, "sceneId")
	if !ok {
		return
	}

	scene, err := sc.sceneService.Get(c.Request.Context(), sceneID, callerID(c))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch scene")
		return
	}

	utils.SuccessResponse(c, "Scene retrieved", scene)
}

func (sc *SceneController) UpdateScene(c *gin.Context) {
	sceneID, ok := objectIDParam(c, "sceneId")
	if !ok {
		return
	}

	var update services.SceneUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.BadRequestResponse(c, "Invalid scene payload", nil)
		return
	}

	scene, err := sc.sceneService.Update(c.Request.Context(), sceneID, callerID(c), update)
	if err != nil {
		respondServiceError(c, err, "Failed to update scene")
		return
	}

	utils.SuccessResponse(c, "Scene updated", scene)
}

type notesRequest struct {
	Notes *string `json:"notes" binding:"required"`
}

func (sc *SceneController) UpdateNotes(c *gin.Context) {
	sceneID, ok := objectIDParam(c, "sceneId")
	if !ok {
		return
	}

	var req notesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Notes field is required", nil)
		return
	}

	scene, err := sc.sceneService.UpdateNotes(c.Request.Context(), sceneID, callerID(c), *req.Notes)
	if err != nil {
		respondServiceError(c, err, "Failed to update notes")
		return
	}

	utils.SuccessResponse(c, "Notes updated", scene)
}

type floorplanRequest struct {
	Floorplan models.Floorplan `json:"floorplan" binding:"required"`
}

func (sc *SceneController) UpdateFloorplan(c *gin.Context) {
	sceneID, ok := objectIDParam(c, "sceneId")
	if !ok {
		return
	}

	var req floorplanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid floorplan payload", nil)
		return
	}

	scene, err := sc.sceneService.UpdateFloorplan(c.Request.Context(), sceneID, callerID(c), req.Floorplan)
	if err != nil {
		respondServiceError(c, err, "Failed to update floorplan")
		return
	}

	utils.SuccessResponse(c, "Floorplan updated", scene)
}

func (sc *SceneController) DeleteScene(c *gin.Context) {
	sceneID, ok := objectIDParam(c, "sceneId")
	if !ok {
		return
	}

	if err := sc.sceneService.Delete(c.Request.Context(), sceneID, callerID(c)); err != nil {
		respondServiceError(c, err, "Failed to delete scene")
		return
	}

	utils.SuccessResponse(c, "Scene deleted", nil)
}
