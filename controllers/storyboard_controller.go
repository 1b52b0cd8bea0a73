package controllers

import (
	"mime/multipart"
	"strconv"

	"setsweet/services"
	"setsweet/utils"

	"github.com/gin-gonic/gin"
)

type StoryboardController struct {
	storyboardService *services.StoryboardService
	maxImageSize      int64
}

func NewStoryboardController(storyboardService *services.StoryboardService, maxImageSize int64) *StoryboardController {
	return &StoryboardController{
		storyboardService: storyboardService,
		maxImageSize:      maxImageSize,
	}
}

func (stc *StoryboardController) ListFrames(c *gin.Context) {
	sceneID, ok := objectIDParam(c, "sceneId")
	if !ok {
		return
	}

	frames, err := stc.storyboardService.ListFrames(c.Request.Context(), sceneID, callerID(c))
	if err != nil {
		respondServiceError(c, err, "Failed to list frames")
		return
	}

	utils.SuccessResponse(c, "Frames retrieved", frames)
}

func (stc *StoryboardController) AddFrame(c *gin.Context) {
	sceneID, ok := objectIDParam(c, "sceneId")
	if !ok {
		return
	}

	frame, err := stc.storyboardService.AddFrame(c.Request.Context(), sceneID, callerID(c))
	if err != nil {
		respondServiceError(c, err, "Failed to create frame")
		return
	}

	utils.CreatedResponse(c, "Frame created", frame)
}

type batchRequest struct {
	Count *int `json:"count" binding:"required"`
}

func (stc *StoryboardController) SetFrameCount(c *gin.Context) {
	sceneID, ok := objectIDParam(c, "sceneId")
	if !ok {
		return
	}

	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Count is required", nil)
		return
	}

	frames, err := stc.storyboardService.SetFrameCount(c.Request.Context(), sceneID, callerID(c), *req.Count)
	if err != nil {
		respondServiceError(c, err, "Failed to set frame count")
		return
	}

	utils.SuccessResponse(c, "Storyboard replaced", frames)
}

func (stc *StoryboardController) DeleteFrame(c *gin.Context) {
	sceneID, ok := objectIDParam(c, "sceneId")
	if !ok {
		return
	}
	frameID, ok := objectIDParam(c, "frameId")
	if !ok {
		return
	}

	frames, err := stc.storyboardService.DeleteFrame(c.Request.Context(), sceneID, callerID(c), frameID)
	if err != nil {
		respondServiceError(c, err, "Failed to delete frame")
		return
	}

	utils.SuccessResponse(c, "Frame deleted", frames)
}

func (stc *StoryboardController) AttachImage(c *gin.Context) {
	sceneID, ok := objectIDParam(c, "sceneId")
	if !ok {
		return
	}
	frameID, ok := objectIDParam(c, "frameId")
	if !ok {
		return
	}

	file, header, ok := stc.imageUpload(c)
	if !ok {
		return
	}
	defer file.Close()

	frame, err := stc.storyboardService.AttachImage(c.Request.Context(), sceneID, callerID(c), frameID, file, header)
	if err != nil {
		respondServiceError(c, err, "Failed to upload image")
		return
	}

	utils.SuccessResponse(c, "Image uploaded", frame)
}

// AttachImageByIndex is the index-addressed upload used by the capture flow;
// it accepts an optional focalLength form field alongside the image.
func (stc *StoryboardController) AttachImageByIndex(c *gin.Context) {
	sceneID, ok := objectIDParam(c, "sceneId")
	if !ok {
		return
	}

	frameIndex, err := strconv.Atoi(c.Param("frameIndex"))
	if err != nil || frameIndex < 0 {
		utils.BadRequestResponse(c, "Invalid frame index", nil)
		return
	}

	var focalLength *float64
	if raw := c.PostForm("focalLength"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			utils.BadRequestResponse(c, "Invalid focal length", nil)
			return
		}
		focalLength = &parsed
	}

	file, header, ok := stc.imageUpload(c)
	if !ok {
		return
	}
	defer file.Close()

	frame, err := stc.storyboardService.AttachImageByIndex(c.Request.Context(), sceneID, callerID(c), frameIndex, file, header, focalLength)
	if err != nil {
		respondServiceError(c, err, "Failed to upload image")
		return
	}

	utils.SuccessResponse(c, "Image uploaded", frame)
}

func (stc *StoryboardController) imageUpload(c *gin.Context) (multipart.File, *multipart.FileHeader, bool) {
	header, err := c.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, "Image file is required", nil)
		return nil, nil, false
	}

	if err := utils.ValidateImageUpload(header, stc.maxImageSize); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return nil, nil, false
	}

	file, err := header.Open()
	if err != nil {
		utils.InternalServerErrorResponse(c, "Failed to read upload", nil)
		return nil, nil, false
	}

	return file, header, true
}
