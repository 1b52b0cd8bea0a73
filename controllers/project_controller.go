package controllers

import (
	"setsweet/models"
	"setsweet/services"
	"setsweet/utils"

	"github.com/gin-gonic/gin"
)

type ProjectController struct {
	projectService *services.ProjectService
	maxScriptSize  int64
}

func NewProjectController(projectService *services.ProjectService, maxScriptSize int64) *ProjectController {
	return &ProjectController{
		projectService: projectService,
		maxScriptSize:  maxScriptSize,
	}
}

type createProjectRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

func (pc *ProjectController) CreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Title is required", nil)
		return
	}

	project, err := pc.projectService.Create(c.Request.Context(), req.Title, req.Description, callerID(c))
	if err != nil {
		respondServiceError(c, err, "Failed to create project")
		return
	}

	utils.CreatedResponse(c, "Project created", project)
}

func (pc *ProjectController) ListProjects(c *gin.Context) {
	projects, err := pc.projectService.ListForUser(c.Request.Context(), callerID(c))
	if err != nil {
		respondServiceError(c, err, "Failed to list projects")
		return
	}

	utils.SuccessResponse(c, "Projects retrieved", projects)
}

func (pc *ProjectController) GetProject(c *gin.Context) {
	projectID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	project, err := pc.projectService.Get(c.Request.Context(), projectID, callerID(c))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch project")
		return
	}

	utils.SuccessResponse(c, "Project retrieved", project)
}

func (pc *ProjectController) DeleteProject(c *gin.Context) {
	projectID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	if err := pc.projectService.Delete(c.Request.Context(), projectID, callerID(c)); err != nil {
		respondServiceError(c, err, "Failed to delete project")
		return
	}

	utils.SuccessResponse(c, "Project deleted", nil)
}

type shareRequest struct {
	Email string `json:"email" binding:"required"`
}

func (pc *ProjectController) ShareProject(c *gin.Context) {
	projectID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var req shareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Email is required", nil)
		return
	}

	invitation, err := pc.projectService.Share(c.Request.Context(), projectID, callerID(c), req.Email)
	if err != nil {
		respondServiceError(c, err, "Failed to share project")
		return
	}

	utils.CreatedResponse(c, "Invitation sent", invitation)
}

type slateRequest struct {
	Roll    string              `json:"roll"`
	Scene   string              `json:"scene"`
	Take    string              `json:"take"`
	Prod    string              `json:"prod"`
	Dir     string              `json:"dir"`
	Cam     string              `json:"cam"`
	FPS     string              `json:"fps"`
	Date    string              `json:"date"`
	Toggles models.SlateToggles `json:"toggles"`
}

func (pc *ProjectController) AddSlate(c *gin.Context) {
	projectID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var req slateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid slate payload", nil)
		return
	}

	slate := models.Slate{
		Roll:    req.Roll,
		Scene:   req.Scene,
		Take:    req.Take,
		Prod:    req.Prod,
		Dir:     req.Dir,
		Cam:     req.Cam,
		FPS:     req.FPS,
		Date:    req.Date,
		Toggles: req.Toggles,
	}

	saved, err := pc.projectService.AddSlate(c.Request.Context(), projectID, callerID(c), slate)
	if err != nil {
		respondServiceError(c, err, "Failed to save slate")
		return
	}

	utils.CreatedResponse(c, "Slate saved", saved)
}

func (pc *ProjectController) ListSlates(c *gin.Context) {
	projectID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	slates, err := pc.projectService.ListSlates(c.Request.Context(), projectID, callerID(c))
	if err != nil {
		respondServiceError(c, err, "Failed to list slates")
		return
	}

	utils.SuccessResponse(c, "Slates retrieved", slates)
}

func (pc *ProjectController) DeleteSlate(c *gin.Context) {
	projectID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	slateID, ok := objectIDParam(c, "slateId")
	if !ok {
		return
	}

	if err := pc.projectService.DeleteSlate(c.Request.Context(), projectID, callerID(c), slateID); err != nil {
		respondServiceError(c, err, "Failed to delete slate")
		return
	}

	utils.SuccessResponse(c, "Slate deleted", nil)
}

func (pc *ProjectController) UploadScript(c *gin.Context) {
	projectID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	header, err := c.FormFile("script")
	if err != nil {
		utils.BadRequestResponse(c, "Script file is required", nil)
		return
	}

	if err := utils.ValidateScriptUpload(header, pc.maxScriptSize); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	file, err := header.Open()
	if err != nil {
		utils.InternalServerErrorResponse(c, "Failed to read upload", nil)
		return
	}
	defer file.Close()

	scriptURL, err := pc.projectService.AttachScript(c.Request.Context(), projectID, callerID(c), file, header)
	if err != nil {
		respondServiceError(c, err, "Failed to upload script")
		return
	}

	utils.SuccessResponse(c, "Script uploaded", gin.H{"scriptUrl": scriptURL})
}

func (pc *ProjectController) GetScript(c *gin.Context) {
	projectID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	scriptURL, err := pc.projectService.GetScript(c.Request.Context(), projectID, callerID(c))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch script")
		return
	}

	if scriptURL == "" {
		utils.NotFoundResponse(c, "No script uploaded for this project")
		return
	}

	utils.SuccessResponse(c, "Script retrieved", gin.H{"scriptUrl": scriptURL})
}

func (pc *ProjectController) DeleteScript(c *gin.Context) {
	projectID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	if err := pc.projectService.RemoveScript(c.Request.Context(), projectID, callerID(c)); err != nil {
		respondServiceError(c, err, "Failed to delete script")
		return
	}

	utils.SuccessResponse(c, "Script deleted", nil)
}
