package routes

import (
	"time"

	"setsweet/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServiceContainer holds all services and their shared dependencies.
type ServiceContainer struct {
	DB            *mongo.Database
	JWTSecret     string
	JWTIssuer     string
	JWTExpiration time.Duration
	MaxScriptSize int64
	MaxImageSize  int64

	StorageService    *services.StorageService
	PermissionService *services.PermissionService
	ProjectService    *services.ProjectService
	SceneService      *services.SceneService
	StoryboardService *services.StoryboardService
	InvitationService *services.InvitationService
}

// NewServiceContainer wires up every service against the database and the
// local upload store.
func NewServiceContainer(db *mongo.Database, jwtSecret, jwtIssuer string, jwtExpiration time.Duration, uploadDir string, maxScriptSize, maxImageSize int64) (*ServiceContainer, error) {
	storageService, err := services.NewStorageService(uploadDir)
	if err != nil {
		return nil, err
	}

	permissionService := services.NewPermissionService(db)
	projectService := services.NewProjectService(db, permissionService, storageService)
	sceneService := services.NewSceneService(db, permissionService, storageService)
	storyboardService := services.NewStoryboardService(sceneService, permissionService, storageService)
	invitationService := services.NewInvitationService(db)

	return &ServiceContainer{
		DB:            db,
		JWTSecret:     jwtSecret,
		JWTIssuer:     jwtIssuer,
		JWTExpiration: jwtExpiration,
		MaxScriptSize: maxScriptSize,
		MaxImageSize:  maxImageSize,

		StorageService:    storageService,
		PermissionService: permissionService,
		ProjectService:    projectService,
		SceneService:      sceneService,
		StoryboardService: storyboardService,
		InvitationService: invitationService,
	}, nil
}

// SetupRoutes registers every route group on the /api router group.
func SetupRoutes(api *gin.RouterGroup, container *ServiceContainer) {
	RegisterAuthRoutes(api, container)
	RegisterProjectRoutes(api, container)
	RegisterSceneRoutes(api, container)
	RegisterInvitationRoutes(api, container)
}
