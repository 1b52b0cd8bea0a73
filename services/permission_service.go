package services

import (
	"context"
	"fmt"

	"setsweet/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Role is the access level a caller must hold on a project.
//
// RoleMember covers the owner and every shared user: project reads, scene
// reads, and edits to embedded scene content (notes, floorplan, storyboard)
// and slates. RoleOwner is required for structural operations: deleting the
// project, sharing it, managing the script, and creating or deleting scenes.
type Role int

const (
	RoleMember Role = iota
	RoleOwner
)

type PermissionService struct {
	projectCollection *mongo.Collection
	sceneCollection   *mongo.Collection
}

func NewPermissionService(db *mongo.Database) *PermissionService {
	return &PermissionService{
		projectCollection: db.Collection("projects"),
		sceneCollection:   db.Collection("scenes"),
	}
}

// HasRole checks the role against an already-loaded project document.
func HasRole(project *models.Project, userID primitive.ObjectID, role Role) bool {
	switch role {
	case RoleOwner:
		return project.IsOwner(userID)
	default:
		return project.IsMember(userID)
	}
}

// AuthorizeProject loads the project and verifies the caller holds the role.
// Returns ErrProjectNotFound or ErrForbidden accordingly.
func (s *PermissionService) AuthorizeProject(ctx context.Context, projectID, userID primitive.ObjectID, role Role) (*models.Project, error) {
	var project models.Project
	err := s.projectCollection.FindOne(ctx, bson.M{"_id": projectID}).Decode(&project)
	if err == mongo.ErrNoDocuments {
		return nil, ErrProjectNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to fetch project: %w", err)
	}

	if !HasRole(&project, userID, role) {
		return nil, ErrForbidden
	}

	return &project, nil
}

// AuthorizeScene loads the scene, then authorizes against its parent project.
func (s *PermissionService) AuthorizeScene(ctx context.Context, sceneID, userID primitive.ObjectID, role Role) (*models.Scene, *models.Project, error) {
	var scene models.Scene
	err := s.sceneCollection.FindOne(ctx, bson.M{"_id": sceneID}).Decode(&scene)
	if err == mongo.ErrNoDocuments {
		return nil, nil, ErrSceneNotFound
	} else if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch scene: %w", err)
	}

	project, err := s.AuthorizeProject(ctx, scene.Project, userID, role)
	if err != nil {
		return nil, nil, err
	}

	return &scene, project, nil
}
