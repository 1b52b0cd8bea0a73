package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"setsweet/models"
	"setsweet/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SceneService struct {
	sceneCollection   *mongo.Collection
	projectCollection *mongo.Collection
	permissionService *PermissionService
	storageService    *StorageService
}

// SceneUpdate carries the optional content fields of a generic scene update.
// Nil fields are left untouched.
type SceneUpdate struct {
	Title      *string                  `json:"title"`
	Notes      *string                  `json:"notes"`
	Storyboard []models.StoryboardFrame `json:"storyboard"`
}

func NewSceneService(db *mongo.Database, permissionService *PermissionService, storageService *StorageService) *SceneService {
	return &SceneService{
		sceneCollection:   db.Collection("scenes"),
		projectCollection: db.Collection("projects"),
		permissionService: permissionService,
		storageService:    storageService,
	}
}

// Create makes a new scene with empty notes, floorplan, and storyboard, and
// appends its id to the parent project's scene list. Owner only.
func (s *SceneService) Create(ctx context.Context, projectID, callerID primitive.ObjectID, title string) (*models.Scene, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidPayload)
	}

	if _, err := s.permissionService.AuthorizeProject(ctx, projectID, callerID, RoleOwner); err != nil {
		return nil, err
	}

	now := time.Now()
	scene := models.Scene{
		ID:      primitive.NewObjectID(),
		Title:   title,
		Project: projectID,
		Notes:   "",
		Floorplan: models.Floorplan{
			Shapes: []models.Shape{},
			Paths:  []string{},
		},
		Storyboard: []models.StoryboardFrame{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := s.sceneCollection.InsertOne(ctx, scene); err != nil {
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}

	_, err := s.projectCollection.UpdateOne(ctx,
		bson.M{"_id": projectID},
		bson.M{
			"$addToSet": bson.M{"scenes": scene.ID},
			"$set":      bson.M{"updated_at": now},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to link scene to project: %w", err)
	}

	return &scene, nil
}

// ListByProject returns all scenes of a project. Member access.
func (s *SceneService) ListByProject(ctx context.Context, projectID, callerID primitive.ObjectID) ([]models.Scene, error) {
	if _, err := s.permissionService.AuthorizeProject(ctx, projectID, callerID, RoleMember); err != nil {
		return nil, err
	}

	cursor, err := s.sceneCollection.Find(ctx, bson.M{"project": projectID}, options.Find().SetSort(bson.M{"created_at": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to list scenes: %w", err)
	}
	defer cursor.Close(ctx)

	scenes := []models.Scene{}
	for cursor.Next(ctx) {
		var scene models.Scene
		if err := cursor.Decode(&scene); err != nil {
			continue
		}
		scenes = append(scenes, scene)
	}

	return scenes, nil
}

// Get fetches one scene. Member access via the parent project.
func (s *SceneService) Get(ctx context.Context, sceneID, callerID primitive.ObjectID) (*models.Scene, error) {
	scene, _, err := s.permissionService.AuthorizeScene(ctx, sceneID, callerID, RoleMember)
	return scene, err
}

// UpdateNotes replaces the scene's free-text notes. Member access.
func (s *SceneService) UpdateNotes(ctx context.Context, sceneID, callerID primitive.ObjectID, notes string) (*models.Scene, error) {
	if _, _, err := s.permissionService.AuthorizeScene(ctx, sceneID, callerID, RoleMember); err != nil {
		return nil, err
	}

	return s.applyUpdate(ctx, sceneID, bson.M{"notes": notes})
}

// UpdateFloorplan replaces the scene's floorplan after strict validation.
// Member access.
func (s *SceneService) UpdateFloorplan(ctx context.Context, sceneID, callerID primitive.ObjectID, floorplan models.Floorplan) (*models.Scene, error) {
	if err := ValidateFloorplan(&floorplan); err != nil {
		return nil, err
	}

	if _, _, err := s.permissionService.AuthorizeScene(ctx, sceneID, callerID, RoleMember); err != nil {
		return nil, err
	}

	return s.applyUpdate(ctx, sceneID, bson.M{"floorplan": floorplan})
}

// Update applies a partial content update. Member access.
func (s *SceneService) Update(ctx context.Context, sceneID, callerID primitive.ObjectID, update SceneUpdate) (*models.Scene, error) {
	if _, _, err := s.permissionService.AuthorizeScene(ctx, sceneID, callerID, RoleMember); err != nil {
		return nil, err
	}

	fields := bson.M{}
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrInvalidPayload)
		}
		fields["title"] = title
	}
	if update.Notes != nil {
		fields["notes"] = *update.Notes
	}
	if update.Storyboard != nil {
		frames := update.Storyboard
		if len(frames) > models.MaxStoryboardFrames {
			return nil, ErrFrameLimit
		}
		RenumberFrames(frames)
		fields["storyboard"] = frames
	}

	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no updatable fields provided", ErrInvalidPayload)
	}

	return s.applyUpdate(ctx, sceneID, fields)
}

// Delete removes the scene (owner only), pulls its id from the parent
// project's scene list, and unlinks its storyboard image files.
func (s *SceneService) Delete(ctx context.Context, sceneID, callerID primitive.ObjectID) error {
	scene, project, err := s.permissionService.AuthorizeScene(ctx, sceneID, callerID, RoleOwner)
	if err != nil {
		return err
	}

	if _, err := s.sceneCollection.DeleteOne(ctx, bson.M{"_id": sceneID}); err != nil {
		return fmt.Errorf("failed to delete scene: %w", err)
	}

	_, err = s.projectCollection.UpdateOne(ctx,
		bson.M{"_id": project.ID},
		bson.M{
			"$pull": bson.M{"scenes": sceneID},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to unlink scene from project: %w", err)
	}

	for _, frame := range scene.Storyboard {
		if frame.ImageURL == "" {
			continue
		}
		if err := s.storageService.Remove(frame.ImageURL); err != nil {
			utils.LogError("failed to remove storyboard image", err)
		}
	}

	return nil
}

func (s *SceneService) applyUpdate(ctx context.Context, sceneID primitive.ObjectID, fields bson.M) (*models.Scene, error) {
	fields["updated_at"] = time.Now()

	var scene models.Scene
	err := s.sceneCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": sceneID},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&scene)
	if err == mongo.ErrNoDocuments {
		return nil, ErrSceneNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to update scene: %w", err)
	}

	return &scene, nil
}

// ValidateFloorplan rejects a floorplan whose shapes or paths are missing, or
// whose shapes lack a required field or use an unknown icon type.
func ValidateFloorplan(fp *models.Floorplan) error {
	if fp.Shapes == nil || fp.Paths == nil {
		return fmt.Errorf("%w: floorplan shapes and paths must be arrays", ErrInvalidPayload)
	}

	for i, shape := range fp.Shapes {
		if err := validateShape(&shape); err != nil {
			return fmt.Errorf("%w: shape %d: %v", ErrInvalidPayload, i, err)
		}
	}

	return nil
}

func validateShape(shape *models.Shape) error {
	if shape.Type == "" {
		return fmt.Errorf("missing type")
	}
	if !models.IsValidShapeType(shape.Type) {
		return fmt.Errorf("unknown shape type %q", shape.Type)
	}
	if shape.ID < 0 {
		return fmt.Errorf("invalid id %d", shape.ID)
	}
	if shape.Width <= 0 || shape.Height <= 0 {
		return fmt.Errorf("width and height must be positive")
	}
	if shape.Color == "" {
		return fmt.Errorf("missing color")
	}
	return nil
}
