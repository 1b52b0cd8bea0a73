package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"setsweet/models"
	"setsweet/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProjectService struct {
	projectCollection *mongo.Collection
	sceneCollection   *mongo.Collection
	userCollection    *mongo.Collection
	permissionService *PermissionService
	storageService    *StorageService
}

// ProjectListItem is a project as returned by the list endpoint, tagged with
// whether the caller holds it through sharing rather than ownership.
type ProjectListItem struct {
	models.Project `bson:",inline"`
	IsShared       bool `json:"isShared"`
}

func NewProjectService(db *mongo.Database, permissionService *PermissionService, storageService *StorageService) *ProjectService {
	return &ProjectService{
		projectCollection: db.Collection("projects"),
		sceneCollection:   db.Collection("scenes"),
		userCollection:    db.Collection("users"),
		permissionService: permissionService,
		storageService:    storageService,
	}
}

// Create makes a new project owned by the caller with empty sub-lists and
// appends the project id to the owner's project list.
func (s *ProjectService) Create(ctx context.Context, title, description string, ownerID primitive.ObjectID) (*models.Project, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidPayload)
	}

	now := time.Now()
	project := models.Project{
		ID:                 primitive.NewObjectID(),
		Title:              title,
		Description:        strings.TrimSpace(description),
		Owner:              ownerID,
		Slates:             []models.Slate{},
		Scenes:             []primitive.ObjectID{},
		SharedUsers:        []primitive.ObjectID{},
		PendingInvitations: []models.Invitation{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if _, err := s.projectCollection.InsertOne(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	_, err := s.userCollection.UpdateOne(ctx,
		bson.M{"_id": ownerID},
		bson.M{"$addToSet": bson.M{"projects": project.ID}},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to link project to owner: %w", err)
	}

	return &project, nil
}

// ListForUser returns the union of projects owned by the caller and projects
// where the caller is a shared user, each tagged with an isShared flag.
func (s *ProjectService) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]ProjectListItem, error) {
	filter := bson.M{"$or": []bson.M{
		{"owner": userID},
		{"shared_users": userID},
	}}

	cursor, err := s.projectCollection.Find(ctx, filter, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer cursor.Close(ctx)

	items := []ProjectListItem{}
	for cursor.Next(ctx) {
		var project models.Project
		if err := cursor.Decode(&project); err != nil {
			continue
		}
		items = append(items, ProjectListItem{
			Project:  project,
			IsShared: project.Owner != userID,
		})
	}

	return items, nil
}

// Get fetches one project; the caller must be owner or shared user.
func (s *ProjectService) Get(ctx context.Context, projectID, callerID primitive.ObjectID) (*models.Project, error) {
	return s.permissionService.AuthorizeProject(ctx, projectID, callerID, RoleMember)
}

// Delete removes a project (owner only), its scenes, its uploaded files, and
// its id from every holder's project list.
func (s *ProjectService) Delete(ctx context.Context, projectID, callerID primitive.ObjectID) error {
	project, err := s.permissionService.AuthorizeProject(ctx, projectID, callerID, RoleOwner)
	if err != nil {
		return err
	}

	// Collect storyboard image paths before dropping the scenes.
	cursor, err := s.sceneCollection.Find(ctx, bson.M{"project": projectID})
	if err != nil {
		return fmt.Errorf("failed to list project scenes: %w", err)
	}
	var imagePaths []string
	for cursor.Next(ctx) {
		var scene models.Scene
		if err := cursor.Decode(&scene); err != nil {
			continue
		}
		for _, frame := range scene.Storyboard {
			if frame.ImageURL != "" {
				imagePaths = append(imagePaths, frame.ImageURL)
			}
		}
	}
	cursor.Close(ctx)

	if _, err := s.sceneCollection.DeleteMany(ctx, bson.M{"project": projectID}); err != nil {
		return fmt.Errorf("failed to delete project scenes: %w", err)
	}

	if _, err := s.projectCollection.DeleteOne(ctx, bson.M{"_id": projectID}); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	holders := append([]primitive.ObjectID{project.Owner}, project.SharedUsers...)
	_, err = s.userCollection.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": holders}},
		bson.M{"$pull": bson.M{"projects": projectID}},
	)
	if err != nil {
		return fmt.Errorf("failed to unlink project from users: %w", err)
	}

	// File cleanup is best effort; a failed unlink must not fail the delete.
	if project.ScriptURL != "" {
		if err := s.storageService.Remove(project.ScriptURL); err != nil {
			utils.LogError("failed to remove script file", err)
		}
	}
	for _, p := range imagePaths {
		if err := s.storageService.Remove(p); err != nil {
			utils.LogError("failed to remove storyboard image", err)
		}
	}

	return nil
}

// Share records a pending invitation for the email (owner only). Fails if the
// email has no account, is already a shared user, or already has a pending
// invitation.
func (s *ProjectService) Share(ctx context.Context, projectID, callerID primitive.ObjectID, email string) (*models.Invitation, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if err := utils.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	project, err := s.permissionService.AuthorizeProject(ctx, projectID, callerID, RoleOwner)
	if err != nil {
		return nil, err
	}

	var target models.User
	err = s.userCollection.FindOne(ctx, bson.M{"email": email}).Decode(&target)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to look up invitee: %w", err)
	}

	if target.ID == project.Owner {
		return nil, fmt.Errorf("%w: cannot share a project with its owner", ErrInvalidPayload)
	}
	if project.IsMember(target.ID) {
		return nil, ErrAlreadyShared
	}
	if project.HasPendingInvitation(email) {
		return nil, ErrInvitePending
	}

	invitation := models.Invitation{
		Email:     email,
		InvitedBy: callerID,
		InvitedAt: time.Now(),
	}

	_, err = s.projectCollection.UpdateOne(ctx,
		bson.M{"_id": projectID},
		bson.M{
			"$push": bson.M{"pending_invitations": invitation},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record invitation: %w", err)
	}

	return &invitation, nil
}

// AddSlate appends a slate record to the project (member access).
func (s *ProjectService) AddSlate(ctx context.Context, projectID, callerID primitive.ObjectID, slate models.Slate) (*models.Slate, error) {
	if _, err := s.permissionService.AuthorizeProject(ctx, projectID, callerID, RoleMember); err != nil {
		return nil, err
	}

	slate.ID = primitive.NewObjectID()
	slate.CreatedAt = time.Now()

	_, err := s.projectCollection.UpdateOne(ctx,
		bson.M{"_id": projectID},
		bson.M{
			"$push": bson.M{"slates": slate},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to append slate: %w", err)
	}

	return &slate, nil
}

// ListSlates returns the project's embedded slate records (member access).
func (s *ProjectService) ListSlates(ctx context.Context, projectID, callerID primitive.ObjectID) ([]models.Slate, error) {
	project, err := s.permissionService.AuthorizeProject(ctx, projectID, callerID, RoleMember)
	if err != nil {
		return nil, err
	}
	return project.Slates, nil
}

// DeleteSlate removes one slate by id (member access). An id the project does
// not hold is a not-found, and must not touch updated_at.
func (s *ProjectService) DeleteSlate(ctx context.Context, projectID, callerID, slateID primitive.ObjectID) error {
	project, err := s.permissionService.AuthorizeProject(ctx, projectID, callerID, RoleMember)
	if err != nil {
		return err
	}
	if !project.HasSlate(slateID) {
		return ErrSlateNotFound
	}

	// Filter on the slate id as well, so a concurrent delete of the same
	// slate leaves the document unmatched instead of bumping updated_at.
	result, err := s.projectCollection.UpdateOne(ctx,
		bson.M{"_id": projectID, "slates._id": slateID},
		bson.M{
			"$pull": bson.M{"slates": bson.M{"_id": slateID}},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to delete slate: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrSlateNotFound
	}

	return nil
}

// AttachScript stores an uploaded PDF on the project (owner only), replacing
// and unlinking any previously stored file.
func (s *ProjectService) AttachScript(ctx context.Context, projectID, callerID primitive.ObjectID, file multipart.File, header *multipart.FileHeader) (string, error) {
	project, err := s.permissionService.AuthorizeProject(ctx, projectID, callerID, RoleOwner)
	if err != nil {
		return "", err
	}

	scriptURL, err := s.storageService.SaveScript(file, header.Filename)
	if err != nil {
		return "", fmt.Errorf("failed to store script: %w", err)
	}

	_, err = s.projectCollection.UpdateOne(ctx,
		bson.M{"_id": projectID},
		bson.M{"$set": bson.M{"script_url": scriptURL, "updated_at": time.Now()}},
	)
	if err != nil {
		return "", fmt.Errorf("failed to save script reference: %w", err)
	}

	if project.ScriptURL != "" {
		if err := s.storageService.Remove(project.ScriptURL); err != nil {
			utils.LogError("failed to remove replaced script file", err)
		}
	}

	return scriptURL, nil
}

// GetScript returns the stored script path (member access).
func (s *ProjectService) GetScript(ctx context.Context, projectID, callerID primitive.ObjectID) (string, error) {
	project, err := s.permissionService.AuthorizeProject(ctx, projectID, callerID, RoleMember)
	if err != nil {
		return "", err
	}
	return project.ScriptURL, nil
}

// RemoveScript clears the script reference (owner only) and deletes the file.
func (s *ProjectService) RemoveScript(ctx context.Context, projectID, callerID primitive.ObjectID) error {
	project, err := s.permissionService.AuthorizeProject(ctx, projectID, callerID, RoleOwner)
	if err != nil {
		return err
	}

	_, err = s.projectCollection.UpdateOne(ctx,
		bson.M{"_id": projectID},
		bson.M{"$set": bson.M{"script_url": "", "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to clear script reference: %w", err)
	}

	if project.ScriptURL != "" {
		if err := s.storageService.Remove(project.ScriptURL); err != nil {
			utils.LogError("failed to remove script file", err)
		}
	}

	return nil
}
