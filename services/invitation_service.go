package services

import (
	"context"
	"fmt"
	"time"

	"setsweet/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// InvitationService handles the pending-invitation lifecycle on projects.
// The only transitions are pending→accepted and pending→declined.
type InvitationService struct {
	projectCollection *mongo.Collection
	userCollection    *mongo.Collection
}

// PendingInvitation is an invitation addressed to the caller with project
// context denormalized for display.
type PendingInvitation struct {
	ProjectID    primitive.ObjectID `json:"projectId"`
	ProjectTitle string             `json:"projectTitle"`
	OwnerEmail   string             `json:"ownerEmail"`
	InvitedAt    time.Time          `json:"invitedAt"`
}

func NewInvitationService(db *mongo.Database) *InvitationService {
	return &InvitationService{
		projectCollection: db.Collection("projects"),
		userCollection:    db.Collection("users"),
	}
}

// ListForUser returns all pending invitations addressed to the caller's email.
func (s *InvitationService) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]PendingInvitation, error) {
	email, err := s.userEmail(ctx, userID)
	if err != nil {
		return nil, err
	}

	cursor, err := s.projectCollection.Find(ctx, bson.M{"pending_invitations.email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	defer cursor.Close(ctx)

	invitations := []PendingInvitation{}
	for cursor.Next(ctx) {
		var project models.Project
		if err := cursor.Decode(&project); err != nil {
			continue
		}

		ownerEmail, err := s.userEmail(ctx, project.Owner)
		if err != nil {
			ownerEmail = ""
		}

		for _, inv := range project.PendingInvitations {
			if inv.Email == email {
				invitations = append(invitations, PendingInvitation{
					ProjectID:    project.ID,
					ProjectTitle: project.Title,
					OwnerEmail:   ownerEmail,
					InvitedAt:    inv.InvitedAt,
				})
			}
		}
	}

	return invitations, nil
}

// Accept moves the caller from pending invitation to shared user: the caller
// joins sharedUsers, the project joins the caller's project list exactly
// once, and the invitation is removed.
func (s *InvitationService) Accept(ctx context.Context, projectID, userID primitive.ObjectID) error {
	email, project, err := s.pendingFor(ctx, projectID, userID)
	if err != nil {
		return err
	}

	update := bson.M{
		"$pull":     bson.M{"pending_invitations": bson.M{"email": email}},
		"$addToSet": bson.M{"shared_users": userID},
		"$set":      bson.M{"updated_at": time.Now()},
	}
	if _, err := s.projectCollection.UpdateOne(ctx, bson.M{"_id": project.ID}, update); err != nil {
		return fmt.Errorf("failed to accept invitation: %w", err)
	}

	_, err = s.userCollection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{"projects": project.ID}},
	)
	if err != nil {
		return fmt.Errorf("failed to link shared project: %w", err)
	}

	return nil
}

// Decline removes the invitation with no other state change.
func (s *InvitationService) Decline(ctx context.Context, projectID, userID primitive.ObjectID) error {
	email, project, err := s.pendingFor(ctx, projectID, userID)
	if err != nil {
		return err
	}

	update := bson.M{
		"$pull": bson.M{"pending_invitations": bson.M{"email": email}},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	if _, err := s.projectCollection.UpdateOne(ctx, bson.M{"_id": project.ID}, update); err != nil {
		return fmt.Errorf("failed to decline invitation: %w", err)
	}

	return nil
}

// pendingFor resolves the caller's email and verifies the project holds a
// pending invitation for it.
func (s *InvitationService) pendingFor(ctx context.Context, projectID, userID primitive.ObjectID) (string, *models.Project, error) {
	email, err := s.userEmail(ctx, userID)
	if err != nil {
		return "", nil, err
	}

	var project models.Project
	err = s.projectCollection.FindOne(ctx, bson.M{"_id": projectID}).Decode(&project)
	if err == mongo.ErrNoDocuments {
		return "", nil, ErrProjectNotFound
	} else if err != nil {
		return "", nil, fmt.Errorf("failed to fetch project: %w", err)
	}

	if !project.HasPendingInvitation(email) {
		return "", nil, ErrNoInvitation
	}

	return email, &project, nil
}

func (s *InvitationService) userEmail(ctx context.Context, userID primitive.ObjectID) (string, error) {
	var user models.User
	err := s.userCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return "", ErrUserNotFound
	} else if err != nil {
		return "", fmt.Errorf("failed to fetch user: %w", err)
	}
	return user.Email, nil
}
