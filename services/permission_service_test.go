package services

import (
	"testing"

	"setsweet/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestHasRole(t *testing.T) {
	owner := primitive.NewObjectID()
	collaborator := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	project := &models.Project{
		ID:          primitive.NewObjectID(),
		Title:       "Night Shoot",
		Owner:       owner,
		SharedUsers: []primitive.ObjectID{collaborator},
	}

	tests := []struct {
		name     string
		userID   primitive.ObjectID
		role     Role
		expected bool
	}{
		{"owner as member", owner, RoleMember, true},
		{"owner as owner", owner, RoleOwner, true},
		{"shared user as member", collaborator, RoleMember, true},
		{"shared user as owner", collaborator, RoleOwner, false},
		{"stranger as member", stranger, RoleMember, false},
		{"stranger as owner", stranger, RoleOwner, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := HasRole(project, test.userID, test.role); got != test.expected {
				t.Errorf("HasRole(%s, %v) = %v, expected %v", test.name, test.role, got, test.expected)
			}
		})
	}
}
