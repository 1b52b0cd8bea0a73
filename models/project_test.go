package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestProjectMembership(t *testing.T) {
	owner := primitive.NewObjectID()
	collaborator := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	project := &Project{
		Owner:       owner,
		SharedUsers: []primitive.ObjectID{collaborator},
	}

	if !project.IsOwner(owner) {
		t.Error("owner not recognised as owner")
	}
	if project.IsOwner(collaborator) {
		t.Error("shared user recognised as owner")
	}
	if !project.IsMember(owner) {
		t.Error("owner not recognised as member")
	}
	if !project.IsMember(collaborator) {
		t.Error("shared user not recognised as member")
	}
	if project.IsMember(stranger) {
		t.Error("stranger recognised as member")
	}
}

func TestHasSlate(t *testing.T) {
	slateID := primitive.NewObjectID()
	project := &Project{
		Slates: []Slate{
			{ID: primitive.NewObjectID(), Roll: "A1"},
			{ID: slateID, Roll: "A2"},
		},
	}

	if !project.HasSlate(slateID) {
		t.Error("expected slate to be found")
	}
	if project.HasSlate(primitive.NewObjectID()) {
		t.Error("unknown slate id reported as held")
	}
	if (&Project{}).HasSlate(slateID) {
		t.Error("empty project reported a slate")
	}
}

func TestHasPendingInvitation(t *testing.T) {
	project := &Project{
		PendingInvitations: []Invitation{
			{Email: "gaffer@setsweet.test"},
		},
	}

	if !project.HasPendingInvitation("gaffer@setsweet.test") {
		t.Error("expected a pending invitation")
	}
	if project.HasPendingInvitation("other@setsweet.test") {
		t.Error("unexpected pending invitation")
	}
}
