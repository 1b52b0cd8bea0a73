package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Project struct {
	ID                 primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title              string               `bson:"title" json:"title"`
	Description        string               `bson:"description,omitempty" json:"description,omitempty"`
	Owner              primitive.ObjectID   `bson:"owner" json:"owner"`
	ScriptURL          string               `bson:"script_url,omitempty" json:"scriptUrl,omitempty"`
	Slates             []Slate              `bson:"slates" json:"slates"`
	Scenes             []primitive.ObjectID `bson:"scenes" json:"scenes"`
	SharedUsers        []primitive.ObjectID `bson:"shared_users" json:"sharedUsers"`
	PendingInvitations []Invitation         `bson:"pending_invitations" json:"pendingInvitations"`
	CreatedAt          time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time            `bson:"updated_at" json:"updated_at"`
}

// Slate is a recorded take's metadata, embedded in its parent project.
// Slates are append-only with positional deletion by id.
type Slate struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Roll      string             `bson:"roll" json:"roll"`
	Scene     string             `bson:"scene" json:"scene"`
	Take      string             `bson:"take" json:"take"`
	Prod      string             `bson:"prod" json:"prod"`
	Dir       string             `bson:"dir" json:"dir"`
	Cam       string             `bson:"cam" json:"cam"`
	FPS       string             `bson:"fps" json:"fps"`
	Date      string             `bson:"date" json:"date"`
	Toggles   SlateToggles       `bson:"toggles" json:"toggles"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

type SlateToggles struct {
	IntExt  string `bson:"int_ext" json:"intExt"`   // "INT" or "EXT"
	DayNite string `bson:"day_nite" json:"dayNite"` // "DAY" or "NIGHT"
	SyncMOS string `bson:"sync_mos" json:"syncMos"` // "SYNC" or "MOS"
}

// Invitation is an unredeemed share offer keyed by invitee email.
// It either becomes a shared-user entry on accept or is removed on decline.
type Invitation struct {
	Email     string             `bson:"email" json:"email"`
	InvitedBy primitive.ObjectID `bson:"invited_by" json:"invitedBy"`
	InvitedAt time.Time          `bson:"invited_at" json:"invitedAt"`
}

// IsOwner reports whether the given user owns this project.
func (p *Project) IsOwner(userID primitive.ObjectID) bool {
	return p.Owner == userID
}

// IsMember reports whether the given user is the owner or a shared user.
func (p *Project) IsMember(userID primitive.ObjectID) bool {
	if p.Owner == userID {
		return true
	}
	for _, id := range p.SharedUsers {
		if id == userID {
			return true
		}
	}
	return false
}

// HasSlate reports whether the project holds a slate with the given id.
func (p *Project) HasSlate(slateID primitive.ObjectID) bool {
	for _, slate := range p.Slates {
		if slate.ID == slateID {
			return true
		}
	}
	return false
}

// HasPendingInvitation reports whether an invitation for the email is pending.
func (p *Project) HasPendingInvitation(email string) bool {
	for _, inv := range p.PendingInvitations {
		if inv.Email == email {
			return true
		}
	}
	return false
}
