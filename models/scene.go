package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxStoryboardFrames caps how many frames a scene's storyboard may hold.
// Enforced by the storyboard service, not by the schema.
const MaxStoryboardFrames = 30

type Scene struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title      string             `bson:"title" json:"title"`
	Project    primitive.ObjectID `bson:"project" json:"project"`
	Notes      string             `bson:"notes" json:"notes"`
	Floorplan  Floorplan          `bson:"floorplan" json:"floorplan"`
	Storyboard []StoryboardFrame  `bson:"storyboard" json:"storyboard"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}

type Floorplan struct {
	Shapes []Shape  `bson:"shapes" json:"shapes"`
	Paths  []string `bson:"paths" json:"paths"`
}

// Shape is a positioned, sized, rotatable icon on a scene's floorplan canvas.
// IDs are numeric and locally unique within one floorplan; they come from an
// incrementing counter on the client.
type Shape struct {
	ID       int     `bson:"id" json:"id"`
	Type     string  `bson:"type" json:"type"`
	X        float64 `bson:"x" json:"x"`
	Y        float64 `bson:"y" json:"y"`
	Width    float64 `bson:"width" json:"width"`
	Height   float64 `bson:"height" json:"height"`
	Rotation float64 `bson:"rotation" json:"rotation"` // radians
	Color    string  `bson:"color" json:"color"`
	Name     string  `bson:"name,omitempty" json:"name,omitempty"`
}

// StoryboardFrame is one numbered panel of a scene's shot plan.
// Invariant: frame numbers are contiguous 1..N matching array position and
// titles read "Frame N"; every insert/delete renumbers the remainder.
type StoryboardFrame struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	Title          string             `bson:"title" json:"title"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	ShotType       string             `bson:"shot_type" json:"shotType"`
	CameraMovement string             `bson:"camera_movement" json:"cameraMovement"`
	ImageURL       string             `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	FocalLength    *float64           `bson:"focal_length,omitempty" json:"focalLength,omitempty"`
	FrameNumber    int                `bson:"frame_number" json:"frameNumber"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}

var ShotTypes = []string{"WIDE", "MEDIUM", "CLOSE-UP", "EXTREME CLOSE-UP", "OVER-THE-SHOULDER"}

var CameraMovements = []string{"STATIC", "PAN", "TILT", "DOLLY", "CRANE", "HANDHELD"}

// ShapeTypes is the fixed icon-key catalog for floorplan shapes.
var ShapeTypes = []string{"circle", "square", "triangle", "person", "camera", "tree", "car", "bed", "tv"}

func IsValidShotType(s string) bool {
	for _, t := range ShotTypes {
		if s == t {
			return true
		}
	}
	return false
}

func IsValidCameraMovement(s string) bool {
	for _, m := range CameraMovements {
		if s == m {
			return true
		}
	}
	return false
}

func IsValidShapeType(s string) bool {
	for _, t := range ShapeTypes {
		if s == t {
			return true
		}
	}
	return false
}
