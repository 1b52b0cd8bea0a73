package services

import (
	"errors"
	"testing"

	"setsweet/models"
)

func validShape() models.Shape {
	return models.Shape{
		ID:     1,
		Type:   "camera",
		X:      10,
		Y:      20,
		Width:  40,
		Height: 40,
		Color:  "#ff0000",
	}
}

func TestValidateFloorplan(t *testing.T) {
	tests := []struct {
		name      string
		floorplan models.Floorplan
		valid     bool
	}{
		{
			name:      "empty arrays",
			floorplan: models.Floorplan{Shapes: []models.Shape{}, Paths: []string{}},
			valid:     true,
		},
		{
			name:      "single valid shape",
			floorplan: models.Floorplan{Shapes: []models.Shape{validShape()}, Paths: []string{}},
			valid:     true,
		},
		{
			name:      "nil shapes",
			floorplan: models.Floorplan{Shapes: nil, Paths: []string{}},
			valid:     false,
		},
		{
			name:      "nil paths",
			floorplan: models.Floorplan{Shapes: []models.Shape{}, Paths: nil},
			valid:     false,
		},
		{
			name: "unknown shape type",
			floorplan: models.Floorplan{
				Shapes: []models.Shape{func() models.Shape {
					s := validShape()
					s.Type = "dinosaur"
					return s
				}()},
				Paths: []string{},
			},
			valid: false,
		},
		{
			name: "missing type",
			floorplan: models.Floorplan{
				Shapes: []models.Shape{func() models.Shape {
					s := validShape()
					s.Type = ""
					return s
				}()},
				Paths: []string{},
			},
			valid: false,
		},
		{
			name: "negative id",
			floorplan: models.Floorplan{
				Shapes: []models.Shape{func() models.Shape {
					s := validShape()
					s.ID = -1
					return s
				}()},
				Paths: []string{},
			},
			valid: false,
		},
		{
			name: "zero width",
			floorplan: models.Floorplan{
				Shapes: []models.Shape{func() models.Shape {
					s := validShape()
					s.Width = 0
					return s
				}()},
				Paths: []string{},
			},
			valid: false,
		},
		{
			name: "missing color",
			floorplan: models.Floorplan{
				Shapes: []models.Shape{func() models.Shape {
					s := validShape()
					s.Color = ""
					return s
				}()},
				Paths: []string{},
			},
			valid: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := ValidateFloorplan(&test.floorplan)
			if test.valid && err != nil {
				t.Errorf("expected valid floorplan, got %v", err)
			}
			if !test.valid {
				if err == nil {
					t.Fatal("expected an error, got nil")
				}
				if !errors.Is(err, ErrInvalidPayload) {
					t.Errorf("expected ErrInvalidPayload, got %v", err)
				}
			}
		})
	}
}

func TestValidateFloorplanShapeCatalog(t *testing.T) {
	for _, shapeType := range models.ShapeTypes {
		shape := validShape()
		shape.Type = shapeType
		fp := models.Floorplan{Shapes: []models.Shape{shape}, Paths: []string{}}
		if err := ValidateFloorplan(&fp); err != nil {
			t.Errorf("catalog type %q rejected: %v", shapeType, err)
		}
	}
}
