package utils

import (
	"math"
	"testing"
)

const (
	minFocal = 13.0
	maxFocal = 77.0
)

func TestFocalLengthToZoomEndpoints(t *testing.T) {
	tests := []struct {
		name        string
		focalLength float64
		expected    float64
	}{
		{"at minimum", minFocal, 0},
		{"below minimum clamps", 5, 0},
		{"at maximum", maxFocal, 1},
		{"above maximum clamps", 200, 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := FocalLengthToZoom(test.focalLength, minFocal, maxFocal); got != test.expected {
				t.Errorf("FocalLengthToZoom(%v) = %v, expected %v", test.focalLength, got, test.expected)
			}
		})
	}
}

func TestFocalLengthToZoomMonotonic(t *testing.T) {
	previous := -1.0
	for focal := minFocal; focal <= maxFocal; focal += 2 {
		zoom := FocalLengthToZoom(focal, minFocal, maxFocal)
		if zoom < 0 || zoom > 1 {
			t.Fatalf("zoom %v for focal %v escapes [0,1]", zoom, focal)
		}
		if zoom <= previous {
			t.Fatalf("zoom not strictly increasing at focal %v: %v <= %v", focal, zoom, previous)
		}
		previous = zoom
	}
}

func TestZoomFocalRoundTrip(t *testing.T) {
	for _, focal := range []float64{13, 24, 35, 50, 77} {
		zoom := FocalLengthToZoom(focal, minFocal, maxFocal)
		back := ZoomToFocalLength(zoom, minFocal, maxFocal)
		if math.Abs(back-focal) > 1e-9 {
			t.Errorf("round trip of %vmm came back as %vmm", focal, back)
		}
	}
}

func TestZoomBadRange(t *testing.T) {
	if got := FocalLengthToZoom(24, 0, 77); got != 0 {
		t.Errorf("zero minimum should yield zoom 0, got %v", got)
	}
	if got := FocalLengthToZoom(24, 77, 13); got != 0 {
		t.Errorf("inverted range should yield zoom 0, got %v", got)
	}
	if got := ZoomToFocalLength(0.5, 77, 13); got != 77 {
		t.Errorf("inverted range should return the minimum, got %v", got)
	}
}
