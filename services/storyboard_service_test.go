package services

import (
	"fmt"
	"testing"

	"setsweet/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func makeFrames(numbers ...int) []models.StoryboardFrame {
	frames := make([]models.StoryboardFrame, 0, len(numbers))
	for _, n := range numbers {
		frames = append(frames, models.StoryboardFrame{
			ID:          primitive.NewObjectID(),
			Title:       fmt.Sprintf("Frame %d", n),
			FrameNumber: n,
		})
	}
	return frames
}

func assertContiguous(t *testing.T, frames []models.StoryboardFrame) {
	t.Helper()
	for i, frame := range frames {
		if frame.FrameNumber != i+1 {
			t.Errorf("frame at index %d has number %d, expected %d", i, frame.FrameNumber, i+1)
		}
		expectedTitle := fmt.Sprintf("Frame %d", i+1)
		if frame.Title != expectedTitle {
			t.Errorf("frame at index %d has title %q, expected %q", i, frame.Title, expectedTitle)
		}
	}
}

func TestRenumberFrames(t *testing.T) {
	tests := []struct {
		name    string
		numbers []int
	}{
		{"already contiguous", []int{1, 2, 3}},
		{"gap after deletion", []int{1, 3, 4}},
		{"reversed", []int{3, 2, 1}},
		{"duplicates", []int{1, 1, 2}},
		{"empty", nil},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			frames := makeFrames(test.numbers...)
			RenumberFrames(frames)
			assertContiguous(t, frames)
		})
	}
}

func TestRenumberFramesAfterMiddleDeletion(t *testing.T) {
	// Three frames, delete the second, renumber: remaining two must read
	// Frame 1 and Frame 2; a subsequent append gets number 3.
	frames := makeFrames(1, 2, 3)
	frames = append(frames[:1], frames[2:]...)
	RenumberFrames(frames)

	assertContiguous(t, frames)
	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
	if next := NextFrameNumber(frames); next != 3 {
		t.Errorf("NextFrameNumber = %d, expected 3", next)
	}
}

func TestNextFrameNumber(t *testing.T) {
	tests := []struct {
		name     string
		numbers  []int
		expected int
	}{
		{"empty storyboard", nil, 1},
		{"contiguous", []int{1, 2, 3}, 4},
		{"gap tolerated", []int{1, 5}, 6},
		{"unordered", []int{4, 2, 1}, 5},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := NextFrameNumber(makeFrames(test.numbers...)); got != test.expected {
				t.Errorf("NextFrameNumber(%v) = %d, expected %d", test.numbers, got, test.expected)
			}
		})
	}
}

func TestRepairFrames(t *testing.T) {
	t.Run("contiguous storyboard untouched", func(t *testing.T) {
		frames := makeFrames(1, 2, 3)
		if RepairFrames(&frames) {
			t.Error("RepairFrames reported a change for a valid storyboard")
		}
	})

	t.Run("non-contiguous numbering repaired", func(t *testing.T) {
		frames := makeFrames(1, 3, 7)
		if !RepairFrames(&frames) {
			t.Fatal("RepairFrames did not report a change")
		}
		assertContiguous(t, frames)
	})

	t.Run("over-cap storyboard truncated", func(t *testing.T) {
		numbers := make([]int, models.MaxStoryboardFrames+5)
		for i := range numbers {
			numbers[i] = i + 1
		}
		frames := makeFrames(numbers...)

		if !RepairFrames(&frames) {
			t.Fatal("RepairFrames did not report a change")
		}
		if len(frames) != models.MaxStoryboardFrames {
			t.Errorf("expected %d frames after repair, got %d", models.MaxStoryboardFrames, len(frames))
		}
		assertContiguous(t, frames)
	})
}

func TestImageURLs(t *testing.T) {
	frames := makeFrames(1, 2, 3)
	frames[0].ImageURL = "/uploads/storyboard/a.png"
	frames[2].ImageURL = "/uploads/storyboard/c.png"

	urls := imageURLs(frames)
	if len(urls) != 2 {
		t.Fatalf("expected 2 urls, got %d", len(urls))
	}
	if urls[0] != "/uploads/storyboard/a.png" || urls[1] != "/uploads/storyboard/c.png" {
		t.Errorf("unexpected urls %v", urls)
	}

	if got := imageURLs(nil); len(got) != 0 {
		t.Errorf("expected no urls for empty storyboard, got %v", got)
	}
}

func TestNewFrame(t *testing.T) {
	frame := NewFrame(4)

	if frame.ID.IsZero() {
		t.Error("new frame has zero id")
	}
	if frame.FrameNumber != 4 {
		t.Errorf("FrameNumber = %d, expected 4", frame.FrameNumber)
	}
	if frame.Title != "Frame 4" {
		t.Errorf("Title = %q, expected %q", frame.Title, "Frame 4")
	}
	if frame.ShotType != "WIDE" {
		t.Errorf("ShotType = %q, expected WIDE", frame.ShotType)
	}
	if frame.CameraMovement != "STATIC" {
		t.Errorf("CameraMovement = %q, expected STATIC", frame.CameraMovement)
	}
	if !models.IsValidShotType(frame.ShotType) {
		t.Errorf("default shot type %q is not in the catalog", frame.ShotType)
	}
	if !models.IsValidCameraMovement(frame.CameraMovement) {
		t.Errorf("default camera movement %q is not in the catalog", frame.CameraMovement)
	}
}
