package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"setsweet/models"
	"setsweet/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StoryboardService mutates the embedded frame list of a scene. All writes
// are read-modify-write on the parent scene document; last write wins.
type StoryboardService struct {
	sceneService      *SceneService
	permissionService *PermissionService
	storageService    *StorageService
}

func NewStoryboardService(sceneService *SceneService, permissionService *PermissionService, storageService *StorageService) *StoryboardService {
	return &StoryboardService{
		sceneService:      sceneService,
		permissionService: permissionService,
		storageService:    storageService,
	}
}

// ListFrames returns the scene's frames. Legacy data that exceeds the frame
// cap or has non-contiguous numbering is repaired and persisted before it is
// returned, so clients never observe a broken sequence.
func (s *StoryboardService) ListFrames(ctx context.Context, sceneID, callerID primitive.ObjectID) ([]models.StoryboardFrame, error) {
	scene, _, err := s.permissionService.AuthorizeScene(ctx, sceneID, callerID, RoleMember)
	if err != nil {
		return nil, err
	}

	frames := scene.Storyboard
	if repaired := RepairFrames(&frames); repaired {
		utils.LogWarning(fmt.Sprintf("repaired storyboard numbering for scene %s", sceneID.Hex()))
		if _, err := s.saveFrames(ctx, sceneID, frames); err != nil {
			return nil, err
		}
	}

	return frames, nil
}

// AddFrame appends one frame numbered max existing + 1. Using the maximum
// rather than the list length tolerates gaps left by partial legacy data.
func (s *StoryboardService) AddFrame(ctx context.Context, sceneID, callerID primitive.ObjectID) (*models.StoryboardFrame, error) {
	scene, _, err := s.permissionService.AuthorizeScene(ctx, sceneID, callerID, RoleMember)
	if err != nil {
		return nil, err
	}

	if len(scene.Storyboard) >= models.MaxStoryboardFrames {
		return nil, ErrFrameLimit
	}

	frame := NewFrame(NextFrameNumber(scene.Storyboard))
	frames := append(scene.Storyboard, frame)

	if _, err := s.saveFrames(ctx, sceneID, frames); err != nil {
		return nil, err
	}

	return &frame, nil
}

// SetFrameCount is a destructive replace-all: it clears the storyboard and
// creates exactly count fresh frames numbered 1..count. Count is bounded to
// [0,30]; callers confirm the replacement client-side before invoking this.
func (s *StoryboardService) SetFrameCount(ctx context.Context, sceneID, callerID primitive.ObjectID, count int) ([]models.StoryboardFrame, error) {
	if count < 0 || count > models.MaxStoryboardFrames {
		return nil, ErrInvalidCount
	}

	scene, _, err := s.permissionService.AuthorizeScene(ctx, sceneID, callerID, RoleMember)
	if err != nil {
		return nil, err
	}

	replaced := imageURLs(scene.Storyboard)

	frames := make([]models.StoryboardFrame, 0, count)
	for i := 1; i <= count; i++ {
		frames = append(frames, NewFrame(i))
	}

	if _, err := s.saveFrames(ctx, sceneID, frames); err != nil {
		return nil, err
	}

	// Only unlink the old images once the replacement is persisted, so a
	// failed save does not leave frames pointing at deleted files.
	for _, url := range replaced {
		if err := s.storageService.Remove(url); err != nil {
			utils.LogError("failed to remove storyboard image", err)
		}
	}

	return frames, nil
}

// DeleteFrame removes a frame by id and renumbers the remainder so frame
// numbers stay contiguous with titles matching.
func (s *StoryboardService) DeleteFrame(ctx context.Context, sceneID, callerID, frameID primitive.ObjectID) ([]models.StoryboardFrame, error) {
	scene, _, err := s.permissionService.AuthorizeScene(ctx, sceneID, callerID, RoleMember)
	if err != nil {
		return nil, err
	}

	frames := scene.Storyboard
	index := frameIndexByID(frames, frameID)
	if index < 0 {
		return nil, ErrFrameNotFound
	}

	removed := frames[index]
	frames = append(frames[:index], frames[index+1:]...)
	RenumberFrames(frames)

	if _, err := s.saveFrames(ctx, sceneID, frames); err != nil {
		return nil, err
	}

	if removed.ImageURL != "" {
		if err := s.storageService.Remove(removed.ImageURL); err != nil {
			utils.LogError("failed to remove storyboard image", err)
		}
	}

	return frames, nil
}

// AttachImage stores an uploaded image on the frame addressed by id and
// replaces any previous image file.
func (s *StoryboardService) AttachImage(ctx context.Context, sceneID, callerID, frameID primitive.ObjectID, file multipart.File, header *multipart.FileHeader) (*models.StoryboardFrame, error) {
	scene, _, err := s.permissionService.AuthorizeScene(ctx, sceneID, callerID, RoleMember)
	if err != nil {
		return nil, err
	}

	index := frameIndexByID(scene.Storyboard, frameID)
	if index < 0 {
		return nil, ErrFrameNotFound
	}

	return s.attachImageAt(ctx, sceneID, scene.Storyboard, index, file, header, nil)
}

// AttachImageByIndex is the index-addressed variant used by the capture flow;
// it can also record the focal length the image was taken at.
func (s *StoryboardService) AttachImageByIndex(ctx context.Context, sceneID, callerID primitive.ObjectID, frameIndex int, file multipart.File, header *multipart.FileHeader, focalLength *float64) (*models.StoryboardFrame, error) {
	scene, _, err := s.permissionService.AuthorizeScene(ctx, sceneID, callerID, RoleMember)
	if err != nil {
		return nil, err
	}

	if frameIndex < 0 || frameIndex >= len(scene.Storyboard) {
		return nil, ErrFrameNotFound
	}

	return s.attachImageAt(ctx, sceneID, scene.Storyboard, frameIndex, file, header, focalLength)
}

func (s *StoryboardService) attachImageAt(ctx context.Context, sceneID primitive.ObjectID, frames []models.StoryboardFrame, index int, file multipart.File, header *multipart.FileHeader, focalLength *float64) (*models.StoryboardFrame, error) {
	imageURL, err := s.storageService.SaveStoryboardImage(file, header.Filename)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	previous := frames[index].ImageURL
	frames[index].ImageURL = imageURL
	if focalLength != nil {
		frames[index].FocalLength = focalLength
	}

	if _, err := s.saveFrames(ctx, sceneID, frames); err != nil {
		return nil, err
	}

	if previous != "" {
		if err := s.storageService.Remove(previous); err != nil {
			utils.LogError("failed to remove replaced storyboard image", err)
		}
	}

	return &frames[index], nil
}

func (s *StoryboardService) saveFrames(ctx context.Context, sceneID primitive.ObjectID, frames []models.StoryboardFrame) (*models.Scene, error) {
	return s.sceneService.applyUpdate(ctx, sceneID, bson.M{"storyboard": frames})
}

// NewFrame builds a fresh frame with the given number and matching title.
func NewFrame(number int) models.StoryboardFrame {
	return models.StoryboardFrame{
		ID:             primitive.NewObjectID(),
		Title:          frameTitle(number),
		ShotType:       "WIDE",
		CameraMovement: "STATIC",
		FrameNumber:    number,
		CreatedAt:      time.Now(),
	}
}

// RenumberFrames restores the contiguity invariant in place: frame numbers
// become 1..N matching array position and titles read "Frame N".
func RenumberFrames(frames []models.StoryboardFrame) {
	for i := range frames {
		frames[i].FrameNumber = i + 1
		frames[i].Title = frameTitle(i + 1)
	}
}

// RepairFrames truncates a storyboard past the frame cap and renumbers any
// non-contiguous sequence. It reports whether the list was changed.
func RepairFrames(frames *[]models.StoryboardFrame) bool {
	changed := false

	if len(*frames) > models.MaxStoryboardFrames {
		*frames = (*frames)[:models.MaxStoryboardFrames]
		changed = true
	}

	for i, frame := range *frames {
		if frame.FrameNumber != i+1 {
			RenumberFrames(*frames)
			changed = true
			break
		}
	}

	return changed
}

// NextFrameNumber is max existing frame number + 1.
func NextFrameNumber(frames []models.StoryboardFrame) int {
	max := 0
	for _, frame := range frames {
		if frame.FrameNumber > max {
			max = frame.FrameNumber
		}
	}
	return max + 1
}

// imageURLs collects the image files a set of frames references.
func imageURLs(frames []models.StoryboardFrame) []string {
	var urls []string
	for _, frame := range frames {
		if frame.ImageURL != "" {
			urls = append(urls, frame.ImageURL)
		}
	}
	return urls
}

func frameIndexByID(frames []models.StoryboardFrame, frameID primitive.ObjectID) int {
	for i, frame := range frames {
		if frame.ID == frameID {
			return i
		}
	}
	return -1
}

func frameTitle(number int) string {
	return fmt.Sprintf("Frame %d", number)
}
