package services

import "errors"

// Service-layer failures are sentinel errors so controllers can map them to
// HTTP statuses with errors.Is. Wrapped causes are carried via fmt.Errorf %w.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrDuplicateUser   = errors.New("user already exists")
	ErrInvalidPassword = errors.New("invalid password")

	ErrProjectNotFound = errors.New("project not found")
	ErrSceneNotFound   = errors.New("scene not found")
	ErrSlateNotFound   = errors.New("slate not found")
	ErrFrameNotFound   = errors.New("frame not found")

	ErrForbidden = errors.New("insufficient permissions")

	ErrAlreadyShared = errors.New("project already shared with this user")
	ErrInvitePending = errors.New("invitation already pending for this email")
	ErrNoInvitation  = errors.New("no pending invitation for this project")

	ErrFrameLimit     = errors.New("storyboard frame limit reached")
	ErrInvalidCount   = errors.New("frame count must be between 0 and 30")
	ErrInvalidPayload = errors.New("invalid payload")
)
