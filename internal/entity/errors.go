package entity

import "errors"

// Domain errors
var (
	// Story generation errors
	ErrNoContent = errors.New("no meaningful responses provided to generate story from")
	ErrNoResult  = errors.New("storybook not available")

	// Session errors
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionExpired      = errors.New("session has expired")
	ErrInvalidRelationship = errors.New("invalid relationship")
	ErrProfileRequired     = errors.New("profile must be created first")
	ErrProfileLocked       = errors.New("profile cannot change after story input has started")
	ErrUnknownQuestion     = errors.New("unknown question")
	ErrNoQuestionsSelected = errors.New("no questions selected")

	// Invitation and sharing errors
	ErrInvitationNotFound  = errors.New("invitation not found")
	ErrInvitationCompleted = errors.New("invitation is already completed")
	ErrShareLinkNotFound   = errors.New("share link not found")
	ErrRateLimited         = errors.New("too many requests")

	// File errors
	ErrInvalidFile      = errors.New("invalid file")
	ErrFileTooLarge     = errors.New("file too large")
	ErrTooManyFiles     = errors.New("too many files")
	ErrInvalidExtension = errors.New("invalid file extension")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrInvalidParameter = errors.New("invalid parameter")
)
