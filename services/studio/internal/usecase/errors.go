package usecase

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidID        = errors.New("invalid id")
	ErrInvalidInput     = errors.New("invalid input")
	ErrForbidden        = errors.New("forbidden")
	ErrUnauthorized     = errors.New("invalid credentials")
	ErrAccountDisabled  = errors.New("account is deactivated")
	ErrConflict         = errors.New("already exists")
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrFileTooLarge     = errors.New("file too large")
)
