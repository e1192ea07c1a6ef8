package services

import "errors"

var (
	ErrUserAlreadyExists    = errors.New("user already exists with this email")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidCredentials   = errors.New("invalid password")
	ErrInvalidRefreshToken  = errors.New("invalid or expired refresh token")
	ErrPromptNotFound       = errors.New("prompt not found")
	ErrIncompleteGeneration = errors.New("generated code appears to be incomplete")
)
