package session

import "errors"

var (
	ErrDuplicateEmail     = errors.New("an account with this email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidMood        = errors.New("invalid mood")
	ErrEmptyEntry         = errors.New("journal entry text is empty")
)
