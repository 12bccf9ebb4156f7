package models

import (
	"errors"
)

var (
	ErrNoSession          = errors.New("models: no active session")
	ErrInvalidCredentials = errors.New("models: invalid credentials")
	ErrUserNotFound       = errors.New("models: user not found")
	ErrGigNotFound        = errors.New("models: gig not found")
	ErrAssignmentNotFound = errors.New("models: assignment not found")
	ErrOrderNotFound      = errors.New("models: order not found")
	ErrChatNotFound       = errors.New("models: conversation not found")
	ErrForbidden          = errors.New("models: forbidden")
	ErrDuplicateEmail     = errors.New("models: duplicate email")
	ErrEmptyField         = errors.New("models: required field is empty")
)
