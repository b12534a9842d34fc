package domain

import "errors"

var (
	// ErrValidation marks malformed or missing input. Messages wrapping it name the field.
	ErrValidation = errors.New("validation failed")
	// ErrConflict is returned when a username or email is already taken.
	ErrConflict = errors.New("conflict")
	// ErrNotFound covers both absent resources and resources owned by someone else.
	// Callers must not be able to tell the two apart.
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidCredentials hides which part of a login failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")
)
