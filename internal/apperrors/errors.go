package apperrors

import (
	"errors"
)

var (
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")

	// Returned uniformly for unknown user, wrong password or unresolvable
	// token subject. Callers must not be able to tell those apart.
	ErrAuthFailed = errors.New("authentication failed")

	ErrInvalidToken   = errors.New("token is invalid or expired")
	ErrWrongTokenType = errors.New("token has wrong type")

	ErrNewsNotFound    = errors.New("news article not found")
	ErrContactNotFound = errors.New("contact message not found")
)
