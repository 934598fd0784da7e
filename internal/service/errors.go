// Package service implements the login flow and the review gateway on top
// of the repositories.  Both are plain structs constructed once in main and
// shared by the HTTP handlers.
package service

import (
	"errors"

	"github.com/iliyamo/book-review-service/internal/repository"
)

var (
	// ErrMissingCredentials is returned when username or password is empty.
	ErrMissingCredentials = repository.ErrMissingCredentials
	// ErrInvalidCredentials is returned when the pair does not match a user.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized is returned when a review mutation has no resolvable
	// session.
	ErrUnauthorized = errors.New("unauthorized")
)
