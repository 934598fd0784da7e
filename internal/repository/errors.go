// Package repository holds the in-memory stores behind the service: the
// read-only book catalog, the user directory, the per-book review store and
// the login session stores.  The sentinel values below let higher layers
// such as handlers distinguish failure kinds with errors.Is.  ErrNotFound
// and ErrBadRequest are kinds; the more specific errors wrap them so a
// handler can map either the kind or the exact reason.
package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is the kind shared by every "no such thing" failure.
// Handlers translate it into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrBadRequest is the kind shared by malformed input.  Handlers translate
// it into an HTTP 400 response.
var ErrBadRequest = errors.New("bad request")

var (
	// ErrBookNotFound is returned when an ISBN is not in the catalog.
	ErrBookNotFound = fmt.Errorf("book %w", ErrNotFound)
	// ErrReviewNotFound is returned when deleting a review that the user
	// never wrote (or already deleted) for an existing book.
	ErrReviewNotFound = fmt.Errorf("review %w", ErrNotFound)
	// ErrEmptyReview is returned when review text is missing or blank.
	ErrEmptyReview = fmt.Errorf("review text required: %w", ErrBadRequest)
	// ErrMissingCredentials is returned when a username or password is empty.
	ErrMissingCredentials = fmt.Errorf("username and password required: %w", ErrBadRequest)
)

// ErrUsernameTaken is returned by registration when the name is in use.
// Handlers translate it into an HTTP 409 response.
var ErrUsernameTaken = errors.New("username already exists")
