// Package repository defines the data access layer and the sentinel errors
// it returns. These sentinel values allow higher layers such as handlers to
// distinguish between different failure scenarios. Any other error comes
// straight from the database driver.
package repository

import "errors"

// ErrAuthorNotFound is returned when no author row matches a lookup,
// update or delete. Handlers translate it into an HTTP 404 response.
var ErrAuthorNotFound = errors.New("author not found")

// ErrEmailExists and ErrUsernameExists are returned when an insert or
// update collides with another author's unique email or username.  The
// driver error is wrapped alongside so callers can still inspect it.
var (
	ErrEmailExists    = errors.New("email already exists")
	ErrUsernameExists = errors.New("username already exists")
)

// ErrConflict signals a unique constraint violation that is not on email
// or username, such as a primary key clash.
var ErrConflict = errors.New("conflict")

// ErrForbidden is returned when the caller attempts an operation
// on an author other than themselves. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")
