package middleware

// identity.go holds the helpers shared by middleware and handlers for reading
// the authenticated author out of the Echo context.

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AuthorIDKey is the context key JWTAuth stores the caller's id under.
const AuthorIDKey = "author_id"

// AuthorID returns the id of the authenticated author, if any.
func AuthorID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(AuthorIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// currentUserID renders the caller for rate limit and log keys. Requests
// without a token are "anon".
func currentUserID(c echo.Context) string {
	if id, ok := AuthorID(c); ok {
		return id.String()
	}
	return "anon"
}
