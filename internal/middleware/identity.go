package middleware

// identity.go holds helpers shared across middleware and handlers for
// reading the authenticated principal out of the Echo context.

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// CurrentUserID returns the authenticated user's id from the context.  The
// "sub" claim arrives as a float64 after JSON decoding, so both numeric and
// string forms are accepted.  ok is false for anonymous requests.
func CurrentUserID(c echo.Context) (uint64, bool) {
	switch v := c.Get("user_id").(type) {
	case float64:
		return uint64(v), true
	case uint64:
		return v, true
	case string:
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

// CurrentRole returns the role claim stored by JWTAuth, or "" when absent.
func CurrentRole(c echo.Context) string {
	if s, ok := c.Get("role").(string); ok {
		return s
	}
	return ""
}

// userID returns the user id as a string for rate-limit key building,
// "guest" when the request is anonymous.
func userID(c echo.Context) string {
	if id, ok := CurrentUserID(c); ok {
		return strconv.FormatUint(id, 10)
	}
	return "guest"
}
