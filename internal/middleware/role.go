package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mzohaibq/roomstay/internal/model"
)

// RequireRole enforces that the authenticated user's "role" claim is one of
// the allowed values.  It assumes JWTAuth already ran and stored the role in
// context; missing or disallowed roles get 403.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

// VendorStatusFunc resolves the vendor_status of a user id.  The production
// wiring binds this to the user repository.
type VendorStatusFunc func(ctx context.Context, id uint64) (string, error)

// RequireApprovedVendor blocks vendor routes until the account has been
// approved by an admin.  Pending or suspended vendors can still log in and
// hit read endpoints outside this middleware, but anything mutating
// inventory is gated here.
func RequireApprovedVendor(lookup VendorStatusFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := CurrentUserID(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}
			status, err := lookup(c.Request().Context(), id)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
			}
			if status != model.VendorApproved {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "vendor account not approved"})
			}
			return next(c)
		}
	}
}
