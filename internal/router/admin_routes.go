package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mzohaibq/roomstay/internal/handler"
	"github.com/mzohaibq/roomstay/internal/middleware"
	"github.com/mzohaibq/roomstay/internal/model"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /v1/admin: user
// listing, the vendor approval workflow, and platform-wide booking
// oversight.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	g.GET("/users", a.ListUsers)
	g.GET("/vendors", a.ListVendors)
	g.PATCH("/vendors/:id/status", a.UpdateVendorStatus)

	g.GET("/bookings", a.ListBookings)
	g.PATCH("/bookings/:id/status", a.UpdateBookingStatus)
}
