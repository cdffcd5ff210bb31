package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mzohaibq/roomstay/internal/handler"
	"github.com/mzohaibq/roomstay/internal/middleware"
	"github.com/mzohaibq/roomstay/internal/model"
)

// RegisterCustomer registers customer-scoped endpoints under /v1.  All
// routes require a valid JWT and the CUSTOMER role; customers see and cancel
// their own bookings here, while creation is on the public router so guests
// can book too.
func RegisterCustomer(e *echo.Echo, b *handler.BookingHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleCustomer),
	)
	g.GET("/my-bookings", b.ListMine)
	g.GET("/bookings/:id", b.GetMine)
	g.POST("/bookings/:id/cancel", b.CancelMine)
}
