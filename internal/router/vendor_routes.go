package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mzohaibq/roomstay/internal/handler"
	"github.com/mzohaibq/roomstay/internal/middleware"
	"github.com/mzohaibq/roomstay/internal/model"
)

// RegisterVendor registers VENDOR-scoped endpoints under /v1/vendor.  All
// routes require a valid JWT and the VENDOR role.  Read endpoints are open
// to any vendor so a pending account can see its own data; everything that
// mutates inventory or progresses bookings additionally requires admin
// approval.
func RegisterVendor(e *echo.Echo, p *handler.VendorPropertyHandler, rc *handler.VendorRoomCategoryHandler,
	b *handler.VendorBookingHandler, jwtSecret string, approved middleware.VendorStatusFunc) {

	g := e.Group(
		"/v1/vendor",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleVendor),
	)

	// ---- Reads (any vendor) ----
	g.GET("/properties", p.List)
	g.GET("/properties/:id", p.Get)
	g.GET("/properties/:id/room-categories", rc.List)
	g.GET("/properties/:id/bookings", b.ListByProperty)

	// ---- Mutations (approved vendors only) ----
	ga := g.Group("", middleware.RequireApprovedVendor(approved))
	ga.POST("/properties", p.Create)
	ga.PUT("/properties/:id", p.Update)
	ga.PATCH("/properties/:id", p.Update)
	ga.DELETE("/properties/:id", p.Delete)

	ga.POST("/properties/:id/room-categories", rc.Create)
	ga.PUT("/room-categories/:categoryId", rc.Update)
	ga.PATCH("/room-categories/:categoryId", rc.Update)
	ga.DELETE("/room-categories/:categoryId", rc.Delete)

	ga.PATCH("/bookings/:bookingId/status", b.UpdateStatus)
}
