package router // route registration for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mzohaibq/roomstay/internal/handler"
	"github.com/mzohaibq/roomstay/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication and no
// domain handlers: the health check and the Prometheus scrape endpoint.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterAuth registers the authentication endpoints.  Register, login and
// refresh live under /v1/auth without a session; logout and the profile
// endpoint accept a bearer token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout works with either a refresh token in the body or a bearer
	// token, so it uses the optional variant.
	g.POST("/logout", a.Logout, middleware.OptionalAuth(jwtSecret))

	e.GET("/v1/me", a.Me, middleware.JWTAuth(jwtSecret))
}

// RegisterPublic registers the unauthenticated browse, availability and
// booking endpoints.  The cache middleware wraps only the browse reads;
// booking creation goes through OptionalAuth so signed-in customers get the
// booking attached to their account while guests book anonymously.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, b *handler.BookingHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	g := e.Group("/v1")

	g.GET("/properties", p.ListProperties, cache)
	g.GET("/properties/:id", p.GetProperty, cache)
	g.GET("/room-categories/:id/availability", p.CheckAvailability)

	g.POST("/bookings", b.Create, middleware.OptionalAuth(jwtSecret))
	g.GET("/bookings/lookup", b.Lookup)
}
