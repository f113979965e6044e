package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-booking/internal/handler"
	"github.com/iliyamo/restaurant-table-booking/internal/middleware"
	"github.com/iliyamo/restaurant-table-booking/internal/model"
)

// RegisterBookings wires the booking lifecycle endpoints.  All of them
// require a valid access token; the rate limiter (when non-nil) guards
// the whole group since these are the write-heavy endpoints.
func RegisterBookings(e *echo.Echo, h *handler.BookingHandler, jwtSecret string, rateMW echo.MiddlewareFunc) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleAdmin, model.RoleCustomer))
	if rateMW != nil {
		g.Use(rateMW)
	}

	g.POST("/bookings", h.Create)
	g.PATCH("/bookings/:id", h.Update)
	g.DELETE("/bookings/:id", h.Cancel)
	g.GET("/my-bookings", h.MyBookings)
}
