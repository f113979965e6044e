package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-booking/internal/handler"
	"github.com/iliyamo/restaurant-table-booking/internal/middleware"
	"github.com/iliyamo/restaurant-table-booking/internal/model"
)

// RegisterTables wires the public table endpoints and the admin CRUD
// group.  cacheMW is applied ONLY to the static table detail: the
// listing carries derived availability flags and must always be
// computed fresh.
func RegisterTables(e *echo.Echo, h *handler.TableHandler, jwtSecret string, cacheMW echo.MiddlewareFunc) {
	// Public browse: listing with availability, detail by id.
	e.GET("/v1/tables", h.ListTables)
	if cacheMW != nil {
		e.GET("/v1/tables/:id", h.GetTable, cacheMW)
	} else {
		e.GET("/v1/tables/:id", h.GetTable)
	}

	// Admin CRUD under /v1/admin/tables.
	admin := e.Group("/v1/admin/tables")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.POST("", h.CreateTable)
	admin.PATCH("/:id", h.UpdateTable)
	admin.DELETE("/:id", h.DeleteTable)
}
