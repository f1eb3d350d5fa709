package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation/internal/handler"
	"github.com/iliyamo/restaurant-reservation/internal/middleware"
)

// RegisterReservations registers the availability grid and the booking
// endpoints.  Reads are open and answer anonymous callers with empty
// lists; writes require a session.
func RegisterReservations(e *echo.Echo, t *handler.TableHandler, r *handler.ReservationHandler) {
	e.GET("/tables", t.List)

	e.GET("/reservations", r.List)
	e.POST("/reservations", r.Create, middleware.RequireSession())
	e.DELETE("/reservations/:id", r.Cancel, middleware.RequireSession())
	e.GET("/cancelled-reservations", r.Cancellations)
}
