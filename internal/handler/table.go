package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/rs/zerolog"

    "github.com/iliyamo/restaurant-reservation/internal/service"
)

// TableHandler serves the availability grid.
type TableHandler struct {
    Reservations *service.ReservationService
    Log          zerolog.Logger
}

func NewTableHandler(res *service.ReservationService, log zerolog.Logger) *TableHandler {
    return &TableHandler{Reservations: res, Log: log}
}

type tableResp struct {
    ID       uint64 `json:"id"`
    Location string `json:"location"`
    Capacity int    `json:"capacity"`
    Reserved bool   `json:"reserved"`
}

// List handles GET /tables?date=YYYY-MM-DD&time=lunch|dinner.
func (h *TableHandler) List(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    tables, err := h.Reservations.Availability(ctx, c.QueryParam("date"), c.QueryParam("time"))
    if err != nil {
        return fail(c, h.Log, err)
    }
    out := make([]tableResp, 0, len(tables))
    for _, t := range tables {
        out = append(out, tableResp{ID: t.ID, Location: t.Location, Capacity: t.Capacity, Reserved: t.Reserved})
    }
    return c.JSON(http.StatusOK, out)
}
