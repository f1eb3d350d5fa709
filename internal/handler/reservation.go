package handler

import (
    "context"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/rs/zerolog"

    "github.com/iliyamo/restaurant-reservation/internal/middleware"
    "github.com/iliyamo/restaurant-reservation/internal/model"
    "github.com/iliyamo/restaurant-reservation/internal/service"
)

// ReservationHandler serves booking, listing and cancellation for the
// caller identified by the session middleware.
type ReservationHandler struct {
    Reservations *service.ReservationService
    Log          zerolog.Logger
}

func NewReservationHandler(res *service.ReservationService, log zerolog.Logger) *ReservationHandler {
    return &ReservationHandler{Reservations: res, Log: log}
}

type createReservationReq struct {
    Date       string `json:"date" validate:"required,datetime=2006-01-02"`
    Time       string `json:"time" validate:"required,oneof=lunch dinner"`
    TableID    uint64 `json:"table_id" validate:"required"`
    Guests     int    `json:"guests" validate:"required,min=1"`
    Name       string `json:"name" validate:"required"`
    Phone      string `json:"phone" validate:"required"`
    CreditCard string `json:"credit_card" validate:"required"`
}

type reservationResp struct {
    ID      uint64 `json:"id"`
    TableID uint64 `json:"table_id"`
    Date    string `json:"date"`
    Time    string `json:"time"`
    Guests  int    `json:"guests"`
}

type cancellationResp struct {
    ID            uint64    `json:"id"`
    ReservationID uint64    `json:"reservation_id"`
    CancelledAt   time.Time `json:"cancelled_at"`
}

// Create handles POST /reservations.
func (h *ReservationHandler) Create(c echo.Context) error {
    var req createReservationReq
    if msg := bindAndValidate(c, &req); msg != "" {
        return badRequest(c, msg)
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    res, err := h.Reservations.Create(ctx, middleware.UserID(c), service.CreateInput{
        Date:       req.Date,
        Time:       req.Time,
        TableID:    req.TableID,
        Guests:     req.Guests,
        Name:       req.Name,
        Phone:      req.Phone,
        CreditCard: req.CreditCard,
    })
    if err != nil {
        return fail(c, h.Log, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{
        "message": "reservation created",
        "id":      res.ID,
    })
}

// List handles GET /reservations.  Anonymous callers get an empty list.
func (h *ReservationHandler) List(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    list, err := h.Reservations.List(ctx, middleware.UserID(c))
    if err != nil {
        return fail(c, h.Log, err)
    }
    out := make([]reservationResp, 0, len(list))
    for _, r := range list {
        out = append(out, toReservationResp(r))
    }
    return c.JSON(http.StatusOK, out)
}

// Cancel handles DELETE /reservations/:id.
func (h *ReservationHandler) Cancel(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return badRequest(c, "invalid reservation id")
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if _, err := h.Reservations.Cancel(ctx, middleware.UserID(c), id); err != nil {
        return fail(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "reservation cancelled"})
}

// Cancellations handles GET /cancelled-reservations.
func (h *ReservationHandler) Cancellations(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    list, err := h.Reservations.Cancellations(ctx, middleware.UserID(c))
    if err != nil {
        return fail(c, h.Log, err)
    }
    out := make([]cancellationResp, 0, len(list))
    for _, cr := range list {
        out = append(out, cancellationResp{ID: cr.ID, ReservationID: cr.ReservationID, CancelledAt: cr.CancelledAt.UTC()})
    }
    return c.JSON(http.StatusOK, out)
}

func toReservationResp(r model.Reservation) reservationResp {
    return reservationResp{
        ID:      r.ID,
        TableID: r.TableID,
        Date:    r.Date.Format(model.DateLayout),
        Time:    string(r.Time),
        Guests:  r.Guests,
    }
}
