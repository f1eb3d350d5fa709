package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/iliyamo/restaurant-reservation/internal/model"
	"github.com/iliyamo/restaurant-reservation/internal/queue"
	"github.com/iliyamo/restaurant-reservation/internal/repository"
)

// ReservationService applies the booking rules: the booking window,
// table capacity, ownership and the same-day cancellation lock.
type ReservationService struct {
	tables       TableStore
	reservations ReservationStore
	events       EventPublisher
	now          Clock
	loc          *time.Location
	windowDays   int
	log          zerolog.Logger
}

// ReservationOptions configures NewReservationService.  Zero values pick
// time.Now, UTC and a 30 day window.
type ReservationOptions struct {
	Clock      Clock
	Location   *time.Location
	WindowDays int
	Logger     zerolog.Logger
}

func NewReservationService(tables TableStore, reservations ReservationStore, events EventPublisher, opts ReservationOptions) *ReservationService {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.WindowDays <= 0 {
		opts.WindowDays = 30
	}
	return &ReservationService{
		tables:       tables,
		reservations: reservations,
		events:       events,
		now:          opts.Clock,
		loc:          opts.Location,
		windowDays:   opts.WindowDays,
		log:          opts.Logger,
	}
}

// CreateInput is a booking request as received from the client.
type CreateInput struct {
	Date       string
	Time       string
	TableID    uint64
	Guests     int
	Name       string
	Phone      string
	CreditCard string
}

// TableAvailability is a table together with whether the requested slot
// is already taken.
type TableAvailability struct {
	model.Table
	Reserved bool
}

// today is the current calendar day in the restaurant's zone, expressed
// as midnight UTC so it compares directly with parsed dates.
func (s *ReservationService) today() time.Time {
	y, m, d := s.now().In(s.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func parseSlot(date, slot string) (time.Time, model.TimeSlot, error) {
	if date == "" || slot == "" {
		return time.Time{}, "", fail(ErrBadRequest, "date and time are required")
	}
	d, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return time.Time{}, "", fail(ErrBadRequest, "date must be formatted as YYYY-MM-DD")
	}
	ts := model.TimeSlot(slot)
	if !ts.Valid() {
		return time.Time{}, "", fail(ErrBadRequest, "time must be lunch or dinner")
	}
	return d, ts, nil
}

// Availability lists every table with its reserved flag for the slot.
func (s *ReservationService) Availability(ctx context.Context, date, slot string) ([]TableAvailability, error) {
	d, ts, err := parseSlot(date, slot)
	if err != nil {
		return nil, err
	}
	tables, err := s.tables.List(ctx)
	if err != nil {
		return nil, err
	}
	reserved, err := s.reservations.ReservedTableIDs(ctx, d, ts)
	if err != nil {
		return nil, err
	}
	out := make([]TableAvailability, 0, len(tables))
	for _, t := range tables {
		out = append(out, TableAvailability{Table: t, Reserved: reserved[t.ID]})
	}
	return out, nil
}

// Create books a table for userID.  userID 0 means the caller is not
// logged in.
func (s *ReservationService) Create(ctx context.Context, userID uint64, in CreateInput) (model.Reservation, error) {
	if userID == 0 {
		return model.Reservation{}, fail(ErrUnauthorized, "login required")
	}
	date, slot, err := parseSlot(in.Date, in.Time)
	if err != nil {
		return model.Reservation{}, err
	}
	if in.TableID == 0 {
		return model.Reservation{}, fail(ErrBadRequest, "table_id is required")
	}
	if in.Guests < 1 {
		return model.Reservation{}, fail(ErrBadRequest, "guests must be at least 1")
	}

	today := s.today()
	if date.Before(today) {
		return model.Reservation{}, fail(ErrBadRequest, "past dates cannot be booked")
	}
	if date.After(today.AddDate(0, 0, s.windowDays)) {
		return model.Reservation{}, fail(ErrBadRequest, "tables can only be booked up to %d days ahead", s.windowDays)
	}

	table, err := s.tables.GetByID(ctx, in.TableID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Reservation{}, fail(ErrNotFound, "table does not exist")
		}
		return model.Reservation{}, err
	}
	if in.Guests > table.Capacity {
		return model.Reservation{}, fail(ErrBadRequest, "this table seats at most %d guests", table.Capacity)
	}

	res := model.Reservation{
		UserID:     userID,
		TableID:    table.ID,
		Date:       date,
		Time:       slot,
		Name:       in.Name,
		Phone:      in.Phone,
		CreditCard: in.CreditCard,
		Guests:     in.Guests,
	}
	if err := s.reservations.Create(ctx, &res); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return model.Reservation{}, fail(ErrConflict, "table is already reserved for this slot")
		}
		return model.Reservation{}, err
	}
	s.publish(ctx, queue.ReservationCreated, res)
	return res, nil
}

// List returns the caller's reservations; anonymous callers get none.
func (s *ReservationService) List(ctx context.Context, userID uint64) ([]model.Reservation, error) {
	if userID == 0 {
		return []model.Reservation{}, nil
	}
	return s.reservations.ListByUser(ctx, userID)
}

// Cancel removes a reservation owned by userID and records it in the
// cancellation log.  A missing reservation and someone else's reservation
// produce the same ErrForbidden so ids cannot be probed.
func (s *ReservationService) Cancel(ctx context.Context, userID, reservationID uint64) (model.CancelledReservation, error) {
	if userID == 0 {
		return model.CancelledReservation{}, fail(ErrUnauthorized, "login required")
	}
	denied := fail(ErrForbidden, "reservation not found or not yours")

	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.CancelledReservation{}, denied
		}
		return model.CancelledReservation{}, err
	}
	if res.UserID != userID {
		return model.CancelledReservation{}, denied
	}
	if res.Date.Equal(s.today()) {
		return model.CancelledReservation{}, fail(ErrBadRequest, "reservations cannot be cancelled on the day")
	}

	c, err := s.reservations.Cancel(ctx, reservationID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.CancelledReservation{}, denied
		}
		return model.CancelledReservation{}, err
	}
	s.publish(ctx, queue.ReservationCancelled, res)
	return c, nil
}

// Cancellations returns the caller's cancellation history; anonymous
// callers get none.
func (s *ReservationService) Cancellations(ctx context.Context, userID uint64) ([]model.CancelledReservation, error) {
	if userID == 0 {
		return []model.CancelledReservation{}, nil
	}
	return s.reservations.ListCancellationsByUser(ctx, userID)
}

// publish is best effort: the booking is already committed.
func (s *ReservationService) publish(ctx context.Context, t queue.EventType, res model.Reservation) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, queue.NewReservationEvent(t, res, s.now())); err != nil {
		s.log.Warn().Err(err).Str("event", string(t)).Uint64("reservation_id", res.ID).Msg("event not published")
	}
}
