package service

import (
	"context"
	"time"

	"github.com/iliyamo/restaurant-reservation/internal/model"
	"github.com/iliyamo/restaurant-reservation/internal/queue"
)

// UserStore is implemented by repository.UserRepo.
type UserStore interface {
	Create(ctx context.Context, username, passwordHash, name string) (uint64, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// SessionStore is implemented by repository.SessionRepo.
type SessionStore interface {
	Create(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error
	Validate(ctx context.Context, tokenHash string) (uint64, error)
	Revoke(ctx context.Context, tokenHash string) error
}

// TableStore is implemented by repository.TableRepo.
type TableStore interface {
	List(ctx context.Context) ([]model.Table, error)
	GetByID(ctx context.Context, id uint64) (model.Table, error)
}

// ReservationStore is implemented by repository.ReservationRepo.
type ReservationStore interface {
	Create(ctx context.Context, res *model.Reservation) error
	GetByID(ctx context.Context, id uint64) (model.Reservation, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.Reservation, error)
	ReservedTableIDs(ctx context.Context, date time.Time, slot model.TimeSlot) (map[uint64]bool, error)
	Cancel(ctx context.Context, reservationID, userID uint64) (model.CancelledReservation, error)
	ListCancellationsByUser(ctx context.Context, userID uint64) ([]model.CancelledReservation, error)
}

// EventPublisher is implemented by queue.Publisher.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.ReservationEvent) error
}

// Clock returns the current time; tests pin it.
type Clock func() time.Time
