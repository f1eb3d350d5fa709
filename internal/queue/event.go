// Package queue defines the reservation events exchanged over RabbitMQ,
// the publisher used by the API and the consumer that records them.
package queue

import (
    "time"

    "github.com/google/uuid"

    "github.com/iliyamo/restaurant-reservation/internal/model"
)

// ReservationQueue is the durable queue both sides declare.
const ReservationQueue = "reservation.events"

// EventType names what happened to a reservation.
type EventType string

const (
    ReservationCreated   EventType = "reservation.created"
    ReservationCancelled EventType = "reservation.cancelled"
)

// ReservationEvent carries enough of the reservation for downstream
// consumers to log or notify without querying the database.  Contact and
// card details are left out on purpose.
type ReservationEvent struct {
    EventID       string    `json:"event_id"`
    Type          EventType `json:"type"`
    ReservationID uint64    `json:"reservation_id"`
    UserID        uint64    `json:"user_id"`
    TableID       uint64    `json:"table_id"`
    Date          string    `json:"date"`
    Time          string    `json:"time"`
    Guests        int       `json:"guests"`
    OccurredAt    string    `json:"occurred_at"`
}

// NewReservationEvent builds an event for r stamped with a fresh id.
func NewReservationEvent(t EventType, r model.Reservation, at time.Time) ReservationEvent {
    return ReservationEvent{
        EventID:       uuid.NewString(),
        Type:          t,
        ReservationID: r.ID,
        UserID:        r.UserID,
        TableID:       r.TableID,
        Date:          r.Date.Format(model.DateLayout),
        Time:          string(r.Time),
        Guests:        r.Guests,
        OccurredAt:    at.UTC().Format(time.RFC3339),
    }
}
