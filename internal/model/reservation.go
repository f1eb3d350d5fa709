package model

import "time"

// DateLayout is the wire and storage format of a reservation date.
const DateLayout = "2006-01-02"

// TimeSlot is the part of the day a table is booked for.
type TimeSlot string

const (
    Lunch  TimeSlot = "lunch"
    Dinner TimeSlot = "dinner"
)

// Valid reports whether s is one of the known slots.
func (s TimeSlot) Valid() bool { return s == Lunch || s == Dinner }

// Reservation books one table for one (date, slot) pair.
//
// Fields:
//  ID         – primary key identifier.
//  UserID     – user who made the reservation.
//  TableID    – table being reserved.
//  Date       – calendar day, midnight UTC.
//  Time       – lunch or dinner.
//  Name, Phone, CreditCard – contact details entered with the booking.
//  Guests     – party size, never above the table's capacity.
//  CreatedAt  – creation timestamp.
type Reservation struct {
    ID         uint64    // reservations.id
    UserID     uint64    // reservations.user_id
    TableID    uint64    // reservations.table_id
    Date       time.Time // reservations.res_date
    Time       TimeSlot  // reservations.time_slot
    Name       string    // reservations.name
    Phone      string    // reservations.phone
    CreditCard string    // reservations.credit_card
    Guests     int       // reservations.guests
    CreatedAt  time.Time // reservations.created_at
}

// CancelledReservation is an append-only audit row written when a
// reservation is cancelled.  ReservationID points at a row that no
// longer exists.
type CancelledReservation struct {
    ID            uint64    // cancelled_reservations.id
    ReservationID uint64    // cancelled_reservations.reservation_id
    UserID        uint64    // cancelled_reservations.user_id
    CancelledAt   time.Time // cancelled_reservations.cancelled_at
}
