package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/iliyamo/restaurant-reservation/internal/model"
)

// ReservationRepo provides CRUD operations for reservations and the
// cancellation audit log.  Dates are passed to MySQL as YYYY-MM-DD strings
// so the session time zone never shifts a booking to another day.
type ReservationRepo struct {
    db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = `id, user_id, table_id, res_date, time_slot, name, phone, credit_card, guests, created_at`

func scanReservation(sc interface{ Scan(...any) error }, res *model.Reservation) error {
    var slot string
    if err := sc.Scan(&res.ID, &res.UserID, &res.TableID, &res.Date, &slot,
        &res.Name, &res.Phone, &res.CreditCard, &res.Guests, &res.CreatedAt); err != nil {
        return err
    }
    res.Time = model.TimeSlot(slot)
    return nil
}

// Create inserts res and fills in its generated ID and CreatedAt.  When
// the table is already booked for that date and slot the unique key
// rejects the row and ErrDuplicate is returned.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
    const q = `INSERT INTO reservations (user_id, table_id, res_date, time_slot, name, phone, credit_card, guests)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
    result, err := r.db.ExecContext(ctx, q,
        res.UserID, res.TableID, res.Date.Format(model.DateLayout), string(res.Time),
        res.Name, res.Phone, res.CreditCard, res.Guests)
    if err != nil {
        if isDuplicate(err) {
            return ErrDuplicate
        }
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    res.ID = uint64(id)
    res.CreatedAt = time.Now().UTC()
    return nil
}

// GetByID returns a reservation or ErrNotFound.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (model.Reservation, error) {
    var res model.Reservation
    row := r.db.QueryRowContext(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, id)
    return res, notFound(scanReservation(row, &res))
}

// ListByUser returns the user's reservations ordered by date, slot and id.
// An empty slice (never nil) is returned when there are none.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Reservation, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT `+reservationColumns+` FROM reservations WHERE user_id = ? ORDER BY res_date, time_slot, id`, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := []model.Reservation{}
    for rows.Next() {
        var res model.Reservation
        if err := scanReservation(rows, &res); err != nil {
            return nil, err
        }
        out = append(out, res)
    }
    return out, rows.Err()
}

// ReservedTableIDs returns the set of table ids booked for the slot.
func (r *ReservationRepo) ReservedTableIDs(ctx context.Context, date time.Time, slot model.TimeSlot) (map[uint64]bool, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT table_id FROM reservations WHERE res_date = ? AND time_slot = ?`,
        date.Format(model.DateLayout), string(slot))
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    ids := make(map[uint64]bool)
    for rows.Next() {
        var id uint64
        if err := rows.Scan(&id); err != nil {
            return nil, err
        }
        ids[id] = true
    }
    return ids, rows.Err()
}

// Cancel deletes the reservation owned by userID and appends the audit
// row in a single transaction.  When no matching row is deleted (it is
// gone or belongs to someone else) nothing is written and ErrNotFound is
// returned.
func (r *ReservationRepo) Cancel(ctx context.Context, reservationID, userID uint64) (model.CancelledReservation, error) {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return model.CancelledReservation{}, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    result, err := tx.ExecContext(ctx, `DELETE FROM reservations WHERE id = ? AND user_id = ?`, reservationID, userID)
    if err != nil {
        return model.CancelledReservation{}, err
    }
    n, err := result.RowsAffected()
    if err != nil {
        return model.CancelledReservation{}, err
    }
    if n == 0 {
        return model.CancelledReservation{}, ErrNotFound
    }

    at := time.Now().UTC().Truncate(time.Second)
    result, err = tx.ExecContext(ctx,
        `INSERT INTO cancelled_reservations (reservation_id, user_id, cancelled_at) VALUES (?, ?, ?)`,
        reservationID, userID, at)
    if err != nil {
        return model.CancelledReservation{}, err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return model.CancelledReservation{}, err
    }
    if err := tx.Commit(); err != nil {
        return model.CancelledReservation{}, err
    }
    committed = true
    return model.CancelledReservation{ID: uint64(id), ReservationID: reservationID, UserID: userID, CancelledAt: at}, nil
}

// ListCancellationsByUser returns the user's cancellation history, newest
// first.
func (r *ReservationRepo) ListCancellationsByUser(ctx context.Context, userID uint64) ([]model.CancelledReservation, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT id, reservation_id, user_id, cancelled_at FROM cancelled_reservations
         WHERE user_id = ? ORDER BY cancelled_at DESC, id DESC`, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := []model.CancelledReservation{}
    for rows.Next() {
        var c model.CancelledReservation
        if err := rows.Scan(&c.ID, &c.ReservationID, &c.UserID, &c.CancelledAt); err != nil {
            return nil, err
        }
        out = append(out, c)
    }
    return out, rows.Err()
}
