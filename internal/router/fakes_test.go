package router

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/restaurant-reservation/internal/model"
	"github.com/iliyamo/restaurant-reservation/internal/queue"
	"github.com/iliyamo/restaurant-reservation/internal/repository"
)

// In-memory stores with the same error contract as the MySQL repositories.

type memUsers struct {
	mu    sync.Mutex
	byID  map[uint64]model.User
	names map[string]uint64
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[uint64]model.User{}, names: map[string]uint64{}}
}

func (m *memUsers) Create(_ context.Context, username, hash, name string) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.names[username]; ok {
		return 0, repository.ErrDuplicate
	}
	id := uint64(len(m.byID) + 1)
	m.byID[id] = model.User{ID: id, Username: username, PasswordHash: hash, Name: name}
	m.names[username] = id
	return id, nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.names[username]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return m.byID[id], nil
}

func (m *memUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

type memSession struct {
	userID  uint64
	exp     time.Time
	revoked bool
}

type memSessions struct {
	mu sync.Mutex
	m  map[string]*memSession
}

func (s *memSessions) Create(_ context.Context, userID uint64, hash string, exp time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.m == nil {
		s.m = map[string]*memSession{}
	}
	s.m[hash] = &memSession{userID: userID, exp: exp}
	return nil
}

func (s *memSessions) Validate(_ context.Context, hash string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.m[hash]
	if !ok || sess.revoked || time.Now().After(sess.exp) {
		return 0, repository.ErrNotFound
	}
	return sess.userID, nil
}

func (s *memSessions) Revoke(_ context.Context, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.m[hash]; ok {
		sess.revoked = true
	}
	return nil
}

type memTables struct{ tables []model.Table }

func newMemTables() *memTables {
	t := &memTables{}
	for i, d := range model.DefaultTables {
		d.ID = uint64(i + 1)
		t.tables = append(t.tables, d)
	}
	return t
}

func (t *memTables) List(context.Context) ([]model.Table, error) {
	return append([]model.Table(nil), t.tables...), nil
}

func (t *memTables) GetByID(_ context.Context, id uint64) (model.Table, error) {
	for _, tb := range t.tables {
		if tb.ID == id {
			return tb, nil
		}
	}
	return model.Table{}, repository.ErrNotFound
}

type memReservations struct {
	mu        sync.Mutex
	nextID    uint64
	rows      map[uint64]model.Reservation
	cancelled []model.CancelledReservation
}

func newMemReservations() *memReservations {
	return &memReservations{rows: map[uint64]model.Reservation{}}
}

func (r *memReservations) Create(_ context.Context, res *model.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.rows {
		if x.TableID == res.TableID && x.Date.Equal(res.Date) && x.Time == res.Time {
			return repository.ErrDuplicate
		}
	}
	r.nextID++
	res.ID = r.nextID
	r.rows[res.ID] = *res
	return nil
}

func (r *memReservations) GetByID(_ context.Context, id uint64) (model.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.rows[id]
	if !ok {
		return model.Reservation{}, repository.ErrNotFound
	}
	return res, nil
}

func (r *memReservations) ListByUser(_ context.Context, userID uint64) ([]model.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Reservation{}
	for _, x := range r.rows {
		if x.UserID == userID {
			out = append(out, x)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		if out[i].Time != out[j].Time {
			return out[i].Time == model.Lunch
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *memReservations) ReservedTableIDs(_ context.Context, date time.Time, slot model.TimeSlot) (map[uint64]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[uint64]bool{}
	for _, x := range r.rows {
		if x.Date.Equal(date) && x.Time == slot {
			out[x.TableID] = true
		}
	}
	return out, nil
}

func (r *memReservations) Cancel(_ context.Context, reservationID, userID uint64) (model.CancelledReservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.rows[reservationID]
	if !ok || res.UserID != userID {
		return model.CancelledReservation{}, repository.ErrNotFound
	}
	delete(r.rows, reservationID)
	c := model.CancelledReservation{
		ID:            uint64(len(r.cancelled) + 1),
		ReservationID: reservationID,
		UserID:        userID,
		CancelledAt:   time.Now().UTC(),
	}
	r.cancelled = append(r.cancelled, c)
	return c, nil
}

func (r *memReservations) ListCancellationsByUser(_ context.Context, userID uint64) ([]model.CancelledReservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.CancelledReservation{}
	for i := len(r.cancelled) - 1; i >= 0; i-- {
		if r.cancelled[i].UserID == userID {
			out = append(out, r.cancelled[i])
		}
	}
	return out, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.ReservationEvent
}

func (p *recordingPublisher) Publish(_ context.Context, ev queue.ReservationEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) types() []queue.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []queue.EventType
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}
