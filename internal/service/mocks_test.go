package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/iliyamo/restaurant-reservation/internal/model"
	"github.com/iliyamo/restaurant-reservation/internal/queue"
)

type MockUserStore struct{ mock.Mock }

func (m *MockUserStore) Create(ctx context.Context, username, passwordHash, name string) (uint64, error) {
	args := m.Called(ctx, username, passwordHash, name)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (model.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) GetByID(ctx context.Context, id uint64) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

type MockSessionStore struct{ mock.Mock }

func (m *MockSessionStore) Create(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error {
	return m.Called(ctx, userID, tokenHash, exp).Error(0)
}

func (m *MockSessionStore) Validate(ctx context.Context, tokenHash string) (uint64, error) {
	args := m.Called(ctx, tokenHash)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockSessionStore) Revoke(ctx context.Context, tokenHash string) error {
	return m.Called(ctx, tokenHash).Error(0)
}

type MockTableStore struct{ mock.Mock }

func (m *MockTableStore) List(ctx context.Context) ([]model.Table, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Table), args.Error(1)
}

func (m *MockTableStore) GetByID(ctx context.Context, id uint64) (model.Table, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Table), args.Error(1)
}

type MockReservationStore struct{ mock.Mock }

func (m *MockReservationStore) Create(ctx context.Context, res *model.Reservation) error {
	return m.Called(ctx, res).Error(0)
}

func (m *MockReservationStore) GetByID(ctx context.Context, id uint64) (model.Reservation, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Reservation), args.Error(1)
}

func (m *MockReservationStore) ListByUser(ctx context.Context, userID uint64) ([]model.Reservation, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Reservation), args.Error(1)
}

func (m *MockReservationStore) ReservedTableIDs(ctx context.Context, date time.Time, slot model.TimeSlot) (map[uint64]bool, error) {
	args := m.Called(ctx, date, slot)
	return args.Get(0).(map[uint64]bool), args.Error(1)
}

func (m *MockReservationStore) Cancel(ctx context.Context, reservationID, userID uint64) (model.CancelledReservation, error) {
	args := m.Called(ctx, reservationID, userID)
	return args.Get(0).(model.CancelledReservation), args.Error(1)
}

func (m *MockReservationStore) ListCancellationsByUser(ctx context.Context, userID uint64) ([]model.CancelledReservation, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.CancelledReservation), args.Error(1)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, ev queue.ReservationEvent) error {
	return m.Called(ctx, ev).Error(0)
}
