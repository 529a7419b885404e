package repository

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/dreamedu/studio-portal/internal/model"
	"github.com/dreamedu/studio-portal/internal/store"
)

type BookingRepository struct {
	store  store.SnapshotStore
	logger *zap.Logger

	mu       sync.RWMutex
	bookings []*model.Booking
}

func NewBookingRepository(st store.SnapshotStore, logger *zap.Logger) *BookingRepository {
	return &BookingRepository{store: st, logger: logger}
}

func (r *BookingRepository) Load(ctx context.Context) bool {
	var bookings []*model.Booking
	defaulted := r.store.Load(ctx, store.BucketBookings, &bookings)
	if defaulted {
		bookings = nil
	}

	r.mu.Lock()
	r.bookings = bookings
	r.mu.Unlock()
	return defaulted
}

// Save сериализует копию коллекции, снятую под блокировкой
func (r *BookingRepository) Save(ctx context.Context) error {
	return r.store.Save(ctx, store.BucketBookings, r.All())
}

// All возвращает копии всех бронирований, новые первыми
func (r *BookingRepository) All() []*model.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		copied := *b
		out = append(out, &copied)
	}
	return out
}

func (r *BookingRepository) GetByID(id string) *model.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.bookings {
		if b.ID == id {
			copied := *b
			return &copied
		}
	}
	return nil
}

// ForTeacher возвращает бронирования учителя
func (r *BookingRepository) ForTeacher(teacherID string) []*model.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*model.Booking
	for _, b := range r.bookings {
		if b.TeacherID == teacherID {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out
}

// Add добавляет бронирование в начало списка
func (r *BookingRepository) Add(b *model.Booking) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *b
	r.bookings = append([]*model.Booking{&copied}, r.bookings...)
}

// SetStatus выставляет статус без проверок переходов (их делает сервис)
func (r *BookingRepository) SetStatus(id string, status model.BookingStatus) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.ID == id {
			b.Status = status
			return true
		}
	}
	return false
}

// HourTaken проверяет занят ли час на дату каким-либо неотменённым бронированием
func (r *BookingRepository) HourTaken(date string, hour int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.bookings {
		if b.Date == date && b.Status != model.BookingStatusCancelled && b.Covers(hour) {
			return true
		}
	}
	return false
}

// OverlapExists проверяет пересекается ли интервал [start, start+duration)
// с неотменённым бронированием на эту дату
func (r *BookingRepository) OverlapExists(date string, start, duration int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.bookings {
		if b.Date != date || b.Status == model.BookingStatusCancelled {
			continue
		}
		if start < b.StartTime+b.Duration && b.StartTime < start+duration {
			return true
		}
	}
	return false
}

// OnDate возвращает неотменённые бронирования на дату
func (r *BookingRepository) OnDate(date string) []*model.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*model.Booking
	for _, b := range r.bookings {
		if b.Date == date && b.Status != model.BookingStatusCancelled {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out
}
