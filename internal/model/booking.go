package model

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "Pending"      // Ожидает подтверждения администратора
	BookingStatusConfirmed BookingStatus = "Confirmed"    // Подтверждено
	BookingStatusPacked    BookingStatus = "Packed/Ready" // Студия подготовлена
	BookingStatusCompleted BookingStatus = "Completed"    // Завершено
	BookingStatusCancelled BookingStatus = "Cancelled"    // Отменено
)

// Часы работы студии: слоты с 8:00, последний час заканчивается в 24:00
const (
	StudioOpenHour  = 8
	StudioCloseHour = 24
)

type Booking struct {
	ID          string        `json:"id"`
	TeacherID   string        `json:"teacherId"`
	TeacherName string        `json:"teacherName"`
	Date        string        `json:"date"`      // YYYY-MM-DD
	StartTime   int           `json:"startTime"` // час начала, 8..23
	Duration    int           `json:"duration"`  // длительность в часах
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	Cost        float64       `json:"cost"` // снимок цены на момент создания
}

// IsTerminal проверяет является ли статус конечным
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// CanTransitionTo проверяет допустим ли переход статуса.
// Админ двигает бронирование только вперёд: Pending -> Confirmed -> Packed -> Completed,
// любой незавершённый статус можно отменить. Из терминального статуса выхода нет.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if target == BookingStatusCancelled {
		return true
	}
	switch s {
	case BookingStatusPending:
		return target == BookingStatusConfirmed
	case BookingStatusConfirmed:
		return target == BookingStatusPacked
	case BookingStatusPacked:
		return target == BookingStatusCompleted
	}
	return false
}

// Covers проверяет занимает ли бронирование указанный час
func (b *Booking) Covers(hour int) bool {
	return hour >= b.StartTime && hour < b.StartTime+b.Duration
}
