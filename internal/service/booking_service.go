package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dreamedu/studio-portal/internal/model"
	"github.com/dreamedu/studio-portal/internal/repository"
)

const dateLayout = "2006-01-02"

// BookingNotifier уведомляет администратора о новом бронировании
type BookingNotifier interface {
	BookingCreated(ctx context.Context, booking *model.Booking)
}

// SlotState состояние одного часа в сетке бронирования
type SlotState struct {
	Hour      int  `json:"hour"`
	Available bool `json:"available"`
	Past      bool `json:"past"`
}

type BookingService struct {
	teacherRepo *repository.TeacherRepository
	bookingRepo *repository.BookingRepository
	cmsRepo     *repository.CMSRepository
	notifier    BookingNotifier
	logger      *zap.Logger

	// Сериализует составные мутации: списание часов и создание
	// бронирования должны происходить вместе
	mu sync.Mutex
}

func NewBookingService(
	teacherRepo *repository.TeacherRepository,
	bookingRepo *repository.BookingRepository,
	cmsRepo *repository.CMSRepository,
	notifier BookingNotifier,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		teacherRepo: teacherRepo,
		bookingRepo: bookingRepo,
		cmsRepo:     cmsRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// Create создаёт бронирование со статусом Pending. Требует достаточный
// баланс часов, свободный интервал и часы работы студии. Стоимость
// фиксируется по тарифной сетке на момент создания, баланс списывается
// атомарно с созданием.
func (s *BookingService) Create(ctx context.Context, teacherID, date string, startTime, duration int) (*model.Booking, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if duration < 1 {
		return nil, fmt.Errorf("%w: duration must be at least 1 hour", ErrInvalidInput)
	}
	if startTime < model.StudioOpenHour || startTime+duration > model.StudioCloseHour {
		return nil, fmt.Errorf("%w: studio is open %d:00-%d:00", ErrInvalidInput, model.StudioOpenHour, model.StudioCloseHour)
	}

	booking, err := s.place(ctx, teacherID, date, startTime, duration)
	if err != nil {
		return nil, err
	}

	// Уведомление уходит после снятия блокировки: медленный мессенджер
	// не должен задерживать остальные бронирования
	if s.notifier != nil {
		s.notifier.BookingCreated(ctx, booking)
	}

	return booking, nil
}

// place проверяет баланс и занятость, списывает часы и добавляет
// бронирование под мьютексом сервиса
func (s *BookingService) place(ctx context.Context, teacherID, date string, startTime, duration int) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	teacher := s.teacherRepo.GetByID(teacherID)
	if teacher == nil {
		return nil, fmt.Errorf("%w: teacher %s", ErrNotFound, teacherID)
	}
	if teacher.Credits < float64(duration) {
		return nil, ErrInsufficientCredits
	}
	if s.bookingRepo.OverlapExists(date, startTime, duration) {
		return nil, ErrSlotTaken
	}

	booking := &model.Booking{
		ID:          "bk-" + uuid.NewString(),
		TeacherID:   teacher.ID,
		TeacherName: teacher.Name,
		Date:        date,
		StartTime:   startTime,
		Duration:    duration,
		Status:      model.BookingStatusPending,
		CreatedAt:   time.Now(),
		Cost:        s.cmsRepo.Get().Pricing.CostFor(duration),
	}

	s.bookingRepo.Add(booking)
	s.teacherRepo.AdjustCredits(teacher.ID, -float64(duration))

	if err := s.bookingRepo.Save(ctx); err != nil {
		s.logger.Error("Failed to persist bookings", zap.Error(err))
	}
	if err := s.teacherRepo.Save(ctx); err != nil {
		s.logger.Error("Failed to persist teachers", zap.Error(err))
	}

	s.logger.Info("Booking created",
		zap.String("booking_id", booking.ID),
		zap.String("teacher_id", teacher.ID),
		zap.String("date", date),
		zap.Int("start_time", startTime),
		zap.Int("duration", duration),
		zap.Float64("cost", booking.Cost),
	)

	return booking, nil
}

// UpdateStatus переводит бронирование в новый статус. Недопустимые переходы
// отклоняются самим леджером, а не только интерфейсом. Переход в Cancelled
// возвращает часы владельцу ровно один раз: повторная отмена — no-op.
func (s *BookingService) UpdateStatus(ctx context.Context, bookingID string, status model.BookingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking := s.bookingRepo.GetByID(bookingID)
	if booking == nil {
		return fmt.Errorf("%w: booking %s", ErrNotFound, bookingID)
	}

	// Повторная подача того же статуса (двойной клик) безвредна
	if booking.Status == status {
		return nil
	}
	if !booking.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, status)
	}

	s.bookingRepo.SetStatus(bookingID, status)

	if status == model.BookingStatusCancelled {
		s.teacherRepo.AdjustCredits(booking.TeacherID, float64(booking.Duration))
		if err := s.teacherRepo.Save(ctx); err != nil {
			s.logger.Error("Failed to persist teachers", zap.Error(err))
		}
	}

	if err := s.bookingRepo.Save(ctx); err != nil {
		s.logger.Error("Failed to persist bookings", zap.Error(err))
	}

	s.logger.Info("Booking status updated",
		zap.String("booking_id", bookingID),
		zap.String("from", string(booking.Status)),
		zap.String("to", string(status)),
	)
	return nil
}

// IsSlotAvailable свободен ли час на дату
func (s *BookingService) IsSlotAvailable(date string, hour int) bool {
	return !s.bookingRepo.HourTaken(date, hour)
}

// SlotGrid возвращает сетку доступности на дату. Прошедшие часы
// сегодняшнего дня помечаются занятыми.
func (s *BookingService) SlotGrid(date string) []SlotState {
	now := time.Now()
	isToday := date == now.Format(dateLayout)
	currentHour := now.Hour()

	grid := make([]SlotState, 0, model.StudioCloseHour-model.StudioOpenHour)
	for h := model.StudioOpenHour; h < model.StudioCloseHour; h++ {
		past := isToday && h <= currentHour
		grid = append(grid, SlotState{
			Hour:      h,
			Available: !past && !s.bookingRepo.HourTaken(date, h),
			Past:      past,
		})
	}
	return grid
}

// ListAll возвращает все бронирования, новые первыми
func (s *BookingService) ListAll() []*model.Booking {
	return s.bookingRepo.All()
}

// ListForTeacher возвращает бронирования учителя
func (s *BookingService) ListForTeacher(teacherID string) []*model.Booking {
	return s.bookingRepo.ForTeacher(teacherID)
}

// OnDate возвращает неотменённые бронирования на дату
func (s *BookingService) OnDate(date string) []*model.Booking {
	return s.bookingRepo.OnDate(date)
}
