package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dreamedu/studio-portal/internal/notify"
	"github.com/dreamedu/studio-portal/internal/service"
)

// Digest управляет фоновой задачей, которая раз в сутки шлёт администратору
// сводку бронирований на сегодня
type Digest struct {
	bookingService *service.BookingService
	notifier       *notify.Notifier
	logger         *zap.Logger
	stopChan       chan struct{}
}

// NewDigest создаёт задачу дневной сводки
func NewDigest(bookingService *service.BookingService, notifier *notify.Notifier, logger *zap.Logger) *Digest {
	return &Digest{
		bookingService: bookingService,
		notifier:       notifier,
		logger:         logger,
		stopChan:       make(chan struct{}),
	}
}

// Start запускает фоновую задачу
func (d *Digest) Start(ctx context.Context) {
	d.logger.Info("Starting daily booking digest")
	go d.run(ctx)
}

// Stop останавливает фоновую задачу
func (d *Digest) Stop() {
	d.logger.Info("Stopping daily booking digest")
	close(d.stopChan)
}

func (d *Digest) run(ctx context.Context) {
	// Первая сводка сразу при старте
	d.send(ctx)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			d.send(ctx)
		case <-d.stopChan:
			d.logger.Info("Daily digest task stopped")
			return
		case <-ctx.Done():
			d.logger.Info("Daily digest task cancelled")
			return
		}
	}
}

func (d *Digest) send(ctx context.Context) {
	today := time.Now().Format("2006-01-02")
	bookings := d.bookingService.OnDate(today)
	if len(bookings) == 0 {
		d.logger.Info("No bookings today, digest skipped", zap.String("date", today))
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Studio schedule for %s:\n", today)
	for _, b := range bookings {
		fmt.Fprintf(&sb, "\n%d:00 (%dh) — %s [%s]", b.StartTime, b.Duration, b.TeacherName, b.Status)
	}

	d.notifier.SendText(ctx, sb.String())
	d.logger.Info("Daily digest sent",
		zap.String("date", today),
		zap.Int("bookings", len(bookings)),
	)
}
