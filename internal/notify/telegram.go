package notify

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-telegram/bot"
	"go.uber.org/zap"

	"github.com/dreamedu/studio-portal/internal/model"
)

// Notifier отправляет администратору студии уведомления в Telegram.
// Без токена работает вхолостую: бронирование не должно падать из-за
// недоступного мессенджера.
type Notifier struct {
	bot    *bot.Bot
	chatID int64
	logger *zap.Logger
}

func New(token string, chatID int64, logger *zap.Logger) (*Notifier, error) {
	n := &Notifier{chatID: chatID, logger: logger}
	if token == "" {
		logger.Warn("Telegram token is not set, admin notifications disabled")
		return n, nil
	}

	b, err := bot.New(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	n.bot = b
	return n, nil
}

// BookingCreated шлёт администратору заявку на бронирование
func (n *Notifier) BookingCreated(ctx context.Context, booking *model.Booking) {
	if n.bot == nil {
		return
	}

	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: n.chatID,
		Text:   BookingMessage(booking),
	})
	if err != nil {
		n.logger.Error("Failed to send booking notification",
			zap.String("booking_id", booking.ID),
			zap.Error(err),
		)
		return
	}

	n.logger.Info("Booking notification sent", zap.String("booking_id", booking.ID))
}

// SendText шлёт администратору произвольный текст (дневная сводка)
func (n *Notifier) SendText(ctx context.Context, text string) {
	if n.bot == nil {
		return
	}

	if _, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: n.chatID,
		Text:   text,
	}); err != nil {
		n.logger.Error("Failed to send telegram message", zap.Error(err))
	}
}

// BookingMessage собирает человекочитаемый текст заявки
func BookingMessage(b *model.Booking) string {
	return fmt.Sprintf(
		"*Studio Booking Request*\n\nTeacher: %s\nDate: %s\nTime: %d:00\nDuration: %d Hours\n\nStatus: Pending confirmation.",
		b.TeacherName, b.Date, b.StartTime, b.Duration,
	)
}

// WhatsAppLink строит wa.me-ссылку с предзаполненной заявкой. Номер студии
// берётся из CMS, используются последние 9 цифр с кодом страны 94.
func WhatsAppLink(contactNumber string, b *model.Booking) string {
	var digits strings.Builder
	for _, r := range contactNumber {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	num := digits.String()
	if len(num) > 9 {
		num = num[len(num)-9:]
	}

	return "https://wa.me/94" + num + "?text=" + url.QueryEscape(BookingMessage(b))
}
