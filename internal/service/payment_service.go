package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dreamedu/studio-portal/internal/model"
	"github.com/dreamedu/studio-portal/internal/repository"
)

type PaymentService struct {
	teacherRepo *repository.TeacherRepository
	packageRepo *repository.PackageRepository
	txRepo      *repository.TransactionRepository
	logger      *zap.Logger

	// Сериализует подтверждение оплаты и зачисление часов
	mu sync.Mutex
}

func NewPaymentService(
	teacherRepo *repository.TeacherRepository,
	packageRepo *repository.PackageRepository,
	txRepo *repository.TransactionRepository,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		teacherRepo: teacherRepo,
		packageRepo: packageRepo,
		txRepo:      txRepo,
		logger:      logger,
	}
}

// Purchase создаёт неподтверждённую транзакцию покупки плана. Часы
// зачисляются позже, когда администратор подтвердит оплату.
func (s *PaymentService) Purchase(ctx context.Context, teacherID, packageID string, method model.PaymentMethod, slipImage string) (*model.Transaction, error) {
	teacher := s.teacherRepo.GetByID(teacherID)
	if teacher == nil {
		return nil, fmt.Errorf("%w: teacher %s", ErrNotFound, teacherID)
	}
	pkg := s.packageRepo.GetByID(packageID)
	if pkg == nil {
		return nil, fmt.Errorf("%w: package %s", ErrNotFound, packageID)
	}

	tx := &model.Transaction{
		ID:          "tx-" + uuid.NewString(),
		TeacherID:   teacher.ID,
		TeacherName: teacher.Name,
		PackageID:   pkg.ID,
		PackageName: pkg.Name,
		Amount:      pkg.Price,
		Date:        time.Now(),
		Method:      method,
		SlipImage:   slipImage,
		Verified:    false,
		Type:        model.TransactionTypePackage,
	}

	s.txRepo.Add(tx)
	if err := s.txRepo.Save(ctx); err != nil {
		s.logger.Error("Failed to persist transactions", zap.Error(err))
	}

	s.logger.Info("Package purchase requested",
		zap.String("transaction_id", tx.ID),
		zap.String("teacher_id", teacher.ID),
		zap.String("package_id", pkg.ID),
		zap.Float64("amount", tx.Amount),
	)
	return tx, nil
}

// Verify подтверждает транзакцию. Переход односторонний: повторный вызов
// ничего не делает, часы плана зачисляются ровно один раз.
func (s *PaymentService) Verify(ctx context.Context, transactionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.txRepo.GetByID(transactionID)
	if tx == nil {
		return fmt.Errorf("%w: transaction %s", ErrNotFound, transactionID)
	}
	if tx.Verified {
		return nil
	}

	if !s.txRepo.MarkVerified(transactionID) {
		return nil
	}

	// Часы зачисляются только если транзакция ссылается на план
	if tx.PackageID != "" {
		if pkg := s.packageRepo.GetByID(tx.PackageID); pkg != nil {
			s.teacherRepo.AdjustCredits(tx.TeacherID, pkg.Hours)
			if err := s.teacherRepo.Save(ctx); err != nil {
				s.logger.Error("Failed to persist teachers", zap.Error(err))
			}
		}
	}

	if err := s.txRepo.Save(ctx); err != nil {
		s.logger.Error("Failed to persist transactions", zap.Error(err))
	}

	s.logger.Info("Transaction verified",
		zap.String("transaction_id", transactionID),
		zap.String("teacher_id", tx.TeacherID),
	)
	return nil
}

// ManualTopUp создаёт сразу подтверждённую транзакцию ручного пополнения
// и немедленно зачисляет часы учителю
func (s *PaymentService) ManualTopUp(ctx context.Context, teacherID string, amount, hours float64) (*model.Transaction, error) {
	if hours <= 0 {
		return nil, fmt.Errorf("%w: hours must be positive", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	teacher := s.teacherRepo.GetByID(teacherID)
	if teacher == nil {
		return nil, fmt.Errorf("%w: teacher %s", ErrNotFound, teacherID)
	}

	tx := &model.Transaction{
		ID:          "mtx-" + uuid.NewString(),
		TeacherID:   teacher.ID,
		TeacherName: teacher.Name,
		Amount:      amount,
		Date:        time.Now(),
		Method:      model.PaymentMethodManual,
		Verified:    true,
		Type:        model.TransactionTypeTopUp,
	}

	s.teacherRepo.AdjustCredits(teacher.ID, hours)
	s.txRepo.Add(tx)

	if err := s.teacherRepo.Save(ctx); err != nil {
		s.logger.Error("Failed to persist teachers", zap.Error(err))
	}
	if err := s.txRepo.Save(ctx); err != nil {
		s.logger.Error("Failed to persist transactions", zap.Error(err))
	}

	s.logger.Info("Manual top-up",
		zap.String("teacher_id", teacher.ID),
		zap.Float64("amount", amount),
		zap.Float64("hours", hours),
	)
	return tx, nil
}

// RevenueTotal суммирует подтверждённые транзакции
func (s *PaymentService) RevenueTotal() float64 {
	var total float64
	for _, tx := range s.txRepo.Verified() {
		total += tx.Amount
	}
	return total
}

// ListAll возвращает все транзакции, новые первыми
func (s *PaymentService) ListAll() []*model.Transaction {
	return s.txRepo.All()
}

// ExportVerifiedCSV пишет подтверждённые транзакции в CSV для финансового аудита
func (s *PaymentService) ExportVerifiedCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"Date", "Teacher", "Plan", "Yield (LKR)"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, tx := range s.txRepo.Verified() {
		plan := tx.PackageName
		if plan == "" {
			plan = string(tx.Type)
		}
		row := []string{
			tx.Date.Format(dateLayout),
			tx.TeacherName,
			plan,
			strconv.FormatFloat(tx.Amount, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
