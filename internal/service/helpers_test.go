package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dreamedu/studio-portal/internal/auth"
	"github.com/dreamedu/studio-portal/internal/repository"
	"github.com/dreamedu/studio-portal/internal/store"
)

const (
	testAdminEmail    = "admin@dreamedu.com"
	testAdminPassword = "admin123"
)

// testLedger собирает весь леджер поверх хранилища в памяти
type testLedger struct {
	store *store.MemStore
	gate  *auth.Gate

	teacherRepo *repository.TeacherRepository
	bookingRepo *repository.BookingRepository
	packageRepo *repository.PackageRepository
	txRepo      *repository.TransactionRepository
	cmsRepo     *repository.CMSRepository

	teachers *TeacherService
	bookings *BookingService
	payments *PaymentService
	catalog  *CatalogService
	cms      *CMSService
	auth     *AuthService
}

func newTestLedger(t *testing.T) *testLedger {
	t.Helper()
	ctx := context.Background()
	logger := zap.NewNop()
	st := store.NewMemStore()

	l := &testLedger{
		store:       st,
		gate:        auth.NewGate(st, logger),
		teacherRepo: repository.NewTeacherRepository(st, logger),
		bookingRepo: repository.NewBookingRepository(st, logger),
		packageRepo: repository.NewPackageRepository(st, logger),
		txRepo:      repository.NewTransactionRepository(st, logger),
		cmsRepo:     repository.NewCMSRepository(st, logger),
	}

	_, err := l.teacherRepo.Load(ctx)
	require.NoError(t, err)
	l.bookingRepo.Load(ctx)
	l.packageRepo.Load(ctx)
	l.txRepo.Load(ctx)
	l.cmsRepo.Load(ctx)

	l.teachers = NewTeacherService(l.teacherRepo, logger)
	l.bookings = NewBookingService(l.teacherRepo, l.bookingRepo, l.cmsRepo, nil, logger)
	l.payments = NewPaymentService(l.teacherRepo, l.packageRepo, l.txRepo, logger)
	l.catalog = NewCatalogService(l.packageRepo, logger)
	l.cms = NewCMSService(l.cmsRepo, logger)
	l.auth = NewAuthService(l.teacherRepo, l.cmsRepo, l.gate, testAdminEmail, testAdminPassword, logger)

	return l
}

// registerApproved регистрирует и сразу одобряет учителя
func (l *testLedger) registerApproved(t *testing.T, name, email, password string) string {
	t.Helper()
	ctx := context.Background()

	teacher, err := l.teachers.Register(ctx, name, email, password)
	require.NoError(t, err)
	require.NoError(t, l.teachers.Approve(ctx, teacher.ID))
	return teacher.ID
}
