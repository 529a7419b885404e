package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamedu/studio-portal/internal/model"
)

// Сценарий: покупка плана на 5 часов за 4500, подтверждение зачисляет часы
// ровно один раз
func TestPurchaseAndVerify(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	id := l.registerApproved(t, "A", "a@x.com", "pw")

	pkg, err := l.catalog.Upsert(ctx, &model.StudioPackage{
		Name:  "Test Plan",
		Hours: 5,
		Price: 4500,
	})
	require.NoError(t, err)

	tx, err := l.payments.Purchase(ctx, id, pkg.ID, model.PaymentMethodOnline, "slip-data")
	require.NoError(t, err)

	assert.False(t, tx.Verified)
	assert.Equal(t, 4500.0, tx.Amount)
	assert.Equal(t, model.TransactionTypePackage, tx.Type)
	assert.Equal(t, "Test Plan", tx.PackageName)
	assert.Zero(t, l.credits(t, id))

	require.NoError(t, l.payments.Verify(ctx, tx.ID))
	assert.Equal(t, 5.0, l.credits(t, id))

	// Повторное подтверждение ничего не меняет
	require.NoError(t, l.payments.Verify(ctx, tx.ID))
	assert.Equal(t, 5.0, l.credits(t, id))

	got := l.txRepo.GetByID(tx.ID)
	require.NotNil(t, got)
	assert.True(t, got.Verified)
}

func TestVerifyAfterPackageDeleted(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	id := l.registerApproved(t, "A", "a@x.com", "pw")

	tx, err := l.payments.Purchase(ctx, id, "pkg-pro", model.PaymentMethodOnSite, "")
	require.NoError(t, err)

	require.NoError(t, l.catalog.Delete(ctx, "pkg-pro"))

	// Транзакция подтверждается, но зачислять уже нечего
	require.NoError(t, l.payments.Verify(ctx, tx.ID))
	assert.Zero(t, l.credits(t, id))

	got := l.txRepo.GetByID(tx.ID)
	require.NotNil(t, got)
	assert.True(t, got.Verified)
}

func TestVerifyUnknownTransaction(t *testing.T) {
	l := newTestLedger(t)

	err := l.payments.Verify(context.Background(), "tx-missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManualTopUp(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	id := l.registerApproved(t, "A", "a@x.com", "pw")

	tx, err := l.payments.ManualTopUp(ctx, id, 1000, 5)
	require.NoError(t, err)

	assert.True(t, tx.Verified)
	assert.Equal(t, model.TransactionTypeTopUp, tx.Type)
	assert.Equal(t, model.PaymentMethodManual, tx.Method)
	assert.Equal(t, 5.0, l.credits(t, id))

	_, err = l.payments.ManualTopUp(ctx, id, 1000, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = l.payments.ManualTopUp(ctx, "t-missing", 1000, 5)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRevenueCountsOnlyVerified(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	id := l.registerApproved(t, "A", "a@x.com", "pw")

	_, err := l.payments.Purchase(ctx, id, "pkg-pro", model.PaymentMethodOnline, "")
	require.NoError(t, err)
	assert.Zero(t, l.payments.RevenueTotal())

	_, err = l.payments.ManualTopUp(ctx, id, 2000, 2)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, l.payments.RevenueTotal())
}

// Изменение цены плана не переписывает сумму в уже созданной транзакции
func TestPriceEditDoesNotRewriteHistory(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	id := l.registerApproved(t, "A", "a@x.com", "pw")

	tx, err := l.payments.Purchase(ctx, id, "pkg-pro", model.PaymentMethodOnline, "")
	require.NoError(t, err)
	require.Equal(t, 4500.0, tx.Amount)

	pkg, err := l.catalog.GetByID("pkg-pro")
	require.NoError(t, err)
	pkg.Price = 9999
	_, err = l.catalog.Upsert(ctx, pkg)
	require.NoError(t, err)

	got := l.txRepo.GetByID(tx.ID)
	require.NotNil(t, got)
	assert.Equal(t, 4500.0, got.Amount)
}

func TestExportVerifiedCSV(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	id := l.registerApproved(t, "Anna Perera", "a@x.com", "pw")

	tx, err := l.payments.Purchase(ctx, id, "pkg-pro", model.PaymentMethodOnline, "")
	require.NoError(t, err)
	require.NoError(t, l.payments.Verify(ctx, tx.ID))

	_, err = l.payments.ManualTopUp(ctx, id, 2000, 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, l.payments.ExportVerifiedCSV(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3) // заголовок + две подтверждённые транзакции
	assert.Equal(t, "Date,Teacher,Plan,Yield (LKR)", lines[0])
	assert.Contains(t, buf.String(), "Anna Perera")
	assert.Contains(t, buf.String(), "Professional Plan")
	assert.Contains(t, buf.String(), "Manual Top-up")
}
