package repository

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/dreamedu/studio-portal/internal/model"
	"github.com/dreamedu/studio-portal/internal/store"
)

type TransactionRepository struct {
	store  store.SnapshotStore
	logger *zap.Logger

	mu           sync.RWMutex
	transactions []*model.Transaction
}

func NewTransactionRepository(st store.SnapshotStore, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{store: st, logger: logger}
}

func (r *TransactionRepository) Load(ctx context.Context) bool {
	var transactions []*model.Transaction
	defaulted := r.store.Load(ctx, store.BucketTransactions, &transactions)
	if defaulted {
		transactions = nil
	}

	r.mu.Lock()
	r.transactions = transactions
	r.mu.Unlock()
	return defaulted
}

// Save сериализует копию коллекции, снятую под блокировкой
func (r *TransactionRepository) Save(ctx context.Context) error {
	return r.store.Save(ctx, store.BucketTransactions, r.All())
}

func (r *TransactionRepository) All() []*model.Transaction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.Transaction, 0, len(r.transactions))
	for _, tx := range r.transactions {
		copied := *tx
		out = append(out, &copied)
	}
	return out
}

func (r *TransactionRepository) GetByID(id string) *model.Transaction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, tx := range r.transactions {
		if tx.ID == id {
			copied := *tx
			return &copied
		}
	}
	return nil
}

// Verified возвращает подтверждённые транзакции, новые первыми
func (r *TransactionRepository) Verified() []*model.Transaction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*model.Transaction
	for _, tx := range r.transactions {
		if tx.Verified {
			copied := *tx
			out = append(out, &copied)
		}
	}
	return out
}

// Add добавляет транзакцию в начало списка
func (r *TransactionRepository) Add(tx *model.Transaction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *tx
	r.transactions = append([]*model.Transaction{&copied}, r.transactions...)
}

// MarkVerified выставляет verified=true, возвращает false если транзакция
// не найдена или уже подтверждена
func (r *TransactionRepository) MarkVerified(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, tx := range r.transactions {
		if tx.ID == id {
			if tx.Verified {
				return false
			}
			tx.Verified = true
			return true
		}
	}
	return false
}
