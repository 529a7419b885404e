package auth

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/dreamedu/studio-portal/internal/model"
	"github.com/dreamedu/studio-portal/internal/store"
)

// Gate держит максимум одну активную сессию на процесс. Флаг remember при входе
// выбирает место хранения: долговременный бакет (переживает рестарт) или только
// память процесса. Хранилища взаимоисключающие: установка одного очищает другое.
type Gate struct {
	store  store.SnapshotStore
	logger *zap.Logger

	mu      sync.Mutex
	current *model.Session
}

func NewGate(st store.SnapshotStore, logger *zap.Logger) *Gate {
	return &Gate{store: st, logger: logger}
}

// Restore восстанавливает долговременную сессию при старте процесса
func (g *Gate) Restore(ctx context.Context) *model.Session {
	var sess model.Session
	if defaulted := g.store.Load(ctx, store.BucketSession, &sess); defaulted || sess.ID == "" {
		return nil
	}

	g.mu.Lock()
	g.current = &sess
	g.mu.Unlock()

	g.logger.Info("Session restored",
		zap.String("role", string(sess.Role)),
		zap.String("id", sess.ID),
	)
	return &sess
}

// Login делает сессию активной. remember=true пишет её в долговременный бакет,
// remember=false оставляет только в памяти и очищает бакет.
func (g *Gate) Login(ctx context.Context, sess *model.Session, remember bool) {
	g.mu.Lock()
	g.current = sess
	g.mu.Unlock()

	if remember {
		if err := g.store.Save(ctx, store.BucketSession, sess); err != nil {
			g.logger.Error("Failed to persist session", zap.Error(err))
		}
		return
	}

	if err := g.store.Delete(ctx, store.BucketSession); err != nil {
		g.logger.Error("Failed to clear persisted session", zap.Error(err))
	}
}

// Logout очищает оба хранилища и возвращает портал в анонимное состояние
func (g *Gate) Logout(ctx context.Context) {
	g.mu.Lock()
	g.current = nil
	g.mu.Unlock()

	if err := g.store.Delete(ctx, store.BucketSession); err != nil {
		g.logger.Error("Failed to clear persisted session", zap.Error(err))
	}
}

// Current возвращает активную сессию или nil
func (g *Gate) Current() *model.Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.current == nil {
		return nil
	}
	sess := *g.current
	return &sess
}
