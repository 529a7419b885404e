package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dreamedu/studio-portal/internal/auth"
	"github.com/dreamedu/studio-portal/internal/model"
	"github.com/dreamedu/studio-portal/internal/store"
)

// Демо-учитель для чистой установки
const (
	demoTeacherEmail    = "teacher@dreamedu.com"
	demoTeacherPassword = "teacher123"
)

type TeacherRepository struct {
	store  store.SnapshotStore
	logger *zap.Logger

	mu       sync.RWMutex
	teachers []*model.Teacher
}

func NewTeacherRepository(st store.SnapshotStore, logger *zap.Logger) *TeacherRepository {
	return &TeacherRepository{store: st, logger: logger}
}

// Load загружает снимок коллекции. Пустую коллекцию засеваем демо-учителем,
// как делала исходная установка.
func (r *TeacherRepository) Load(ctx context.Context) (bool, error) {
	var teachers []*model.Teacher
	defaulted := r.store.Load(ctx, store.BucketTeachers, &teachers)
	if defaulted {
		// Битый снимок мог частично заполнить срез до ошибки разбора
		teachers = nil
	}

	if len(teachers) == 0 {
		hash, err := auth.HashPassword(demoTeacherPassword)
		if err != nil {
			return defaulted, fmt.Errorf("hash demo password: %w", err)
		}
		teachers = []*model.Teacher{{
			ID:           "t-demo",
			Name:         "Professional Teacher",
			Email:        demoTeacherEmail,
			PasswordHash: hash,
			Credits:      5,
			IsApproved:   true,
			CreatedAt:    time.Now(),
		}}
		r.logger.Info("Seeded demo teacher", zap.String("email", demoTeacherEmail))
	}

	r.mu.Lock()
	r.teachers = teachers
	r.mu.Unlock()
	return defaulted, nil
}

// Save перезаписывает бакет текущим снимком коллекции. Снимок копируется
// под блокировкой: элементы мутируются по месту, сериализация не должна
// читать их без неё.
func (r *TeacherRepository) Save(ctx context.Context) error {
	return r.store.Save(ctx, store.BucketTeachers, r.All())
}

// All возвращает копии всех учителей
func (r *TeacherRepository) All() []*model.Teacher {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.Teacher, 0, len(r.teachers))
	for _, t := range r.teachers {
		copied := *t
		out = append(out, &copied)
	}
	return out
}

// GetByID возвращает копию учителя по ID
func (r *TeacherRepository) GetByID(id string) *model.Teacher {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.teachers {
		if t.ID == id {
			copied := *t
			return &copied
		}
	}
	return nil
}

// GetByEmail ищет учителя по точному совпадению email (с учётом регистра)
func (r *TeacherRepository) GetByEmail(email string) *model.Teacher {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.teachers {
		if t.Email == email {
			copied := *t
			return &copied
		}
	}
	return nil
}

// Add добавляет нового учителя
func (r *TeacherRepository) Add(t *model.Teacher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *t
	r.teachers = append(r.teachers, &copied)
}

// SetApproved выставляет флаг одобрения
func (r *TeacherRepository) SetApproved(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.teachers {
		if t.ID == id {
			t.IsApproved = true
			return true
		}
	}
	return false
}

// AdjustCredits изменяет баланс часов на delta (может быть отрицательной)
func (r *TeacherRepository) AdjustCredits(id string, delta float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.teachers {
		if t.ID == id {
			t.Credits += delta
			return true
		}
	}
	return false
}
