package repository

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/dreamedu/studio-portal/internal/model"
	"github.com/dreamedu/studio-portal/internal/store"
)

type PackageRepository struct {
	store  store.SnapshotStore
	logger *zap.Logger

	mu       sync.RWMutex
	packages []*model.StudioPackage
}

func NewPackageRepository(st store.SnapshotStore, logger *zap.Logger) *PackageRepository {
	return &PackageRepository{store: st, logger: logger}
}

// Load загружает каталог, чистая установка получает стартовые планы
func (r *PackageRepository) Load(ctx context.Context) bool {
	packages := model.DefaultPackages()
	defaulted := r.store.Load(ctx, store.BucketPackages, &packages)
	if defaulted {
		packages = model.DefaultPackages()
		r.logger.Info("Seeded default package catalog", zap.Int("count", len(packages)))
	}

	r.mu.Lock()
	r.packages = packages
	r.mu.Unlock()
	return defaulted
}

// Save сериализует копию каталога, снятую под блокировкой
func (r *PackageRepository) Save(ctx context.Context) error {
	return r.store.Save(ctx, store.BucketPackages, r.All())
}

func (r *PackageRepository) All() []*model.StudioPackage {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.StudioPackage, 0, len(r.packages))
	for _, p := range r.packages {
		copied := *p
		out = append(out, &copied)
	}
	return out
}

func (r *PackageRepository) GetByID(id string) *model.StudioPackage {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.packages {
		if p.ID == id {
			copied := *p
			return &copied
		}
	}
	return nil
}

// Upsert обновляет план по ID или добавляет новый
func (r *PackageRepository) Upsert(pkg *model.StudioPackage) {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *pkg
	for i, p := range r.packages {
		if p.ID == pkg.ID {
			r.packages[i] = &copied
			return
		}
	}
	r.packages = append(r.packages, &copied)
}

// Delete удаляет план из каталога
func (r *PackageRepository) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.packages {
		if p.ID == id {
			r.packages = append(r.packages[:i], r.packages[i+1:]...)
			return true
		}
	}
	return false
}
