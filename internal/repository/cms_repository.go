package repository

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/dreamedu/studio-portal/internal/model"
	"github.com/dreamedu/studio-portal/internal/store"
)

// CMSRepository хранит синглтон конфигурации лендинга и тему оформления
type CMSRepository struct {
	store  store.SnapshotStore
	logger *zap.Logger

	mu    sync.RWMutex
	cms   model.CMSConfig
	theme model.Theme
}

func NewCMSRepository(st store.SnapshotStore, logger *zap.Logger) *CMSRepository {
	return &CMSRepository{store: st, logger: logger}
}

func (r *CMSRepository) Load(ctx context.Context) bool {
	cms := model.DefaultCMSConfig()
	defaulted := r.store.Load(ctx, store.BucketCMS, &cms)
	if defaulted {
		cms = model.DefaultCMSConfig()
	}

	theme := model.ThemeDark
	if r.store.Load(ctx, store.BucketTheme, &theme) {
		theme = model.ThemeDark
	}

	r.mu.Lock()
	r.cms = cms
	r.theme = theme
	r.mu.Unlock()
	return defaulted
}

func (r *CMSRepository) Get() model.CMSConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cms := r.cms
	cms.Features = append([]string(nil), r.cms.Features...)
	return cms
}

// Replace заменяет конфигурацию целиком и перезаписывает бакет
func (r *CMSRepository) Replace(ctx context.Context, cms model.CMSConfig) error {
	r.mu.Lock()
	r.cms = cms
	r.mu.Unlock()
	return r.store.Save(ctx, store.BucketCMS, cms)
}

func (r *CMSRepository) Theme() model.Theme {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.theme
}

func (r *CMSRepository) SetTheme(ctx context.Context, theme model.Theme) error {
	r.mu.Lock()
	r.theme = theme
	r.mu.Unlock()
	return r.store.Save(ctx, store.BucketTheme, theme)
}
