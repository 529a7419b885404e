package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dreamedu/studio-portal/internal/model"
	"github.com/dreamedu/studio-portal/internal/repository"
)

// CatalogService управляет каталогом планов. Изменения цен не трогают
// исторические снимки стоимости в бронированиях и транзакциях.
type CatalogService struct {
	packageRepo *repository.PackageRepository
	logger      *zap.Logger
}

func NewCatalogService(packageRepo *repository.PackageRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{packageRepo: packageRepo, logger: logger}
}

// Upsert создаёт или обновляет план. Новому плану выдаётся ID.
func (s *CatalogService) Upsert(ctx context.Context, pkg *model.StudioPackage) (*model.StudioPackage, error) {
	if pkg.Name == "" {
		return nil, fmt.Errorf("%w: package name is required", ErrInvalidInput)
	}
	if pkg.Hours <= 0 || pkg.Price < 0 {
		return nil, fmt.Errorf("%w: hours must be positive and price non-negative", ErrInvalidInput)
	}

	if pkg.ID == "" {
		pkg.ID = "pkg-" + uuid.NewString()
	}

	s.packageRepo.Upsert(pkg)
	if err := s.packageRepo.Save(ctx); err != nil {
		s.logger.Error("Failed to persist packages", zap.Error(err))
	}

	s.logger.Info("Package upserted",
		zap.String("package_id", pkg.ID),
		zap.String("name", pkg.Name),
	)
	return pkg, nil
}

// Delete удаляет план из каталога
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if !s.packageRepo.Delete(id) {
		return fmt.Errorf("%w: package %s", ErrNotFound, id)
	}

	if err := s.packageRepo.Save(ctx); err != nil {
		s.logger.Error("Failed to persist packages", zap.Error(err))
	}

	s.logger.Info("Package deleted", zap.String("package_id", id))
	return nil
}

// List возвращает каталог планов
func (s *CatalogService) List() []*model.StudioPackage {
	return s.packageRepo.All()
}

// GetByID возвращает план по ID
func (s *CatalogService) GetByID(id string) (*model.StudioPackage, error) {
	pkg := s.packageRepo.GetByID(id)
	if pkg == nil {
		return nil, fmt.Errorf("%w: package %s", ErrNotFound, id)
	}
	return pkg, nil
}
