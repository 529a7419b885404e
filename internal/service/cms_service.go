package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dreamedu/studio-portal/internal/model"
	"github.com/dreamedu/studio-portal/internal/repository"
)

type CMSService struct {
	cmsRepo *repository.CMSRepository
	logger  *zap.Logger
}

func NewCMSService(cmsRepo *repository.CMSRepository, logger *zap.Logger) *CMSService {
	return &CMSService{cmsRepo: cmsRepo, logger: logger}
}

// Get возвращает текущую конфигурацию лендинга
func (s *CMSService) Get() model.CMSConfig {
	return s.cmsRepo.Get()
}

// Update заменяет конфигурацию лендинга целиком
func (s *CMSService) Update(ctx context.Context, cms model.CMSConfig) error {
	if cms.Pricing.OneHour < 0 || cms.Pricing.TwoHours < 0 || cms.Pricing.ThreePlusHours < 0 {
		return fmt.Errorf("%w: pricing must be non-negative", ErrInvalidInput)
	}

	if err := s.cmsRepo.Replace(ctx, cms); err != nil {
		s.logger.Error("Failed to persist CMS config", zap.Error(err))
		return err
	}

	s.logger.Info("CMS config updated")
	return nil
}

// Theme возвращает сохранённую тему оформления
func (s *CMSService) Theme() model.Theme {
	return s.cmsRepo.Theme()
}

// SetTheme сохраняет тему оформления
func (s *CMSService) SetTheme(ctx context.Context, theme model.Theme) error {
	if theme != model.ThemeDark && theme != model.ThemeLight {
		return fmt.Errorf("%w: theme must be dark or light", ErrInvalidInput)
	}

	if err := s.cmsRepo.SetTheme(ctx, theme); err != nil {
		s.logger.Error("Failed to persist theme", zap.Error(err))
		return err
	}
	return nil
}
