package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dreamedu/studio-portal/internal/auth"
	"github.com/dreamedu/studio-portal/internal/model"
	"github.com/dreamedu/studio-portal/internal/repository"
)

type TeacherService struct {
	teacherRepo *repository.TeacherRepository
	logger      *zap.Logger
}

func NewTeacherService(teacherRepo *repository.TeacherRepository, logger *zap.Logger) *TeacherService {
	return &TeacherService{
		teacherRepo: teacherRepo,
		logger:      logger,
	}
}

// Register регистрирует нового учителя. Email должен быть уникален
// (точное совпадение с учётом регистра). Новый аккаунт стартует без часов
// и ждёт одобрения администратора.
func (s *TeacherService) Register(ctx context.Context, name, email, password string) (*model.Teacher, error) {
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrInvalidInput)
	}

	if existing := s.teacherRepo.GetByEmail(email); existing != nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	teacher := &model.Teacher{
		ID:           "t-" + uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Credits:      0,
		IsApproved:   false,
		CreatedAt:    time.Now(),
	}

	s.teacherRepo.Add(teacher)
	if err := s.teacherRepo.Save(ctx); err != nil {
		s.logger.Error("Failed to persist teachers", zap.Error(err))
	}

	s.logger.Info("Teacher registered",
		zap.String("teacher_id", teacher.ID),
		zap.String("email", email),
	)

	return teacher, nil
}

// Approve одобряет аккаунт учителя, повторный вызов безвреден
func (s *TeacherService) Approve(ctx context.Context, teacherID string) error {
	teacher := s.teacherRepo.GetByID(teacherID)
	if teacher == nil {
		return fmt.Errorf("%w: teacher %s", ErrNotFound, teacherID)
	}

	if teacher.IsApproved {
		return nil
	}

	s.teacherRepo.SetApproved(teacherID)
	if err := s.teacherRepo.Save(ctx); err != nil {
		s.logger.Error("Failed to persist teachers", zap.Error(err))
	}

	s.logger.Info("Teacher approved", zap.String("teacher_id", teacherID))
	return nil
}

// GetByID возвращает учителя по ID
func (s *TeacherService) GetByID(teacherID string) (*model.Teacher, error) {
	teacher := s.teacherRepo.GetByID(teacherID)
	if teacher == nil {
		return nil, fmt.Errorf("%w: teacher %s", ErrNotFound, teacherID)
	}
	return teacher, nil
}

// List возвращает всех учителей
func (s *TeacherService) List() []*model.Teacher {
	return s.teacherRepo.All()
}
