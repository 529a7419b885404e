package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/dreamedu/studio-portal/internal/auth"
	"github.com/dreamedu/studio-portal/internal/model"
	"github.com/dreamedu/studio-portal/internal/repository"
)

// AdminID фиксированный идентификатор единственного администратора студии
const AdminID = "admin"

type AuthService struct {
	teacherRepo *repository.TeacherRepository
	cmsRepo     *repository.CMSRepository
	gate        *auth.Gate
	logger      *zap.Logger

	adminEmail    string
	adminPassword string
}

func NewAuthService(
	teacherRepo *repository.TeacherRepository,
	cmsRepo *repository.CMSRepository,
	gate *auth.Gate,
	adminEmail, adminPassword string,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		teacherRepo:   teacherRepo,
		cmsRepo:       cmsRepo,
		gate:          gate,
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
		logger:        logger,
	}
}

// Authenticate сопоставляет попытку входа с ролью. Единственная админская
// учётка сверяется первой, иначе ищем учителя по email и паролю и требуем
// одобренный аккаунт. Флаг remember выбирает долговременное или
// эфемерное хранение сессии.
func (s *AuthService) Authenticate(ctx context.Context, email, password string, remember bool) (*model.Session, error) {
	if email == s.adminEmail && password == s.adminPassword {
		sess := &model.Session{
			Role:  model.RoleAdmin,
			ID:    AdminID,
			Email: email,
			Name:  s.cmsRepo.Get().DirectorName,
		}
		s.gate.Login(ctx, sess, remember)
		s.logger.Info("Admin logged in", zap.Bool("remember", remember))
		return sess, nil
	}

	teacher := s.teacherRepo.GetByEmail(email)
	if teacher == nil {
		return nil, ErrInvalidCredentials
	}
	if err := auth.CheckPassword(teacher.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !teacher.IsApproved {
		return nil, ErrPendingApproval
	}

	sess := &model.Session{
		Role:  model.RoleTeacher,
		ID:    teacher.ID,
		Email: teacher.Email,
		Name:  teacher.Name,
	}
	s.gate.Login(ctx, sess, remember)

	s.logger.Info("Teacher logged in",
		zap.String("teacher_id", teacher.ID),
		zap.Bool("remember", remember),
	)
	return sess, nil
}

// Logout очищает активную сессию в обоих хранилищах
func (s *AuthService) Logout(ctx context.Context) {
	s.gate.Logout(ctx)
	s.logger.Info("Session cleared")
}

// Current возвращает активную сессию или nil
func (s *AuthService) Current() *model.Session {
	return s.gate.Current()
}
