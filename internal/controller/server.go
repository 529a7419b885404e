package controller

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dreamedu/studio-portal/internal/auth"
	"github.com/dreamedu/studio-portal/internal/service"
)

// Server HTTP-контроллер портала: анонимный лендинг, кабинет учителя
// и админ-панель поверх сервисов леджера
type Server struct {
	authService    *service.AuthService
	teacherService *service.TeacherService
	bookingService *service.BookingService
	paymentService *service.PaymentService
	catalogService *service.CatalogService
	cmsService     *service.CMSService
	tokens         *auth.Tokens
	sessionTTL     time.Duration
	logger         *zap.Logger
}

func NewServer(
	authService *service.AuthService,
	teacherService *service.TeacherService,
	bookingService *service.BookingService,
	paymentService *service.PaymentService,
	catalogService *service.CatalogService,
	cmsService *service.CMSService,
	tokens *auth.Tokens,
	sessionTTL time.Duration,
	logger *zap.Logger,
) *Server {
	return &Server{
		authService:    authService,
		teacherService: teacherService,
		bookingService: bookingService,
		paymentService: paymentService,
		catalogService: catalogService,
		cmsService:     cmsService,
		tokens:         tokens,
		sessionTTL:     sessionTTL,
		logger:         logger,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/landing", s.handleLanding)

	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/login", s.handleLogin)
	r.With(s.authMiddleware).Post("/auth/logout", s.handleLogout)
	r.With(s.authMiddleware).Get("/auth/me", s.handleGetMe)

	r.Route("/teacher", func(r chi.Router) {
		r.Use(s.authMiddleware, s.requireTeacher)
		r.Get("/dashboard", s.handleTeacherDashboard)
		r.Get("/slots", s.handleSlotGrid)
		r.Post("/bookings", s.handleCreateBooking)
		r.Post("/purchases", s.handlePurchase)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(s.authMiddleware, s.requireAdmin)
		r.Get("/bookings", s.handleListBookings)
		r.Patch("/bookings/{bookingID}/status", s.handleUpdateBookingStatus)
		r.Get("/teachers", s.handleListTeachers)
		r.Post("/teachers/{teacherID}/approve", s.handleApproveTeacher)
		r.Post("/teachers/{teacherID}/topup", s.handleManualTopUp)
		r.Get("/transactions", s.handleListTransactions)
		r.Post("/transactions/{transactionID}/verify", s.handleVerifyTransaction)
		r.Get("/cms", s.handleGetCMS)
		r.Put("/cms", s.handleUpdateCMS)
		r.Put("/packages", s.handleUpsertPackage)
		r.Delete("/packages/{packageID}", s.handleDeletePackage)
		r.Get("/finance/summary", s.handleFinanceSummary)
		r.Get("/finance/export", s.handleFinanceExport)
	})

	r.Route("/settings/theme", func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Get("/", s.handleGetTheme)
		r.Put("/", s.handleSetTheme)
	})

	return r
}
