package controller

import (
	"net/http"
	"time"

	"github.com/dreamedu/studio-portal/internal/model"
	"github.com/dreamedu/studio-portal/internal/notify"
)

// handleLanding отдаёт анонимные данные лендинга: CMS-контент и каталог планов
func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"cms":      s.cmsService.Get(),
		"packages": s.catalogService.List(),
	})
}

func (s *Server) handleTeacherDashboard(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r.Context())

	teacher, err := s.teacherService.GetByID(p.id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"teacher":  newTeacherView(teacher),
		"bookings": s.bookingService.ListForTeacher(p.id),
	})
}

func (s *Server) handleSlotGrid(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "date must be YYYY-MM-DD")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"date":  date,
		"slots": s.bookingService.SlotGrid(date),
	})
}

type createBookingRequest struct {
	Date      string `json:"date"`
	StartTime int    `json:"startTime"`
	Duration  int    `json:"duration"`
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r.Context())

	var req createBookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	booking, err := s.bookingService.Create(r.Context(), p.id, req.Date, req.StartTime, req.Duration)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	// Ссылка мессенджера с предзаполненной заявкой, клиент открывает её сам
	link := notify.WhatsAppLink(s.cmsService.Get().ContactNumber, booking)

	writeJSON(w, http.StatusCreated, map[string]any{
		"booking":      booking,
		"whatsappLink": link,
	})
}

type purchaseRequest struct {
	PackageID string              `json:"packageId"`
	Method    model.PaymentMethod `json:"method"`
	SlipImage string              `json:"slipImage"`
}

func (s *Server) handlePurchase(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r.Context())

	var req purchaseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Method != model.PaymentMethodOnline && req.Method != model.PaymentMethodOnSite {
		writeError(w, http.StatusUnprocessableEntity, "method must be Online or On-Site")
		return
	}

	tx, err := s.paymentService.Purchase(r.Context(), p.id, req.PackageID, req.Method, req.SlipImage)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, tx)
}

type themeRequest struct {
	Theme model.Theme `json:"theme"`
}

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]model.Theme{"theme": s.cmsService.Theme()})
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.cmsService.SetTheme(r.Context(), req.Theme); err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]model.Theme{"theme": req.Theme})
}
