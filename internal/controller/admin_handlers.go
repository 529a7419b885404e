package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dreamedu/studio-portal/internal/model"
)

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.bookingService.ListAll())
}

type updateStatusRequest struct {
	Status model.BookingStatus `json:"status"`
}

func (s *Server) handleUpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "bookingID")

	var req updateStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	switch req.Status {
	case model.BookingStatusPending, model.BookingStatusConfirmed,
		model.BookingStatusPacked, model.BookingStatusCompleted,
		model.BookingStatusCancelled:
	default:
		writeError(w, http.StatusUnprocessableEntity, "unknown booking status")
		return
	}

	if err := s.bookingService.UpdateStatus(r.Context(), bookingID, req.Status); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListTeachers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newTeacherViews(s.teacherService.List()))
}

func (s *Server) handleApproveTeacher(w http.ResponseWriter, r *http.Request) {
	teacherID := chi.URLParam(r, "teacherID")

	if err := s.teacherService.Approve(r.Context(), teacherID); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type topUpRequest struct {
	Amount float64 `json:"amount"`
	Hours  float64 `json:"hours"`
}

func (s *Server) handleManualTopUp(w http.ResponseWriter, r *http.Request) {
	teacherID := chi.URLParam(r, "teacherID")

	var req topUpRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tx, err := s.paymentService.ManualTopUp(r.Context(), teacherID, req.Amount, req.Hours)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.paymentService.ListAll())
}

func (s *Server) handleVerifyTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "transactionID")

	if err := s.paymentService.Verify(r.Context(), transactionID); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetCMS(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cmsService.Get())
}

func (s *Server) handleUpdateCMS(w http.ResponseWriter, r *http.Request) {
	var cms model.CMSConfig
	if !decodeJSON(w, r, &cms) {
		return
	}

	if err := s.cmsService.Update(r.Context(), cms); err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cms)
}

func (s *Server) handleUpsertPackage(w http.ResponseWriter, r *http.Request) {
	var pkg model.StudioPackage
	if !decodeJSON(w, r, &pkg) {
		return
	}

	saved, err := s.catalogService.Upsert(r.Context(), &pkg)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDeletePackage(w http.ResponseWriter, r *http.Request) {
	packageID := chi.URLParam(r, "packageID")

	if err := s.catalogService.Delete(r.Context(), packageID); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFinanceSummary(w http.ResponseWriter, r *http.Request) {
	var verified int
	for _, tx := range s.paymentService.ListAll() {
		if tx.Verified {
			verified++
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"totalRevenue":  s.paymentService.RevenueTotal(),
		"verifiedCount": verified,
	})
}

func (s *Server) handleFinanceExport(w http.ResponseWriter, r *http.Request) {
	filename := fmt.Sprintf("Dream_Audit_%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := s.paymentService.ExportVerifiedCSV(w); err != nil {
		s.logger.Error("Failed to export transactions", zap.Error(err))
	}
}
