package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/dreamedu/studio-portal/internal/model"
	"github.com/dreamedu/studio-portal/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// writeServiceError переводит ошибки леджера в HTTP-статусы
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrDuplicateEmail):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrPendingApproval):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInsufficientCredits),
		errors.Is(err, service.ErrSlotTaken),
		errors.Is(err, service.ErrInvalidTransition):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		s.logger.Error("Unhandled service error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// teacherView представление учителя без хэша пароля
type teacherView struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Credits    float64   `json:"credits"`
	IsApproved bool      `json:"isApproved"`
	CreatedAt  time.Time `json:"createdAt"`
}

func newTeacherView(t *model.Teacher) teacherView {
	return teacherView{
		ID:         t.ID,
		Name:       t.Name,
		Email:      t.Email,
		Credits:    t.Credits,
		IsApproved: t.IsApproved,
		CreatedAt:  t.CreatedAt,
	}
}

func newTeacherViews(teachers []*model.Teacher) []teacherView {
	out := make([]teacherView, 0, len(teachers))
	for _, t := range teachers {
		out = append(out, newTeacherView(t))
	}
	return out
}
