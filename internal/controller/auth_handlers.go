package controller

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/dreamedu/studio-portal/internal/model"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

type loginResponse struct {
	Token   string         `json:"token"`
	Session *model.Session `json:"session"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	teacher, err := s.teacherService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, newTeacherView(teacher))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sess, err := s.authService.Authenticate(r.Context(), req.Email, req.Password, req.Remember)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	ttl := s.sessionTTL
	if req.Remember {
		// Запомненная сессия живёт в разы дольше
		ttl = s.sessionTTL * 30
	}

	token, err := s.tokens.Create(sess, ttl)
	if err != nil {
		s.logger.Error("Failed to create token", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, Session: sess})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.authService.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r.Context())
	writeJSON(w, http.StatusOK, model.Session{
		Role:  p.role,
		ID:    p.id,
		Email: p.email,
		Name:  p.name,
	})
}
