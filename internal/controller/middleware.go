package controller

import (
	"context"
	"net/http"
	"strings"

	"github.com/dreamedu/studio-portal/internal/model"
)

// principal закрытый вариант {Anonymous, Teacher(id), Admin}, протянутый
// через контекст запроса. Отсутствие principal в контексте — аноним.
type principal struct {
	role  model.Role
	id    string
	email string
	name  string
}

type ctxKey int

const principalKey ctxKey = iota

func principalFrom(ctx context.Context) (principal, bool) {
	p, ok := ctx.Value(principalKey).(principal)
	return p, ok
}

// authMiddleware проверяет Bearer-токен и кладёт principal в контекст
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims, err := s.tokens.Parse(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		p := principal{
			role:  claims.Role,
			id:    claims.Sub,
			email: claims.Email,
			name:  claims.Name,
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), principalKey, p)))
	})
}

func (s *Server) requireTeacher(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := principalFrom(r.Context())
		if !ok || p.role != model.RoleTeacher {
			writeError(w, http.StatusForbidden, "teacher access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := principalFrom(r.Context())
		if !ok || p.role != model.RoleAdmin {
			writeError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
