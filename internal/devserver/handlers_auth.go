package devserver

import (
	"errors"
	"net/http"

	"github.com/straye-as/sales-intelligence/internal/domain"
	"go.uber.org/zap"
)

const (
	roleAdmin     = domain.UserRoleAdmin
	roleSales     = domain.UserRoleSales
	roleMarketing = domain.UserRoleMarketing
)

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, ok := s.store.checkPassword(req.Email, req.Password)
	if !ok {
		w.Header().Set("WWW-Authenticate", "Bearer")
		respondDetail(w, http.StatusUnauthorized, "Incorrect email or password")
		return
	}
	if !user.IsActive {
		respondDetail(w, http.StatusForbidden, "User account is disabled")
		return
	}
	s.respondToken(w, http.StatusOK, user)
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := s.store.addUser(req)
	if errors.Is(err, errEmailTaken) {
		respondDetail(w, http.StatusBadRequest, "Email already registered")
		return
	}
	if err != nil {
		s.logger.Error("failed to register user", zap.Error(err))
		respondDetail(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	s.logger.Info("user registered", zap.Int64("user_id", user.ID), zap.String("role", string(user.Role)))
	s.respondToken(w, http.StatusCreated, user)
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, currentUser(r))
}

func (s *Server) respondToken(w http.ResponseWriter, status int, user domain.User) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.Error("failed to issue token", zap.Error(err))
		respondDetail(w, http.StatusInternalServerError, "Could not issue token")
		return
	}
	respondJSON(w, status, domain.AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	})
}
