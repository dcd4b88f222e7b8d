package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/straye-as/sales-intelligence/internal/apiclient"
	"github.com/straye-as/sales-intelligence/internal/domain"
	"github.com/straye-as/sales-intelligence/internal/logger"
	"go.uber.org/zap"
)

type AuthAPI interface {
	Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error)
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error)
	CurrentUser(ctx context.Context) (*domain.User, error)
}

// Credentials is the part of the session the auth flow clears on logout
type Credentials interface {
	Get() (string, bool)
	Clear(ctx context.Context) error
}

// FormError is a login or registration failure shown verbatim next to the form
type FormError struct {
	Message string
	Err     error
}

func (e *FormError) Error() string { return e.Message }

func (e *FormError) Unwrap() error { return e.Err }

type AuthService struct {
	api     AuthAPI
	session Credentials
	logger  *zap.Logger
}

func NewAuthService(api AuthAPI, session Credentials, logger *zap.Logger) *AuthService {
	return &AuthService{
		api:     api,
		session: session,
		logger:  logger,
	}
}

// Login authenticates and persists the returned token. Rejections carry the
// server's detail message.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	req := domain.LoginRequest{Email: strings.TrimSpace(email), Password: password}
	resp, err := s.api.Login(ctx, req)
	if err != nil {
		s.logger.Warn("login failed", zap.String("email", req.Email), zap.Error(err))
		return nil, formError(err)
	}

	logger.WithUser(s.logger, resp.User.ID, resp.User.Email).Info("logged in")
	return &resp.User, nil
}

// Register creates an account and logs it in
func (s *AuthService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.FullName = strings.TrimSpace(req.FullName)
	if req.Role == "" {
		req.Role = domain.UserRoleSales
	}

	resp, err := s.api.Register(ctx, req)
	if err != nil {
		s.logger.Warn("registration failed", zap.String("email", req.Email), zap.Error(err))
		return nil, formError(err)
	}

	logger.WithUser(s.logger, resp.User.ID, resp.User.Email).Info("registered")
	return &resp.User, nil
}

// Logout forgets the held credential. There is no server-side session to end.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.session.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	s.logger.Info("logged out")
	return nil
}

// Whoami returns the user the held credential belongs to
func (s *AuthService) Whoami(ctx context.Context) (*domain.User, error) {
	if _, ok := s.session.Get(); !ok {
		return nil, ErrNotAuthenticated
	}
	user, err := s.api.CurrentUser(ctx)
	if err != nil {
		return nil, classify(err)
	}
	return user, nil
}

func formError(err error) error {
	var validationErr *apiclient.RequestValidationError
	if errors.As(err, &validationErr) {
		return &FormError{Message: validationErr.Message, Err: fmt.Errorf("%w: %w", ErrInvalidInput, err)}
	}
	return &FormError{Message: apiclient.Detail(err), Err: err}
}
