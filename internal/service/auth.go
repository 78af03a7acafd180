package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/flicky/club-eskimo-web/internal/dto"
	"github.com/flicky/club-eskimo-web/internal/model"
	"github.com/flicky/club-eskimo-web/internal/repository"
)

type AuthService struct {
	userRepo repository.UserRepository
	log      *slog.Logger
}

func NewAuthService(userRepo repository.UserRepository, log *slog.Logger) *AuthService {
	return &AuthService{userRepo: userRepo, log: log}
}

// LoginResult is the session to store and where to send the browser next.
type LoginResult struct {
	Session    model.Session
	RedirectTo string
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	resp, err := s.userRepo.Login(ctx, dto.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, errors.New("login response carried no access token")
	}

	sess := model.Session{Token: resp.AccessToken, Username: resp.Username, Roles: resp.Roles()}
	redirect, err := LandingPath(sess)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Session: sess, RedirectTo: redirect}, nil
}

// LandingPath picks the first screen for a session: admins win over
// customers, anything else cannot be routed.
func LandingPath(sess model.Session) (string, error) {
	switch {
	case sess.HasRole(model.RoleAdmin):
		return PathAdmin, nil
	case sess.HasRole(model.RoleCustomer):
		return PathCatalog, nil
	default:
		return "", ErrUnknownRole
	}
}

type SignupInput struct {
	Email    string
	Name     string
	Password string
	Address  string
	Phone    string
}

// Signup registers a customer account and returns the login path.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (string, error) {
	req := dto.RegisterRequest{
		Username:    strings.TrimSpace(in.Email),
		Password:    in.Password,
		Name:        strings.TrimSpace(in.Name),
		Address:     strings.TrimSpace(in.Address),
		PhoneNumber: strings.TrimSpace(in.Phone),
	}
	if req.Username == "" || req.Password == "" || req.Name == "" || req.Address == "" || req.PhoneNumber == "" {
		return "", ErrSignupFieldsRequired
	}
	if err := s.userRepo.Register(ctx, req); err != nil {
		return "", err
	}
	return PathLogin, nil
}

// Logout tells the backend when there is a token to invalidate. Failures
// are logged only; the caller clears the local session regardless.
func (s *AuthService) Logout(ctx context.Context, token string) string {
	if token != "" {
		if err := s.userRepo.Logout(ctx, token); err != nil {
			s.log.Warn("logout notification failed", "error", err)
		}
	}
	return PathLogin
}
