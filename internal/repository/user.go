package repository

import (
	"context"
	"fmt"
	"net/http"

	"github.com/flicky/club-eskimo-web/internal/apiclient"
	"github.com/flicky/club-eskimo-web/internal/dto"
	"github.com/flicky/club-eskimo-web/internal/model"
)

// UserRepository covers the account endpoints: credentials, registration
// and the customer profile.
type UserRepository interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Register(ctx context.Context, req dto.RegisterRequest) error
	Logout(ctx context.Context, token string) error
	GetProfile(ctx context.Context, token string) (*model.UserProfile, error)
}

type restUserRepo struct{ api *apiclient.Client }

func NewUserRepository(api *apiclient.Client) UserRepository {
	return &restUserRepo{api: api}
}

func (r *restUserRepo) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	var resp dto.LoginResponse
	err := r.api.Do(ctx, apiclient.Request{
		Method: http.MethodPost, Path: "/api/auth/login", Body: req,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return &resp, nil
}

func (r *restUserRepo) Register(ctx context.Context, req dto.RegisterRequest) error {
	err := r.api.Do(ctx, apiclient.Request{
		Method: http.MethodPost, Path: "/api/customer/register", Body: req,
	}, nil)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

func (r *restUserRepo) Logout(ctx context.Context, token string) error {
	err := r.api.Do(ctx, apiclient.Request{
		Method: http.MethodPost, Path: "/api/auth/logout", Auth: true, Token: token,
	}, nil)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (r *restUserRepo) GetProfile(ctx context.Context, token string) (*model.UserProfile, error) {
	var resp dto.ProfileResponse
	err := r.api.Do(ctx, apiclient.Request{
		Method: http.MethodGet, Path: "/api/customer/profile", Auth: true, Token: token,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &model.UserProfile{Name: resp.Name, Address: resp.Address}, nil
}
