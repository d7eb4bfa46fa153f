package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/mechanicassist/internal/client/models"
	"github.com/dmitrijs2005/mechanicassist/internal/client/session"
)

// AuthService covers account operations.
//
// Register and Login persist the returned tokens and user in the session.
// UpdateProfile re-persists the user. Logout only clears local credentials.
type AuthService interface {
	Register(ctx context.Context, in models.RegisterInput) (*models.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.User, error)
	Logout(ctx context.Context) error
	StoredUser(ctx context.Context) (*models.User, error)
}

type authService struct {
	api     Requester
	session *session.Session
}

func NewAuthService(api Requester, sess *session.Session) AuthService {
	return &authService{api: api, session: sess}
}

func (a *authService) persist(ctx context.Context, resp *models.AuthResponse) error {
	if resp.Tokens == nil {
		return nil
	}
	if err := a.session.Save(ctx, *resp.Tokens, resp.User); err != nil {
		return fmt.Errorf("store credentials: %w", err)
	}
	return nil
}

func (a *authService) Register(ctx context.Context, in models.RegisterInput) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := a.api.JSON(ctx, http.MethodPost, "/auth/register/", nil, in, &resp); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if err := a.persist(ctx, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *authService) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	in := models.LoginInput{Email: email, Password: password}
	if err := a.api.JSON(ctx, http.MethodPost, "/auth/login/", nil, in, &resp); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if err := a.persist(ctx, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := a.api.JSON(ctx, http.MethodGet, "/auth/me/", nil, nil, &u); err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	return &u, nil
}

func (a *authService) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.User, error) {
	var u models.User
	if err := a.api.JSON(ctx, http.MethodPut, "/auth/profile/update/", nil, upd, &u); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if err := a.session.SetUser(ctx, &u); err != nil {
		return nil, fmt.Errorf("store user: %w", err)
	}
	return &u, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Clear(ctx)
}

// StoredUser returns the cached user without a network call, nil if none.
func (a *authService) StoredUser(ctx context.Context) (*models.User, error) {
	return a.session.User(ctx)
}
