package service

import (
	"context"
	"fmt"

	"devchatClient/internal/models"
	"devchatClient/internal/session"
)

type AuthService interface {
	Login(ctx context.Context, namespace string, req models.LoginRequest) (session.State, error)
	Register(ctx context.Context, namespace string, req models.RegisterRequest) (session.State, error)
	Logout(ctx context.Context, namespace string) error
}

type authService struct {
	gateway Gateway
	store   *session.Store
}

func NewAuthService(gateway Gateway, store *session.Store) AuthService {
	return &authService{
		gateway: gateway,
		store:   store,
	}
}

func (s *authService) Login(ctx context.Context, namespace string, req models.LoginRequest) (session.State, error) {
	resp, err := s.gateway.Login(ctx, req)
	if err != nil {
		return session.State{Namespace: namespace, Hydrated: true}, fmt.Errorf("login: %w", err)
	}

	return s.activate(ctx, namespace, resp)
}

// Register creates the account and signs it in right away; DEV accounts are
// signed in unverified.
func (s *authService) Register(ctx context.Context, namespace string, req models.RegisterRequest) (session.State, error) {
	resp, err := s.gateway.Register(ctx, req)
	if err != nil {
		return session.State{Namespace: namespace, Hydrated: true}, fmt.Errorf("register: %w", err)
	}

	return s.activate(ctx, namespace, resp)
}

func (s *authService) Logout(ctx context.Context, namespace string) error {
	return s.store.Logout(ctx, namespace)
}

func (s *authService) activate(ctx context.Context, namespace string, resp models.AuthResponse) (session.State, error) {
	state, err := s.store.Login(ctx, namespace, models.NewSession(resp))
	if err != nil {
		return state, fmt.Errorf("activate session: %w", err)
	}
	return state, nil
}
