package app

import (
	"context"
	"fmt"

	"github.com/xinmi/exammaster/internal/code"
	"github.com/xinmi/exammaster/internal/models"
	"github.com/xinmi/exammaster/internal/store"
)

type Service struct {
	Config    *Config
	Store     store.UserStore
	Auth      *Auth
	Validator *code.Validator
}

func NewService(configPath string) (*Service, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	userStore, err := NewStore(config.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to init store: %w", err)
	}

	auth, err := NewAuth(config, userStore)
	if err != nil {
		return nil, fmt.Errorf("failed to init auth: %w", err)
	}

	return &Service{
		Config:    config,
		Store:     userStore,
		Auth:      auth,
		Validator: code.NewValidator(config.Codes.Salt),
	}, nil
}

// ResolveCode maps a validated code to its user and issues a fresh
// token, replacing any previous one. Re-validating a code therefore
// cuts off the earlier session: one active session per code.
func (s *Service) ResolveCode(ctx context.Context, validCode string) (*models.User, error) {
	user, err := s.Store.GetOrCreateUserByCode(validCode, s.Config.Codes.DefaultName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user for code: %w", err)
	}

	token, err := NewToken()
	if err != nil {
		return nil, err
	}

	if user.Token != nil {
		s.Auth.InvalidateToken(ctx, *user.Token)
	}

	if err := s.Store.UpdateUserToken(user.ID, token); err != nil {
		return nil, err
	}
	s.Auth.CacheToken(ctx, token, user.ID)

	user.Token = &token
	return user, nil
}

func (s *Service) Close() error {
	var errs []error

	if err := s.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("store: %w", err))
	}
	if err := s.Auth.Close(); err != nil {
		errs = append(errs, fmt.Errorf("auth: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors while closing: %v", errs)
	}
	return nil
}
