package services

import (
	"context"
	"fmt"

	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
)

// AuthService logs the planner's owner in with the password whose bcrypt
// hash is configured at startup.
type AuthService struct {
	passwordHash string
	tokens       *TokenService
}

func NewAuthService(passwordHash string, tokens *TokenService) *AuthService {
	return &AuthService{
		passwordHash: passwordHash,
		tokens:       tokens,
	}
}

// Enabled reports whether an owner password is configured.
func (s *AuthService) Enabled() bool {
	return s.passwordHash != ""
}

func (s *AuthService) Login(ctx context.Context, password string) (string, error) {
	if !s.Enabled() {
		return "", domain.ErrAuthDisabled
	}

	if err := domain.CheckPassword(s.passwordHash, password); err != nil {
		return "", err
	}

	token, err := s.tokens.GenerateToken(domain.OwnerSubject)
	if err != nil {
		return "", fmt.Errorf("auth service: login: %w", err)
	}
	return token, nil
}
