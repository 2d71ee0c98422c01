package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// RoleOrganizer is the only role allowed to change tournaments.
const RoleOrganizer = "organizer"

type LoginInput struct {
	Password string `json:"password"`
}

type AuthService interface {
	Login(ctx context.Context, input LoginInput) error
}

type authService struct {
	passwordHash []byte
	logger       *slog.Logger
}

// NewAuthService checks organizer logins against a bcrypt hash.
func NewAuthService(passwordHash string, logger *slog.Logger) AuthService {
	return &authService{passwordHash: []byte(passwordHash), logger: logger}
}

func (s *authService) Login(_ context.Context, input LoginInput) error {
	if input.Password == "" {
		return fmt.Errorf("%w: password is required", ErrValidationFailed)
	}
	err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(input.Password))
	if err == nil {
		return nil
	}
	if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		s.logger.Error("organizer password hash is unusable", "error", err)
	}
	return ErrAuthenticationFailed
}
