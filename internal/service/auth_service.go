package service

import (
	"context"
	"crypto/subtle"
	"log/slog"

	"saferoute/internal/config"
	"saferoute/internal/domain"
	"saferoute/pkg/e"
	"saferoute/pkg/validator"
)

// AuthService checks the single configured authority account and hands out
// its static token.
type AuthService struct {
	cfg    config.AuthConfig
	logger *slog.Logger
}

func NewAuthService(cfg config.AuthConfig, logger *slog.Logger) *AuthService {
	return &AuthService{cfg: cfg, logger: logger}
}

func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return domain.LoginResponse{}, e.Wrap(validator.Describe(err), e.ErrInvalidInput)
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.cfg.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.cfg.Password)) == 1
	if !userOK || !passOK {
		s.logger.Warn("login rejected", slog.String("username", req.Username))
		return domain.LoginResponse{}, e.ErrUnauthorized
	}

	s.logger.Info("login accepted", slog.String("username", req.Username))
	return domain.LoginResponse{Token: s.cfg.Token, Role: domain.RoleAuthority}, nil
}
