package service

import (
	"context"

	"github.com/spm-engineering/billing-service/internal/apperrors"
	"github.com/spm-engineering/billing-service/internal/auth"
	"github.com/spm-engineering/billing-service/internal/logging"
)

const ownerSubject = "owner"

// AuthService verifies the shop PIN and issues session tokens.
type AuthService struct {
	pinHash string
	tokens  *auth.TokenIssuer
	logger  *logging.Logger
}

func NewAuthService(pinHash string, tokens *auth.TokenIssuer) *AuthService {
	return &AuthService{
		pinHash: pinHash,
		tokens:  tokens,
		logger:  logging.NewLogger("auth-service"),
	}
}

func (s *AuthService) VerifyPIN(ctx context.Context, pin string) (*auth.Session, error) {
	log := s.logger.WithContext(ctx)

	if s.pinHash == "" {
		log.Error("PIN login attempted but no PIN hash is configured")
		return nil, apperrors.ErrPinNotConfigured
	}
	if !auth.CheckPIN(s.pinHash, pin) {
		log.Warn("Invalid PIN attempt")
		return nil, apperrors.ErrInvalidPIN
	}

	session, err := s.tokens.Issue(ownerSubject)
	if err != nil {
		return nil, err
	}
	log.Info("PIN verified")
	return session, nil
}
