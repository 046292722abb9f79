package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"

	"github.com/frahmantamala/inventory-tracker/internal"
	coreUser "github.com/frahmantamala/inventory-tracker/internal/core/user"
)

// UserRepository resolves principals. Both lookups return an error matching
// internal.ErrNotFound when the user does not exist.
type UserRepository interface {
	UserByUsername(ctx context.Context, username string) (*coreUser.User, error)
	UserByID(ctx context.Context, id string) (*coreUser.User, error)
}

type ServiceAPI interface {
	Authenticate(ctx context.Context, dto LoginDTO) (*Session, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	ResolveUser(ctx context.Context, claims *Claims) (*coreUser.User, error)
}

type Service struct {
	users          UserRepository
	tokenGenerator TokenGenerator
	logger         *slog.Logger
}

func NewService(users UserRepository, tokenGen TokenGenerator, logger *slog.Logger) *Service {
	return &Service{
		users:          users,
		tokenGenerator: tokenGen,
		logger:         logger,
	}
}

// Authenticate checks the username and credential by plain equality and
// issues an access token.
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (*Session, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.users.UserByUsername(ctx, dto.Username)
	if err != nil {
		if errors.Is(err, internal.ErrNotFound) {
			s.logger.WarnContext(ctx, "login rejected: unknown username", "username", dto.Username)
			return nil, internal.ErrInvalidCredentials
		}
		return nil, err
	}

	if subtle.ConstantTimeCompare([]byte(u.Credential), []byte(dto.Password)) != 1 {
		s.logger.WarnContext(ctx, "login rejected: credential mismatch", "user_id", u.ID)
		return nil, internal.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokenGenerator.GenerateAccessToken(u.ID, u.Username)
	if err != nil {
		return nil, internal.NewInternalError("failed to issue access token", err)
	}

	s.logger.InfoContext(ctx, "user signed in", "user_id", u.ID, "is_admin", u.IsAdmin)

	return &Session{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        u,
	}, nil
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

// ResolveUser reloads the principal named by claims so that permission or
// department changes apply to tokens already issued.
func (s *Service) ResolveUser(ctx context.Context, claims *Claims) (*coreUser.User, error) {
	u, err := s.users.UserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, internal.ErrNotFound) {
			return nil, internal.ErrInvalidToken
		}
		return nil, err
	}
	return u, nil
}
