package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"vidconv/internal/apperr"
	"vidconv/internal/repository"
	"vidconv/internal/token"
)

// dummyHash keeps the bcrypt cost paid even when the username does not
// exist, so login latency does not reveal which usernames are registered.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService implements the auth endpoint use cases: credential login and
// bearer token validation.
type AuthService interface {
	// Login checks the supplied credentials against the user store and
	// returns a signed token on match.
	Login(ctx context.Context, username, password string) (string, error)

	// Validate extracts the token from a "Bearer <token>" Authorization
	// header value and returns the decoded claims.
	Validate(authorization string) (*token.Claims, error)
}

type authService struct {
	users     repository.UserRepository
	authority *token.Authority
}

// NewAuthService constructs an AuthService over the user store and the
// token authority.
func NewAuthService(users repository.UserRepository, authority *token.Authority) AuthService {
	return &authService{users: users, authority: authority}
}

func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", apperr.Newf(apperr.KindMissingCredentials, "empty username or password")
	}

	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return "", apperr.Newf(apperr.KindInvalidCredentials, "unknown user %q", username)
		}
		return "", apperr.New(apperr.KindInternal, fmt.Errorf("lookup user: %w", err))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", apperr.New(apperr.KindInvalidCredentials, fmt.Errorf("password mismatch for %q", username))
	}

	signed, err := s.authority.Issue(u.Username, u.Admin)
	if err != nil {
		return "", apperr.New(apperr.KindInternal, fmt.Errorf("issue token: %w", err))
	}
	return signed, nil
}

func (s *authService) Validate(authorization string) (*token.Claims, error) {
	if strings.TrimSpace(authorization) == "" {
		return nil, apperr.Newf(apperr.KindMissingCredentials, "no authorization header")
	}

	parts := strings.Fields(authorization)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, apperr.Newf(apperr.KindMalformedToken, "authorization header is not a bearer token")
	}

	claims, err := s.authority.Verify(parts[1])
	if err != nil {
		switch {
		case errors.Is(err, token.ErrExpired):
			return nil, apperr.New(apperr.KindExpired, err)
		case errors.Is(err, token.ErrInvalidSignature):
			return nil, apperr.New(apperr.KindInvalidSignature, err)
		default:
			return nil, apperr.New(apperr.KindMalformedToken, err)
		}
	}
	return claims, nil
}
