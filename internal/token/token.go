// Package token issues and verifies the signed bearer tokens shared between
// the auth service and the gateway. Tokens are stateless: any instance holding
// the signing secret can validate them without a database lookup.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed        = errors.New("token is malformed")
	ErrInvalidSignature = errors.New("token signature is invalid")
	ErrExpired          = errors.New("token is expired")
)

// Claims is the decoded token payload. Username identifies the subject and
// Admin gates upload privileges at the gateway.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Admin    bool   `json:"admin"`
}

// Authority signs and verifies tokens with a shared HMAC-SHA256 secret.
// The clock is injectable so expiry behavior is testable.
type Authority struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewAuthority creates an Authority with the given signing secret and token
// lifetime. A non-positive ttl falls back to 24 hours.
func NewAuthority(secret []byte, ttl time.Duration) *Authority {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Authority{secret: secret, ttl: ttl, now: time.Now}
}

// Issue returns a signed token for username with iat = now and exp = now + ttl.
func (a *Authority) Issue(username string, admin bool) (string, error) {
	now := a.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
		Username: username,
		Admin:    admin,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates tokenString, returning the decoded claims
// unchanged. Failures map onto the package sentinels: ErrMalformed for bytes
// that do not parse or claims sets missing exp/iat, ErrExpired for a passed
// expiry, ErrInvalidSignature for everything that fails the cryptographic
// check. Requiring exp keeps a correctly signed but expiry-less token from
// validating forever.
func (a *Authority) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed), errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, fmt.Errorf("%w: %v", ErrExpired, err)
		default:
			return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
		}
	}
	if !parsed.Valid {
		return nil, ErrInvalidSignature
	}
	if claims.IssuedAt == nil {
		return nil, fmt.Errorf("%w: iat claim missing", ErrMalformed)
	}
	return claims, nil
}
