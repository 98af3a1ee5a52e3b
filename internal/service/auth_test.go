package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"vidconv/internal/apperr"
	"vidconv/internal/model"
	repoMocks "vidconv/internal/repository/mocks"
	"vidconv/internal/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hashFor(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	authority := token.NewAuthority([]byte("test-secret"), time.Hour)

	tests := []struct {
		name       string
		username   string
		password   string
		setupMocks func(mRepo *repoMocks.MockUserRepository)
		wantKind   apperr.Kind
		wantAdmin  bool
	}{
		{
			name:     "valid credentials issue token",
			username: "alice",
			password: "s3cret",
			setupMocks: func(mRepo *repoMocks.MockUserRepository) {
				mRepo.On("FindByUsername", ctx, "alice").Return(&model.User{
					Username:     "alice",
					PasswordHash: hashFor(t, "s3cret"),
					Admin:        true,
				}, nil)
			},
			wantAdmin: true,
		},
		{
			name:       "missing username",
			username:   "",
			password:   "pw",
			setupMocks: func(mRepo *repoMocks.MockUserRepository) {},
			wantKind:   apperr.KindMissingCredentials,
		},
		{
			name:       "missing password",
			username:   "alice",
			password:   "",
			setupMocks: func(mRepo *repoMocks.MockUserRepository) {},
			wantKind:   apperr.KindMissingCredentials,
		},
		{
			name:     "unknown user",
			username: "nobody",
			password: "pw",
			setupMocks: func(mRepo *repoMocks.MockUserRepository) {
				mRepo.On("FindByUsername", ctx, "nobody").Return(nil, sql.ErrNoRows)
			},
			wantKind: apperr.KindInvalidCredentials,
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "wrong",
			setupMocks: func(mRepo *repoMocks.MockUserRepository) {
				mRepo.On("FindByUsername", ctx, "alice").Return(&model.User{
					Username:     "alice",
					PasswordHash: hashFor(t, "s3cret"),
				}, nil)
			},
			wantKind: apperr.KindInvalidCredentials,
		},
		{
			name:     "repository failure",
			username: "alice",
			password: "pw",
			setupMocks: func(mRepo *repoMocks.MockUserRepository) {
				mRepo.On("FindByUsername", ctx, "alice").Return(nil, errors.New("db down"))
			},
			wantKind: apperr.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockUserRepository)
			tt.setupMocks(mRepo)
			svc := NewAuthService(mRepo, authority)

			signed, err := svc.Login(ctx, tt.username, tt.password)

			if tt.wantKind != apperr.KindUnknown {
				require.Error(t, err)
				assert.True(t, apperr.IsKind(err, tt.wantKind), "got %v", err)
				assert.Empty(t, signed)
			} else {
				require.NoError(t, err)
				claims, err := authority.Verify(signed)
				require.NoError(t, err)
				assert.Equal(t, tt.username, claims.Username)
				assert.Equal(t, tt.wantAdmin, claims.Admin)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Validate(t *testing.T) {
	authority := token.NewAuthority([]byte("test-secret"), time.Hour)
	svc := NewAuthService(nil, authority)

	signed, err := authority.Issue("alice", true)
	require.NoError(t, err)

	t.Run("valid bearer token", func(t *testing.T) {
		claims, err := svc.Validate("Bearer " + signed)
		require.NoError(t, err)
		assert.Equal(t, "alice", claims.Username)
		assert.True(t, claims.Admin)
	})

	t.Run("missing header", func(t *testing.T) {
		_, err := svc.Validate("")
		assert.True(t, apperr.IsKind(err, apperr.KindMissingCredentials))

		_, err = svc.Validate("   ")
		assert.True(t, apperr.IsKind(err, apperr.KindMissingCredentials))
	})

	t.Run("not a bearer header", func(t *testing.T) {
		_, err := svc.Validate("Basic YWxpY2U6cHc=")
		assert.True(t, apperr.IsKind(err, apperr.KindMalformedToken))

		_, err = svc.Validate(signed) // token without scheme
		assert.True(t, apperr.IsKind(err, apperr.KindMalformedToken))
	})

	t.Run("tampered token", func(t *testing.T) {
		other := token.NewAuthority([]byte("other-secret"), time.Hour)
		forged, err := other.Issue("mallory", true)
		require.NoError(t, err)

		_, err = svc.Validate("Bearer " + forged)
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidSignature))
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Validate("Bearer not.a.jwt")
		assert.True(t, apperr.IsKind(err, apperr.KindMalformedToken))
	})
}
