package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindStatusAndMessage(t *testing.T) {
	tests := []struct {
		kind       Kind
		wantStatus int
		wantMsg    string
	}{
		{KindMissingCredentials, http.StatusUnauthorized, "Missing Credentials"},
		{KindInvalidCredentials, http.StatusUnauthorized, "Invalid Credentials"},
		{KindMalformedToken, http.StatusForbidden, "Not Authorized"},
		{KindInvalidSignature, http.StatusForbidden, "Not Authorized"},
		{KindExpired, http.StatusForbidden, "Not Authorized"},
		{KindNotAuthorized, http.StatusUnauthorized, "Not Authorized"},
		{KindBadRequest, http.StatusBadRequest, "Bad Request"},
		{KindUpstreamUnavailable, http.StatusBadGateway, "Upstream Unavailable"},
		{KindStorageFailure, http.StatusInternalServerError, "Internal Server Error"},
		{KindPublishFailure, http.StatusInternalServerError, "Internal Server Error"},
		{KindInternal, http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.kind.Status())
			assert.Equal(t, tt.wantMsg, tt.kind.Message())
		})
	}
}

func TestExpiredAndTamperedAreIndistinguishable(t *testing.T) {
	expired := New(KindExpired, errors.New("token is expired"))
	tampered := New(KindInvalidSignature, errors.New("signature is invalid"))

	assert.Equal(t, expired.HTTPStatus(), tampered.HTTPStatus())
	assert.Equal(t, expired.ExternalMessage(), tampered.ExternalMessage())
}

func TestRemotePropagatesVerbatim(t *testing.T) {
	e := Remote(http.StatusUnauthorized, "Invalid Credentials")

	assert.Equal(t, http.StatusUnauthorized, e.HTTPStatus())
	assert.Equal(t, "Invalid Credentials", e.ExternalMessage())
}

func TestUnwrapAndFrom(t *testing.T) {
	cause := errors.New("boom")
	e := New(KindStorageFailure, cause)

	assert.ErrorIs(t, e, cause)
	assert.True(t, IsKind(e, KindStorageFailure))
	assert.False(t, IsKind(e, KindPublishFailure))

	wrapped := fmt.Errorf("outer: %w", e)
	assert.True(t, IsKind(wrapped, KindStorageFailure))
	assert.Equal(t, KindStorageFailure, From(wrapped).Kind)

	plain := From(errors.New("plain"))
	assert.Equal(t, KindInternal, plain.Kind)
	assert.Equal(t, "Internal Server Error", plain.ExternalMessage())
}
