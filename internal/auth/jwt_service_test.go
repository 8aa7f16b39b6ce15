package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJWTServiceRoundTrip(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{Secret: "test-secret", Issuer: "barangaylink"})
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken(AccessTokenInput{UserID: 42, Role: "staff"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	require.EqualValues(t, 42, claims.UserID)
	require.Equal(t, "staff", claims.Role)
	require.Equal(t, "barangaylink", claims.Issuer)
	require.Equal(t, "42", claims.Subject)
}

func TestJWTServiceRequiresSecret(t *testing.T) {
	_, err := NewJWTService(JWTConfig{})
	require.Error(t, err)
}

func TestJWTServiceGenerateRequiresUserID(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{Secret: "test-secret"})
	require.NoError(t, err)

	_, err = svc.GenerateAccessToken(AccessTokenInput{})
	require.Error(t, err)
}

func TestJWTServiceRejectsWrongSecret(t *testing.T) {
	issuing, err := NewJWTService(JWTConfig{Secret: "secret-a", Issuer: "barangaylink"})
	require.NoError(t, err)
	validating, err := NewJWTService(JWTConfig{Secret: "secret-b", Issuer: "barangaylink"})
	require.NoError(t, err)

	token, err := issuing.GenerateAccessToken(AccessTokenInput{UserID: 1})
	require.NoError(t, err)

	_, err = validating.ValidateAccessToken(token)
	require.Error(t, err)
}

func TestJWTServiceRejectsWrongIssuer(t *testing.T) {
	issuing, err := NewJWTService(JWTConfig{Secret: "test-secret", Issuer: "someone-else"})
	require.NoError(t, err)
	validating, err := NewJWTService(JWTConfig{Secret: "test-secret", Issuer: "barangaylink"})
	require.NoError(t, err)

	token, err := issuing.GenerateAccessToken(AccessTokenInput{UserID: 1})
	require.NoError(t, err)

	_, err = validating.ValidateAccessToken(token)
	require.Error(t, err)
}

func TestJWTServiceRejectsExpiredToken(t *testing.T) {
	past := time.Now().Add(-48 * time.Hour)
	issuing, err := NewJWTService(JWTConfig{
		Secret:         "test-secret",
		Issuer:         "barangaylink",
		AccessTokenTTL: time.Hour,
		Clock:          func() time.Time { return past },
	})
	require.NoError(t, err)

	token, err := issuing.GenerateAccessToken(AccessTokenInput{UserID: 1})
	require.NoError(t, err)

	validating, err := NewJWTService(JWTConfig{Secret: "test-secret", Issuer: "barangaylink"})
	require.NoError(t, err)

	_, err = validating.ValidateAccessToken(token)
	require.Error(t, err)
}

func TestJWTServiceRejectsEmptyToken(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{Secret: "test-secret"})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken("")
	require.Error(t, err)
}
