// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mangacal/internal/platform/sec"
)

/*
TestTokenService_RoundTrip verifies that a signed token verifies with its scopes.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := sec.NewTokenService("s3cret")

	token, err := service.Sign([]string{sec.ScopeCalendar, sec.ScopeSeries}, time.Minute)
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "mangacal", claims.Issuer)
	assert.True(t, claims.Allows(sec.ScopeSeries))
	assert.False(t, claims.Allows(sec.ScopeLicense))
}

/*
TestTokenService_Rejects covers the failure modes of verification.
*/
func TestTokenService_Rejects(t *testing.T) {
	service := sec.NewTokenService("s3cret")

	expired, err := service.Sign([]string{sec.ScopeSheet}, -time.Minute)
	require.NoError(t, err)

	otherKey, err := sec.NewTokenService("other").Sign([]string{sec.ScopeSheet}, time.Minute)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, sec.RevalidateClaims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "mangacal"},
		Scopes:           []string{sec.ScopeSheet},
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	wrongIssuer, err := jwt.NewWithClaims(jwt.SigningMethodHS256, sec.RevalidateClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	tests := map[string]string{
		"expired":      expired,
		"other_key":    otherKey,
		"no_expiry":    noExpiry,
		"wrong_issuer": wrongIssuer,
		"garbage":      "not-a-jwt",
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := service.VerifyToken(token)
			assert.Error(t, err)
		})
	}
}

/*
TestTokenService_Sign validates scopes and requires a secret.
*/
func TestTokenService_Sign(t *testing.T) {
	_, err := sec.NewTokenService("s3cret").Sign([]string{"everything"}, time.Minute)
	assert.Error(t, err)

	_, err = sec.NewTokenService("").Sign([]string{sec.ScopeCalendar}, time.Minute)
	assert.ErrorIs(t, err, sec.ErrNoSecret)

	_, err = sec.NewTokenService("").VerifyToken("x")
	assert.ErrorIs(t, err, sec.ErrNoSecret)
}
