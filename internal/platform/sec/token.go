// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides token management for the revalidation webhook.
//
// # Architecture
//
// This package isolates security-sensitive code (JWT signing and parsing)
// from the HTTP layer. The middleware only sees a verifier interface.
package sec

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taibuivan/mangacal/internal/platform/constants"
)

// Revalidation scopes. Each one names a cache prefix that can be purged.
const (
	ScopeCalendar = "calendar"
	ScopeSeries   = "series"
	ScopeLicense  = "license"
	ScopeSheet    = "sheet"
)

// Scopes lists every scope a token may carry.
var Scopes = []string{ScopeCalendar, ScopeSeries, ScopeLicense, ScopeSheet}

// ErrNoSecret is returned when signing is attempted without a configured secret.
var ErrNoSecret = errors.New("sec: revalidation secret is not configured")

// RevalidateClaims represents the payload of a revalidation token.
type RevalidateClaims struct {
	jwt.RegisteredClaims

	// Scopes restricts which cache namespaces the bearer may purge.
	Scopes []string `json:"scp"`
}

// Allows reports whether the token grants the given scope.
func (claims *RevalidateClaims) Allows(scope string) bool {
	return slices.Contains(claims.Scopes, scope)
}

// TokenService signs and verifies HS256 revalidation tokens.
type TokenService struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewTokenService creates a new TokenService for the given shared secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		issuer: constants.RevalidateIssuer,
		now:    time.Now,
	}
}

/*
Sign issues a token granting scopes for timeToLive.

Parameters:
  - scopes: []string (subset of [Scopes])
  - timeToLive: time.Duration

Returns:
  - string: The compact JWT
  - error: ErrNoSecret or an unknown-scope error
*/
func (service *TokenService) Sign(scopes []string, timeToLive time.Duration) (string, error) {
	if len(service.secret) == 0 {
		return "", ErrNoSecret
	}
	for _, scope := range scopes {
		if !slices.Contains(Scopes, scope) {
			return "", fmt.Errorf("sec: unknown scope %q", scope)
		}
	}

	currentTime := service.now()
	claims := RevalidateClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		Scopes: scopes,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature, issuer and expiry of a JWT string.
func (service *TokenService) VerifyToken(tokenString string) (*RevalidateClaims, error) {
	if len(service.secret) == 0 {
		return nil, ErrNoSecret
	}

	token, err := jwt.ParseWithClaims(tokenString, &RevalidateClaims{}, func(token *jwt.Token) (any, error) {
		return service.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(service.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(service.now),
	)
	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*RevalidateClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	return claims, nil
}
