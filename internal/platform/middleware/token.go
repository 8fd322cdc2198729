// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/taibuivan/mangacal/internal/platform/apperr"
	"github.com/taibuivan/mangacal/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/mangacal/internal/platform/request"
	"github.com/taibuivan/mangacal/internal/platform/respond"
	"github.com/taibuivan/mangacal/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// Defining it here decouples the middleware from [sec.TokenService] so tests
// can inject a stub.
type TokenVerifier interface {
	VerifyToken(tokenString string) (*sec.RevalidateClaims, error)
}

// RequireToken rejects requests without a valid bearer revalidation token.
//
// # Flow
//  1. Read 'Authorization: Bearer <token>'; missing or malformed aborts with 401.
//  2. Verify the JWT via [TokenVerifier]; failure aborts with 401.
//  3. Inject the granted scopes into the context (see [ctxutil.GetScopes]).
func RequireToken(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			token := requestutil.BearerToken(request)
			if token == "" {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "revalidate_token_rejected",
					slog.String("error", err.Error()),
				)
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			ctx := ctxutil.WithScopes(request.Context(), claims.Scopes)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
