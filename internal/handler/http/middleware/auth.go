package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/inzone-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type claimsKey struct{}

// AuthRequired rejects requests without a valid access token and stores the
// caller's claims on the request context. It runs after jwtauth.Verifier.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _, err := jwtauth.FromContext(r.Context())
		if err != nil {
			if errors.Is(err, jwtauth.ErrExpired) {
				response.HandleError(w, auth.ErrTokenExpired)
				return
			}
			response.Unauthorized(w, err.Error())
			return
		}

		if token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		claims, err := jwt.ClaimsFromContext(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

// WithClaims returns ctx carrying claims.
func WithClaims(ctx context.Context, claims auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the caller stored by AuthRequired.
func ClaimsFromContext(ctx context.Context) (auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(auth.Claims)
	return claims, ok
}

// AuthorizeEmployee fails unless the caller is employeeID or an admin.
func AuthorizeEmployee(ctx context.Context, employeeID int64) error {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return auth.ErrInvalidToken
	}
	if !claims.CanActFor(employeeID) {
		return auth.ErrEmployeeIDMismatch
	}
	return nil
}
