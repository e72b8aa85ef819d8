package middleware

import (
	"context"
	"net/http"

	"careconnect/internal/common"
	"careconnect/internal/domain/model"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const principalCtxKey contextKey = "principal"

// TokenVerifier turns a bearer token into the caller's identity.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*model.Principal, error)
}

// Authenticator requires a valid bearer token and stores the Principal in
// the request context.
func Authenticator(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := jwtauth.TokenFromHeader(r)
			if token == "" {
				common.RespondWithDomainError(w, common.ErrAuthenticationRequired)
				return
			}

			principal, err := verifier.Verify(r.Context(), token)
			if err != nil {
				common.RespondWithDomainError(w, common.ErrInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), principalCtxKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly must be mounted after Authenticator.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFromContext(r.Context())
		if !ok {
			common.RespondWithDomainError(w, common.ErrAuthenticationRequired)
			return
		}
		if !principal.IsAdmin() {
			common.RespondWithDomainError(w, common.ErrInsufficientPrivilege)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func PrincipalFromContext(ctx context.Context) (*model.Principal, bool) {
	p, ok := ctx.Value(principalCtxKey).(*model.Principal)
	return p, ok && p != nil
}
