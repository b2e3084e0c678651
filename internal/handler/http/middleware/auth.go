package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/Durgaram26/hrms-sub000/internal/domain/auth"
	"github.com/Durgaram26/hrms-sub000/internal/handler/http/response"
)

// AuthRequired verifies the access token and injects the caller identity on
// the request context. Everything behind it can rely on auth.FromContext.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != "access" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			identity, err := auth.IdentityFromClaims(claims)
			if err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
		}
		return http.HandlerFunc(hfn)
	}
}
