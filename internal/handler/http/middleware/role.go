package middleware

import (
	"net/http"

	"github.com/Durgaram26/hrms-sub000/internal/domain/auth"
	"github.com/Durgaram26/hrms-sub000/internal/domain/user"
	"github.com/Durgaram26/hrms-sub000/internal/handler/http/response"
)

// RequirePermission gates a route on the caller's role holding the
// permission.
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := auth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, err)
				return
			}

			if !user.HasPermission(identity.Role, permission) {
				response.HandleError(w, user.ErrPermissionDenied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
