package middleware

import (
	"net/http"

	"github.com/henry215/partyrsvp/internal/handlers"
	"github.com/henry215/partyrsvp/internal/services"
)

const sessionCookieName = "admin_session"

type AuthMiddleware struct {
	authService services.AdminAuthServiceInterface
}

func NewAuthMiddleware(authService services.AdminAuthServiceInterface) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Authenticate validates the admin session cookie and marks the context if
// valid. Does not reject unauthenticated requests.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		if err := m.authService.ValidateSession(r.Context(), cookie.Value); err != nil {
			// Invalid session, continue unauthenticated
			next.ServeHTTP(w, r)
			return
		}

		ctx := handlers.SetAdminInContext(r.Context())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects requests without a validated admin session with 401.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !handlers.IsAdminContext(r.Context()) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"Authentication required"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
