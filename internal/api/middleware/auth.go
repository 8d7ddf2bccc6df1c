package middleware

import (
	"context"
	"net/http"
	"strings"

	"postly/internal/auth"
	"postly/internal/models"
	"postly/internal/repositories"
	"postly/internal/utils"
)

type contextKey string

const currentUserKey contextKey = "currentUser"

// Auth resolves the bearer token on every protected request into a stored
// user. A token whose user id no longer resolves is rejected outright rather
// than carried downstream as an absent identity.
func Auth(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				rejectUnauthenticated(w)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				rejectUnauthenticated(w)
				return
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				rejectUnauthenticated(w)
				return
			}

			user, err := repositories.FindUserByID(r.Context(), claims.UserID)
			if err != nil {
				rejectUnauthenticated(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// WithUser attaches the resolved identity to the context. Exported so tests
// can stand in for the middleware.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, currentUserKey, user)
}

// CurrentUser returns the identity the Auth middleware resolved.
func CurrentUser(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(currentUserKey).(*models.User)
	return user, ok && user != nil
}

func rejectUnauthenticated(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
		Success: false,
		Message: "Could not validate credentials",
	})
}
