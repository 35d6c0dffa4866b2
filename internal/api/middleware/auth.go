package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/dom/softball-lineup/internal/service"
	"github.com/google/uuid"
)

type contextKey string

const (
	CoachIDKey contextKey = "coachID"
)

// Auth admits requests carrying an access token of an existing, logged in coach
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Printf("ERROR [middleware.Auth] missing authorization header")
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				log.Printf("ERROR [middleware.Auth] invalid authorization header format")
				http.Error(w, "Invalid authorization header", http.StatusUnauthorized)
				return
			}

			coach, err := authService.Authenticate(r.Context(), parts[1])
			switch {
			case errors.Is(err, service.ErrCoachNotFound):
				log.Printf("ERROR [middleware.Auth] token for a coach that no longer exists")
				http.Error(w, "Coach no longer exists", http.StatusUnauthorized)
				return
			case errors.Is(err, service.ErrSessionEnded):
				log.Printf("ERROR [middleware.Auth] token for a logged out coach")
				http.Error(w, "Session ended, log in again", http.StatusUnauthorized)
				return
			case err != nil:
				log.Printf("ERROR [middleware.Auth] coach token rejected: %v", err)
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), CoachIDKey, coach.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetCoachID(ctx context.Context) (uuid.UUID, bool) {
	coachID, ok := ctx.Value(CoachIDKey).(uuid.UUID)
	return coachID, ok
}
