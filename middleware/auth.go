package middleware

import (
	"context"
	"net/http"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fiszki/leitner-api/auth"
	"github.com/fiszki/leitner-api/models"
)

type contextKey string

const userContextKey contextKey = "user"

// RequireUser authenticates the session cookie and loads the account into
// the request context. Handlers behind it can rely on UserFromContext.
func RequireUser(db *gorm.DB, log *zap.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.CookieName)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			userID, err := auth.VerifyToken(cookie.Value)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			var user models.User
			if err := db.Where("public_id = ?", userID).First(&user).Error; err != nil {
				log.Warn("session token for unknown user", zap.String("user_id", userID), zap.Error(err))
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, &user)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// UserFromContext returns the authenticated user attached by RequireUser.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok
}
