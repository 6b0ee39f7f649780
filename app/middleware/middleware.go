package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"blogadmin/app/models"
	"blogadmin/app/repositories"
	"blogadmin/app/sessions"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type contextKey string

const userKey contextKey = "admin.user"

// SessionCookie is the cookie the login handler sets and the auth
// middleware reads.
const SessionCookie = "sessionid"

// Logger logs method, path, status class and duration per request.
func Logger(log *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Info("request")
		})
	}
}

// Recoverer recovers from panics and logs the error
func Recoverer(log *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithField("panic", err).Error("request panicked")
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RequireStaff resolves the session to a user and rejects the request
// unless that user is an active staff member. The user lands in the
// request context as the acting operator.
func RequireStaff(store *sessions.Store, users repositories.UserRepository) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r)
			if token == "" {
				http.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}
			userID, err := store.Get(token)
			if err != nil {
				http.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}
			user, err := users.GetByID(userID)
			if err != nil {
				http.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}
			if !user.IsActive || !user.IsStaff {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionToken(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// CurrentUser returns the acting operator set by RequireStaff, or nil.
func CurrentUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(userKey).(*models.User)
	return user
}
