package api

import (
	"context"
	"net/http"
	"os"
	"strings"

	"log/slog"

	"github.com/ascendhq/ascend/internal/auth"
	"github.com/ascendhq/ascend/pkg/models"
	"github.com/ascendhq/ascend/pkg/repository"
	"github.com/gorilla/mux"
)

type ctxKey string

const CtxUser ctxKey = "user"

// package-level logger used by middleware and helpers; can be set via SetLogger from caller
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger installs a logger for the api package. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote", r.RemoteAddr),
		)
		next.ServeHTTP(w, r)
	})
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic", slog.Any("err", err))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// AuthMiddleware resolves the caller's identity from the session cookie or,
// failing that, the bearer token, and stores the loaded user in the request
// context. Requests without a resolvable identity pass through anonymous;
// RequireAuth is what actually rejects them. Token failures are logged and
// otherwise swallowed, so a caller cannot distinguish a bad token from no
// token.
func AuthMiddleware(secret string, sessions auth.SessionStore, users repository.UserRepo) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := resolveSession(r, sessions)

			if userID == 0 {
				result := auth.VerifyToken(secret, bearerToken(r))
				switch result.Status {
				case auth.TokenValid:
					userID = result.UserID
				case auth.TokenAbsent:
					// anonymous request
				default:
					logger.Info("token rejected",
						slog.String("status", result.Status.String()),
						slog.String("path", r.URL.Path),
					)
				}
			}

			if userID > 0 {
				user, err := users.GetUserByID(r.Context(), userID)
				if err != nil {
					logger.Error("failed to load user", slog.Int64("user_id", userID), slog.Any("err", err))
				}
				if user != nil {
					ctx := context.WithValue(r.Context(), CtxUser, user)
					r = r.WithContext(ctx)
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth rejects requests that carry no resolved identity.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userFrom(r) == nil {
			writeError(w, "Authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func resolveSession(r *http.Request, sessions auth.SessionStore) int64 {
	cookie, err := r.Cookie(auth.SessionCookie)
	if err != nil || cookie.Value == "" {
		return 0
	}
	userID, err := sessions.Get(r.Context(), cookie.Value)
	if err != nil {
		logger.Error("session lookup failed", slog.Any("err", err))
		return 0
	}
	return userID
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

func userFrom(r *http.Request) *models.User {
	if u, ok := r.Context().Value(CtxUser).(*models.User); ok {
		return u
	}
	return nil
}
