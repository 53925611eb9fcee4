package middleware

import (
	"context"
	"net/http"
	"strings"

	"profile_form_go/auth"

	"github.com/rs/zerolog/log"
)

type contextKey string

// SubjectKey - ключ для хранения субъекта токена в контексте запроса.
const SubjectKey contextKey = "subject"

// JWTMiddleware проверяет наличие и валидность JWT в заголовке Authorization.
// Если токен валиден, субъект токена добавляется в контекст запроса.
func JWTMiddleware(tokens *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := log.With().Str("method", r.Method).Str("path", r.URL.Path).Str("remote", r.RemoteAddr).Logger()

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Debug().Msg("JWTMiddleware: missing Authorization header")
				http.Error(w, "Missing Authorization header", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				logger.Debug().Msg("JWTMiddleware: malformed Authorization header")
				http.Error(w, "Invalid Authorization header format (expected Bearer {token})", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.ValidateToken(parts[1])
			if err != nil {
				logger.Debug().Err(err).Msg("JWTMiddleware: invalid token")
				http.Error(w, "Invalid token: "+err.Error(), http.StatusUnauthorized)
				return
			}

			logger.Debug().Str("subject", claims.Subject).Msg("JWTMiddleware: authenticated")

			ctx := context.WithValue(r.Context(), SubjectKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
