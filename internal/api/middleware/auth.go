package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicService/internal/auth"
	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

type contextKey string

const sessionKey contextKey = "session"

const (
	msgMissingToken       = "требуется авторизация"
	msgInvalidToken       = "недействительный токен"
	msgRevokedToken       = "сессия завершена, войдите снова"
	msgForbidden          = "доступ запрещен"
	msgSessionUnavailable = "не удалось проверить сессию"
)

// Auth проверяет Bearer токен и кладёт сессию в контекст запроса
func Auth(tokens TokenParser, revocations RevocationChecker, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				logger.Warn("%s %s - Missing bearer token", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			session, err := tokens.Parse(strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")))
			if err != nil {
				logger.Warn("%s %s - Invalid token: %v, request_id=%s", r.Method, r.URL.Path, err, GetRequestID(r.Context()))
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			revoked, err := revocations.IsRevoked(r.Context(), session.TokenID)
			if err != nil {
				logger.Error("%s %s - Failed to check token revocation: %v, request_id=%s",
					r.Method, r.URL.Path, err, GetRequestID(r.Context()))
				handlers.RespondError(w, http.StatusServiceUnavailable, msgSessionUnavailable)
				return
			}
			if revoked {
				logger.Warn("%s %s - Revoked token used: actor_id=%d, role=%s, request_id=%s",
					r.Method, r.URL.Path, session.Actor.ID, session.Actor.Role, GetRequestID(r.Context()))
				handlers.RespondUnauthorized(w, msgRevokedToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

// RequireRole пропускает только пользователей с указанной ролью
func RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := GetActor(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}
			if actor.Role != role {
				handlers.RespondForbidden(w, msgForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithSession кладёт сессию в контекст
func WithSession(ctx context.Context, session *auth.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// GetSession извлекает сессию из контекста
func GetSession(ctx context.Context) (*auth.Session, bool) {
	session, ok := ctx.Value(sessionKey).(*auth.Session)
	return session, ok && session != nil
}

// GetActor извлекает пользователя из контекста
func GetActor(ctx context.Context) (domain.Actor, bool) {
	session, ok := GetSession(ctx)
	if !ok {
		return domain.Actor{}, false
	}
	return session.Actor, true
}
