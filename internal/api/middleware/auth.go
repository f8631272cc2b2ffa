package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/rameshwari28/QuickCourt/internal/api/handlers"
	"github.com/rameshwari28/QuickCourt/internal/domain"
)

const (
	// HeaderUserID заголовок с ID аутентифицированного пользователя.
	// Проставляется API gateway после проверки токена
	HeaderUserID = "X-User-ID"

	// HeaderUserRole заголовок с ролью пользователя
	HeaderUserRole = "X-User-Role"
)

const (
	msgMissingUserID = "отсутствует идентификатор пользователя"
	msgInvalidUserID = "некорректный идентификатор пользователя"
	msgInvalidRole   = "некорректная роль пользователя"
)

type contextKey string

const (
	userIDKey   contextKey = "userID"
	userRoleKey contextKey = "userRole"
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Identity извлекает идентификатор и роль пользователя из заголовков
// и кладёт их в контекст запроса. Запросы без X-User-ID отклоняются,
// роль по умолчанию - user
func Identity(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userIDStr := r.Header.Get(HeaderUserID)
			if userIDStr == "" {
				logger.Warn("%s %s - Missing %s header", r.Method, r.URL.Path, HeaderUserID)
				handlers.RespondUnauthorized(w, msgMissingUserID)
				return
			}

			userID, err := strconv.ParseInt(userIDStr, 10, 64)
			if err != nil || userID <= 0 {
				logger.Warn("%s %s - Invalid %s header: %q", r.Method, r.URL.Path, HeaderUserID, userIDStr)
				handlers.RespondUnauthorized(w, msgInvalidUserID)
				return
			}

			role := domain.Role(r.Header.Get(HeaderUserRole))
			if role == "" {
				role = domain.RoleUser
			}
			if !role.Valid() {
				logger.Warn("%s %s - Invalid %s header: %q", r.Method, r.URL.Path, HeaderUserRole, role)
				handlers.RespondUnauthorized(w, msgInvalidRole)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			ctx = context.WithValue(ctx, userRoleKey, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID возвращает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// GetUserRole возвращает роль пользователя из контекста запроса
func GetUserRole(ctx context.Context) domain.Role {
	role, ok := ctx.Value(userRoleKey).(domain.Role)
	if !ok {
		return domain.RoleUser
	}
	return role
}
