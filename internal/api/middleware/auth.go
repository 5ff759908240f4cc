package middleware

import (
	"context"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/m04kA/FestAccommodationService/internal/api/handlers"
)

const (
	HeaderUserID    = "X-User-ID"
	HeaderUserRoles = "X-User-Roles"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
)

type contextKey string

const (
	userIDKey contextKey = "user_id"
	rolesKey  contextKey = "user_roles"
)

// Auth достает пользователя из заголовков шлюза; без X-User-ID - 401
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(strings.TrimSpace(r.Header.Get(HeaderUserID)), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, rolesKey, parseRoles(r.Header.Get(HeaderUserRoles)))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles пропускает пользователя хотя бы с одной из ролей
// Должен стоять после Auth
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := GetUserID(r.Context()); !ok {
				handlers.RespondUnauthorized(w, msgMissingUserID)
				return
			}
			if !HasAnyRole(r.Context(), roles...) {
				handlers.RespondForbidden(w, msgForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

func GetRoles(ctx context.Context) []string {
	roles, _ := ctx.Value(rolesKey).([]string)
	return roles
}

func HasAnyRole(ctx context.Context, roles ...string) bool {
	for _, role := range GetRoles(ctx) {
		if slices.Contains(roles, role) {
			return true
		}
	}
	return false
}

// WithUser кладет пользователя в контекст (для тестов обработчиков)
func WithUser(ctx context.Context, userID int64, roles ...string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, rolesKey, roles)
}

func parseRoles(header string) []string {
	roles := make([]string, 0)
	for _, role := range strings.Split(header, ",") {
		role = strings.ToLower(strings.TrimSpace(role))
		if role != "" {
			roles = append(roles, role)
		}
	}
	return roles
}
