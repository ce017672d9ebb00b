package middleware

import (
	"context"
	"net/http"
	"slices"
	"strconv"

	"github.com/SergeyBogomolovv/water-sales-service/internal/entities"
	"github.com/SergeyBogomolovv/water-sales-service/pkg/utils"
)

const (
	UserIDHeader   = "X-User-ID"
	UserRoleHeader = "X-User-Role"
)

// Identity пользователь, прошедший аутентификацию на шлюзе
type Identity struct {
	UserID int64
	Role   entities.Role
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// Authenticate читает пользователя из заголовков шлюза. Без них запрос отклоняется.
func Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(UserIDHeader), 10, 64)
		if err != nil || userID <= 0 {
			utils.WriteError(w, "unauthenticated", http.StatusUnauthorized)
			return
		}

		role := entities.Role(r.Header.Get(UserRoleHeader))
		if !role.Valid() {
			utils.WriteError(w, "unauthenticated", http.StatusUnauthorized)
			return
		}

		ctx := WithIdentity(r.Context(), Identity{UserID: userID, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole пропускает только перечисленные роли
func RequireRole(roles ...entities.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok {
				utils.WriteError(w, "unauthenticated", http.StatusUnauthorized)
				return
			}
			if !slices.Contains(roles, id.Role) {
				utils.WriteError(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
