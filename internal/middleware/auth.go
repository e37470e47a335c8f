package middleware

import (
	"Echoo/internal/model"
	"context"
	"crypto/subtle"
	"net/http"
)

type contextKey string

const userContextKey contextKey = "auth_user"

// UserAuthenticator проверяет пару логин/пароль конечного пользователя.
type UserAuthenticator interface {
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
}

// GetUserFromContext достаёт аутентифицированного пользователя из контекста.
func GetUserFromContext(ctx context.Context) (*model.User, bool) {
	u, ok := ctx.Value(userContextKey).(*model.User)
	return u, ok
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", `Basic realm="restricted"`)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}

// WithUserAuth — Basic-аутентификация конечных пользователей:
// логин ищется в БД, пароль сверяется с bcrypt-хешем.
// Пользователь кладётся в контекст запроса.
func WithUserAuth(users UserAuthenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok {
				unauthorized(w, "invalid username or password")
				return
			}
			user, err := users.Authenticate(r.Context(), username, password)
			if err != nil {
				unauthorized(w, "invalid username or password")
				return
			}
			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithInternalAuth — Basic-аутентификация внутреннего сервиса против
// сконфигурированной пары. Сравнение за константное время.
// Пространства учёток не пересекаются: пользовательские креды здесь не работают.
func WithInternalAuth(internalUsername, internalPassword string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok {
				unauthorized(w, "invalid internal service credentials")
				return
			}
			userOK := subtle.ConstantTimeCompare([]byte(username), []byte(internalUsername)) == 1
			passOK := subtle.ConstantTimeCompare([]byte(password), []byte(internalPassword)) == 1
			if !userOK || !passOK {
				unauthorized(w, "invalid internal service credentials")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
