// middleware/auth.go
package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/LilVoxy/coursework_marketing/auth"
)

// AuthMiddleware проверяет JWT-токен в заголовке Authorization.
// Запросы без действительного токена отклоняются со статусом 401.
func AuthMiddleware(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Preflight-запросы пропускаем без проверки
			if r.Method == "OPTIONS" {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "Отсутствует токен авторизации", http.StatusUnauthorized)
				return
			}

			login, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				log.Printf("⚠️ Отклонен запрос с недействительным токеном: %v", err)
				http.Error(w, "Недействительный токен авторизации", http.StatusUnauthorized)
				return
			}

			r.Header.Set("X-Operator-Login", login)
			next.ServeHTTP(w, r)
		})
	}
}
