// routes/auth_handlers.go
package routes

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/LilVoxy/coursework_marketing/auth"
	"github.com/LilVoxy/coursework_marketing/config"
)

// LoginRequest структура запроса на вход
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// LoginResponse структура ответа с выданным токеном
type LoginResponse struct {
	Token string `json:"token"`
}

// LoginHandler обрабатывает запросы на вход и выдает JWT-токен
func LoginHandler(cfg config.JWTConfig, tokens *auth.TokenManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
			return
		}

		// Проверяем учетные данные оператора
		if req.Login != cfg.AdminLogin || req.Password != cfg.AdminPassword {
			log.Printf("⚠️ Неудачная попытка входа для логина %q", req.Login)
			http.Error(w, "Неверный логин или пароль", http.StatusUnauthorized)
			return
		}

		token, err := tokens.Issue(req.Login)
		if err != nil {
			log.Printf("❌ Ошибка при выдаче токена: %v", err)
			http.Error(w, "Ошибка при выдаче токена", http.StatusInternalServerError)
			return
		}

		log.Printf("✅ Оператор %s вошел в систему", req.Login)
		writeJSON(w, http.StatusOK, LoginResponse{Token: token})
	}
}
