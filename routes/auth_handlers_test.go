// routes/auth_handlers_test.go
package routes

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/coursework_marketing/auth"
	"github.com/LilVoxy/coursework_marketing/config"
)

func TestLoginHandler(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:        "test-secret",
		TTL:           time.Hour,
		AdminLogin:    "admin",
		AdminPassword: "secret",
	}
	tokens := auth.NewTokenManager(cfg.Secret, cfg.TTL)
	handler := LoginHandler(cfg, tokens)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "верные учетные данные",
			body:       `{"login":"admin","password":"secret"}`,
			wantStatus: 200,
		},
		{
			name:       "неверный пароль",
			body:       `{"login":"admin","password":"wrong"}`,
			wantStatus: 401,
		},
		{
			name:       "неизвестный логин",
			body:       `{"login":"guest","password":"secret"}`,
			wantStatus: 401,
		},
		{
			name:       "некорректный JSON",
			body:       `{не json`,
			wantStatus: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/login", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == 200 {
				var resp LoginResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				require.NotEmpty(t, resp.Token)

				// Выданный токен должен проходить проверку
				login, err := tokens.Verify(resp.Token)
				require.NoError(t, err)
				assert.Equal(t, "admin", login)
			}
		})
	}
}
