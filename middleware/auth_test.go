// middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/coursework_marketing/auth"
)

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	token, err := tokens.Issue("admin")
	require.NoError(t, err)

	var operatorLogin string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		operatorLogin = r.Header.Get("X-Operator-Login")
		w.WriteHeader(http.StatusOK)
	})
	handler := AuthMiddleware(tokens)(next)

	tests := []struct {
		name       string
		method     string
		authHeader string
		wantStatus int
		wantLogin  string
	}{
		{
			name:       "действительный токен пропускается",
			method:     "GET",
			authHeader: "Bearer " + token,
			wantStatus: http.StatusOK,
			wantLogin:  "admin",
		},
		{
			name:       "запрос без заголовка отклоняется",
			method:     "GET",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "заголовок без схемы Bearer отклоняется",
			method:     "GET",
			authHeader: token,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "недействительный токен отклоняется",
			method:     "GET",
			authHeader: "Bearer не.токен.вовсе",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "preflight-запрос пропускается без токена",
			method:     "OPTIONS",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			operatorLogin = ""

			req := httptest.NewRequest(tt.method, "/api/clients", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantLogin != "" {
				assert.Equal(t, tt.wantLogin, operatorLogin)
			}
		})
	}
}
