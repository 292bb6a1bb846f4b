// auth/jwt.go
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenManager выдает и проверяет JWT-токены операторов
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager создает новый экземпляр TokenManager
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue выдает подписанный токен для указанного логина
func (m *TokenManager) Issue(login string) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": login,
		"iat": now.Unix(),
		"exp": now.Add(m.ttl).Unix(),
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("ошибка при подписании токена: %w", err)
	}

	return signed, nil
}

// Verify проверяет токен и возвращает логин из его claims
func (m *TokenManager) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("недействительный токен: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("недействительный токен")
	}

	login, ok := claims["sub"].(string)
	if !ok || login == "" {
		return "", errors.New("в токене отсутствует логин")
	}

	return login, nil
}
