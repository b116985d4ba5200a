package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// CookieName cookie с токеном сессии
	CookieName = "finscore_session"
	// UserIDKey ключ gin.Context с идентификатором пользователя
	UserIDKey = "user_id"
)

var ErrUnauthorized = errors.New("unauthorized")

// Authenticator определяет пользователя запроса
type Authenticator interface {
	Authenticate(r *http.Request) (string, error)
}

// AuthenticatorFunc адаптер функции к Authenticator
type AuthenticatorFunc func(r *http.Request) (string, error)

func (f AuthenticatorFunc) Authenticate(r *http.Request) (string, error) {
	return f(r)
}

// SessionStore хранилище сессий
type SessionStore interface {
	ResolveSession(token string) (string, error)
}

// SessionAuthenticator проверяет токен сессии по хранилищу
type SessionAuthenticator struct {
	sessions SessionStore
}

func NewSessionAuthenticator(sessions SessionStore) *SessionAuthenticator {
	return &SessionAuthenticator{sessions: sessions}
}

// Authenticate возвращает пользователя сессии или ErrUnauthorized
func (a *SessionAuthenticator) Authenticate(r *http.Request) (string, error) {
	token := TokenFromRequest(r)
	if token == "" {
		return "", ErrUnauthorized
	}

	userID, err := a.sessions.ResolveSession(token)
	if err != nil {
		return "", fmt.Errorf("failed to resolve session: %w", err)
	}
	if userID == "" {
		return "", ErrUnauthorized
	}
	return userID, nil
}

// TokenFromRequest ищет токен в заголовке Authorization, параметре token и cookie
func TokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}
	if cookie, err := r.Cookie(CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// Middleware требует аутентифицированного пользователя
func Middleware(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := a.Authenticate(c.Request)
		if errors.Is(err, ErrUnauthorized) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// UserID возвращает пользователя, установленного Middleware
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
