package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/pkg/auth"
)

const (
	contextKeyStudentID = "studentID"
	contextKeyClaims    = "claims"
)

// Authenticator validates an access token and returns its claims
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
}

// AuthMiddleware for cookie-based authentication
type AuthMiddleware struct {
	authenticator Authenticator
	cookieName    string
}

// NewAuthMiddleware creates a new AuthMiddleware reading the token from cookieName
func NewAuthMiddleware(authenticator Authenticator, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		authenticator: authenticator,
		cookieName:    cookieName,
	}
}

// CookieAuth requires a valid token cookie. A missing cookie is 401; an
// invalid, expired or revoked token is 403.
func (m *AuthMiddleware) CookieAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(m.cookieName)
		if err != nil || token == "" {
			HandleAPIError(c, apperrors.ErrTokenMissing)
			return
		}

		claims, err := m.authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		c.Set(contextKeyStudentID, claims.StudentID)
		c.Set(contextKeyClaims, claims)
		c.Next()
	}
}

// StudentID returns the authenticated student's ID
func StudentID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(contextKeyStudentID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// Claims returns the authenticated token's claims
func Claims(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(contextKeyClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
