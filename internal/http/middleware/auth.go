package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/amanisrajpoot/youandonly-sub000/internal/auth"
	"github.com/amanisrajpoot/youandonly-sub000/internal/http/respond"
)

const (
	ctxKeyUserID = "user_id"
	ctxKeyRole   = "user_role"
)

// Authenticate parses an optional Bearer token and stores the claims in the
// gin context. It never rejects; RequireAuth/RequireAdmin gate access.
func Authenticate(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.Next()
			return
		}

		claims, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.Next()
			return
		}

		c.Set(ctxKeyUserID, claims.Subject)
		c.Set(ctxKeyRole, claims.Role)
		c.Next()
	}
}

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUserID(c); !ok {
			respond.Error(c, http.StatusUnauthorized, "Authentication required.")
			return
		}
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUserID(c); !ok {
			respond.Error(c, http.StatusUnauthorized, "Authentication required.")
			return
		}
		if role, _ := c.Get(ctxKeyRole); role != auth.RoleAdmin {
			respond.Error(c, http.StatusForbidden, "Admin access required.")
			return
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user's id, if any.
func CurrentUserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyUserID)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
