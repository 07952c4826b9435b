package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const CtxUserKey = "auth_user"

// Middleware verifies the bearer token and loads the user record. The
// token only names the user; existence and is_active are checked here
// on every request.
func Middleware(tokens TokenService, repo *Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(strings.ToLower(h), "bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			c.Abort()
			return
		}

		raw := strings.TrimSpace(h[len("Bearer "):])
		claims, err := tokens.Parse(raw)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		u, err := repo.GetByID(c.Request.Context(), claims.UserID)
		if err != nil || u == nil || !u.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found or inactive"})
			c.Abort()
			return
		}

		c.Set(CtxUserKey, u)
		c.Next()
	}
}

// RequireAdmin must run after Middleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := MustGetUser(c)
		if u == nil || u.Role != RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func MustGetUser(c *gin.Context) *User {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*User)
	return u
}
