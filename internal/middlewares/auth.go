package middlewares

import (
	"context"
	"net/http"

	"school-store/internal/lib/sessions"

	"github.com/gin-gonic/gin"
)

// SessionStore is the subset of the redis storage the middleware needs.
type SessionStore interface {
	GetSession(ctx context.Context, sessionID string) (string, error)
}

// RoleResolver looks up the role for an authenticated user id.
type RoleResolver interface {
	ResolveRole(ctx context.Context, userID string) (string, error)
}

type AuthMiddleware struct {
	gen      *sessions.Generator
	sessions SessionStore
	roles    RoleResolver
}

func NewAuthMiddleware(gen *sessions.Generator, store SessionStore, roles RoleResolver) *AuthMiddleware {
	return &AuthMiddleware{
		gen:      gen,
		sessions: store,
		roles:    roles,
	}
}

// Handle authenticates the request from the session cookie. The token must be
// validly signed and its session id must still exist in the store.
func (m *AuthMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessions.CookieName)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		claims, err := m.gen.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		storedUserID, err := m.sessions.GetSession(c.Request.Context(), claims.SessionID)
		if err != nil || storedUserID != claims.UserID {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("session_id", claims.SessionID)
		c.Next()
	}
}

// RequireTeacher gates teacher-only routes. Must run after Handle.
func (m *AuthMiddleware) RequireTeacher() gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		role, err := m.roles.ResolveRole(c.Request.Context(), userIDVal.(string))
		if err != nil || role != "teacher" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Teacher access required"})
			return
		}

		c.Next()
	}
}
