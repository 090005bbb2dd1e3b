package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gameofy/backend/internal/service/session"
	"github.com/gameofy/backend/pkg/httputil"
)

// AuthMiddleware validates the JWT plus its backing session and puts the
// user's identity into the gin context.
func AuthMiddleware(authService *session.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := httputil.GetTokenFromRequest(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			httputil.ClearAuthCookie(c.Writer)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or session"})
			return
		}

		// Off the request path, last_activity is best effort
		go authService.UpdateSessionActivity(claims.SessionID)

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("session_id", claims.SessionID)
		c.Next()
	}
}
