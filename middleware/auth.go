package middleware

import (
	"strings"

	"paper-review-api/models"
	"paper-review-api/services"

	"github.com/gin-gonic/gin"
)

const callerKey = "caller"

// AuthMiddleware validates the bearer token and stores the resolved caller.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get token from header; browsers cannot set headers on websocket upgrades.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" && c.IsWebsocket() && c.Query("token") != "" {
			authHeader = "Bearer " + c.Query("token")
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if authHeader == "" || tokenString == authHeader {
			Fail(c, services.AuthError("You are not logged in! Please log in to get access."))
			return
		}

		caller, err := services.NewAuthService(nil).Authorize(c.Request.Context(), strings.TrimSpace(tokenString))
		if err != nil {
			Fail(c, err)
			return
		}

		c.Set(callerKey, caller)
		c.Next()
	}
}

// RequireRole checks if the caller has one of roles
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CurrentCaller(c)
		if !ok {
			Fail(c, services.AuthError("You are not logged in! Please log in to get access."))
			return
		}
		if err := services.RequireRole(caller, roles...); err != nil {
			Fail(c, err)
			return
		}
		c.Next()
	}
}

// CurrentCaller returns the caller stored by AuthMiddleware.
func CurrentCaller(c *gin.Context) (services.Caller, bool) {
	value, exists := c.Get(callerKey)
	if !exists {
		return services.Caller{}, false
	}
	caller, ok := value.(services.Caller)
	return caller, ok
}
