package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-hr-events/internal/core/auth"
	resp "go-hr-events/internal/transport/http/response"
)

// KeyActorID holds the acting employee id resolved from a bearer token.
const KeyActorID = "actorId"

// AuthJWT requires a valid bearer token, optionally with a specific role.
func AuthJWT(j *auth.JWTer, requireRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, "invalid token"))
			return
		}
		if requireRole != "" && claims.Role != requireRole {
			c.AbortWithStatusJSON(http.StatusForbidden, resp.Error(resp.CodeForbidden, "forbidden"))
			return
		}
		c.Set("claims", claims)
		if claims.UID != 0 {
			c.Set(KeyActorID, claims.UID)
		}
		c.Next()
	}
}

// ActorFromJWT resolves the acting employee from a bearer token when one is
// present. No token is fine: the audit payload records the actor as unknown.
func ActorFromJWT(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if strings.HasPrefix(ah, "Bearer ") {
			if claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer ")); err == nil && claims.UID != 0 {
				c.Set(KeyActorID, claims.UID)
			}
		}
		c.Next()
	}
}
