package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"paintingauction/internal/auth"
	"paintingauction/internal/http/httperr"
)

const identityKey = "identity"

type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// Authenticate requires a valid bearer token and stores the caller's
// identity on the context.
func Authenticate(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.ErrorResponse{Error: "authorization header required"})
			return
		}
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.ErrorResponse{Error: "authorization header must be a bearer token"})
			return
		}

		id, err := verifier.Verify(header)
		if err != nil {
			zap.L().Debug("token_rejected", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.ErrorResponse{Error: "invalid or expired token"})
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// RequireRoles lets through only identities holding one of roles. It must run
// after Authenticate.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.ErrorResponse{Error: "authentication required"})
			return
		}
		for _, r := range roles {
			if id.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, httperr.ErrorResponse{Error: "insufficient role"})
	}
}

func IdentityFrom(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	return id, ok
}
