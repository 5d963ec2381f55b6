package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bloodbank/bloodbank/backend/go-services/internal/sessions"
	"github.com/bloodbank/bloodbank/backend/go-services/pkg/logger"
)

// Token is the minimal interface for a verified token that can expose claims
type Token interface {
	Claims(v interface{}) error
}

// Verifier is the minimal "verify token -> principal" capability the
// middleware depends on. Implementations: local JWT verification, an external
// OIDC issuer, or the insecure test verifier.
type Verifier interface {
	Verify(ctx context.Context, raw string) (Token, error)
}

// Principal is the verified identity attached to authenticated requests.
type Principal struct {
	Sub   string
	Email string
	Name  string
}

const principalKey = "principal"

// PrincipalFromContext returns the verified principal set by AuthMiddleware.
func PrincipalFromContext(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}

// AuthMiddleware returns a Gin middleware that verifies Bearer tokens using the
// provided verifier and attaches the resulting principal to the context.
// Requests without a usable principal are rejected before any handler runs.
func AuthMiddleware(ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized - Please login first"})
			return
		}
		var token string
		if n, _ := fmt.Sscanf(auth, "Bearer %s", &token); n != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized - Please login first"})
			return
		}

		if black, err := sessions.IsAccessTokenBlacklisted(c.Request.Context(), token); err != nil {
			logger.Warnf("blacklist check failed: %v", err)
		} else if black {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized - Invalid token"})
			return
		}

		verified, err := ver.Verify(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized - Invalid token"})
			return
		}

		var claims map[string]interface{}
		if err := verified.Claims(&claims); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized - Invalid token"})
			return
		}

		sub, _ := claims["sub"].(string)
		if sub == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized - Invalid token"})
			return
		}
		email, _ := claims["email"].(string)
		name, _ := claims["name"].(string)

		c.Set("claims", claims)
		c.Set(principalKey, Principal{Sub: sub, Email: email, Name: name})
		c.Next()
	}
}
