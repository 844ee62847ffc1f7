package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"hirehub/internal/domain"
	"hirehub/pkg/logger"
	"hirehub/pkg/token"
)

const principalKey = "hirehub.principal"

type TokenParser interface {
	Parse(raw string) (*token.Claims, error)
}

// Principal is the authenticated caller as asserted by a verified token.
type Principal struct {
	UserID int64
	Role   domain.Role
}

func (p Principal) Is(roles ...domain.Role) bool {
	return slices.Contains(roles, p.Role)
}

// Authenticate requires a valid "Authorization: Bearer <token>" header.
func Authenticate(tokens TokenParser, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(raw))
		if err != nil {
			log.WarnContext(c.Request.Context(), "Geçersiz oturum anahtarı", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
			return
		}

		c.Set(principalKey, Principal{UserID: claims.UserID, Role: claims.Role})
		c.Next()
	}
}

// RequireRoles must run after Authenticate.
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
			return
		}
		if !p.Is(roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"msg": "Access denied"})
			return
		}
		c.Next()
	}
}

func CurrentPrincipal(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}
