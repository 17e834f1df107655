package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hydrabatch/hydrabatch/internal/authz"
)

const principalContextKey = "hydrabatch.principal"

// Principal builds an authz.Principal from the headers an upstream
// authentication proxy is expected to set (directory lookups and
// credential verification are an external collaborator, not this
// service's concern) and stores it on the request context.
func Principal() gin.HandlerFunc {
	return func(c *gin.Context) {
		p := authz.Principal{
			UserID:   c.GetHeader("X-User-Id"),
			UserName: c.GetHeader("X-User-Name"),
			IsAdmin:  strings.EqualFold(c.GetHeader("X-Admin"), "true"),
		}
		if groups := c.GetHeader("X-Group-Ids"); groups != "" {
			for _, g := range strings.Split(groups, ",") {
				if g = strings.TrimSpace(g); g != "" {
					p.GroupIDs = append(p.GroupIDs, g)
				}
			}
		}
		c.Set(principalContextKey, p)
		c.Next()
	}
}

// GetPrincipal retrieves the authz.Principal attached by Principal().
func GetPrincipal(c *gin.Context) authz.Principal {
	v, ok := c.Get(principalContextKey)
	if !ok {
		return authz.Principal{}
	}
	p, ok := v.(authz.Principal)
	if !ok {
		return authz.Principal{}
	}
	return p
}
