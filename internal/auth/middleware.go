package auth

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/bebidas-delivery/internal/apperr"
	"github.com/MikeMC777/bebidas-delivery/internal/httpx"
)

const actorKey = "actor"

func bearer(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// Middleware requires a valid session and, when roles are given, one of them.
func Middleware(iss *Issuer, roles ...Role) gin.HandlerFunc {
	return authenticate(iss, false, roles)
}

// WSMiddleware is Middleware for websocket upgrades, where browsers cannot set
// headers; the token may travel in ?token= instead.
func WSMiddleware(iss *Issuer, roles ...Role) gin.HandlerFunc {
	return authenticate(iss, true, roles)
}

func authenticate(iss *Issuer, allowQuery bool, roles []Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := bearer(c)
		if tok == "" && allowQuery {
			tok = c.Query("token")
		}
		a, err := iss.Parse(tok)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		if len(roles) > 0 {
			allowed := false
			for _, r := range roles {
				if a.Role == r {
					allowed = true
					break
				}
			}
			if !allowed {
				httpx.Fail(c, fmt.Errorf("%w: role %s not allowed", apperr.ErrUnauthorized, a.Role))
				return
			}
		}
		c.Set(actorKey, a)
		c.Next()
	}
}

// FromContext returns the actor set by Middleware.
func FromContext(c *gin.Context) (Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return Actor{}, false
	}
	a, ok := v.(Actor)
	return a, ok
}

// RequireSlug rejects actors that do not manage the :slug path parameter.
func RequireSlug() gin.HandlerFunc {
	return func(c *gin.Context) {
		a, ok := FromContext(c)
		if !ok {
			httpx.Fail(c, apperr.ErrUnauthenticated)
			return
		}
		if !a.CanManageSlug(c.Param("slug")) {
			httpx.Fail(c, fmt.Errorf("%w: store %s is not yours", apperr.ErrUnauthorized, c.Param("slug")))
			return
		}
		c.Next()
	}
}
