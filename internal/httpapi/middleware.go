package httpapi

import (
	"strings"

	"github.com/gin-gonic/gin"

	userports "github.com/everestcart/storefront-api/internal/domains/users/ports"
	"github.com/everestcart/storefront-api/internal/shared/actor"
	"github.com/everestcart/storefront-api/internal/shared/problem"
)

const actorContextKey = "httpapi.actor"

// AuthMiddleware resolves bearer tokens into the acting principal.
type AuthMiddleware struct {
	users userports.Service
}

func NewAuthMiddleware(users userports.Service) *AuthMiddleware {
	return &AuthMiddleware{users: users}
}

// RequireUser rejects requests without a valid session and stores the actor
// on the request context.
func (m *AuthMiddleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			problem.Respond(c, problem.ErrUnauthorized.WithDetail("missing bearer token"))
			c.Abort()
			return
		}
		act, err := m.users.Authenticate(c.Request.Context(), token)
		if err != nil {
			problem.Respond(c, problem.ErrUnauthorized.WithDetail("invalid or expired session"))
			c.Abort()
			return
		}
		c.Set(actorContextKey, act)
		c.Next()
	}
}

// RequireAdmin rejects authenticated requests whose actor is not staff.
// Must run after RequireUser.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		act, ok := ActorFromContext(c)
		if !ok || !act.IsAdmin() {
			problem.Respond(c, problem.ErrForbidden.WithDetail("staff role required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// ActorFromContext returns the authenticated actor set by RequireUser.
func ActorFromContext(c *gin.Context) (actor.Actor, bool) {
	value, exists := c.Get(actorContextKey)
	if !exists {
		return actor.Actor{}, false
	}
	act, ok := value.(actor.Actor)
	return act, ok
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
