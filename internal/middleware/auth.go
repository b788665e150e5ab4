package middleware

import (
	"strings"

	"github.com/cyberfanta/shopping-exercise/internal/domain"
	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

type TokenParser interface {
	Parse(raw string) (domain.Principal, error)
}

// Authenticate requires a valid "Bearer <token>" Authorization header.
func Authenticate(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			Fail(c, domain.ErrUnauthorized)
			return
		}

		principal, err := tokens.Parse(strings.TrimSpace(raw))
		if err != nil {
			Fail(c, err)
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// RequireAdmin must run after Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFrom(c)
		if !ok {
			Fail(c, domain.ErrUnauthorized)
			return
		}
		if !principal.IsAdmin() {
			Fail(c, domain.Forbidden("Admin access required"))
			return
		}
		c.Next()
	}
}

func PrincipalFrom(c *gin.Context) (domain.Principal, bool) {
	value, ok := c.Get(principalKey)
	if !ok {
		return domain.Principal{}, false
	}
	principal, ok := value.(domain.Principal)
	return principal, ok
}
