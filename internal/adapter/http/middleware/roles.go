package middleware

import (
	"net/http"

	"transporte_xpto/internal/domain/entities"
	"transporte_xpto/pkg"

	"github.com/gin-gonic/gin"
)

var ErrRoleNotAllowed = pkg.NewDomainErrorSimple("FORBIDDEN", "Role not allowed for this operation", http.StatusForbidden)

// RequireRoles must run after Authenticate.
func RequireRoles(roles ...entities.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			c.AbortWithStatusJSON(ErrMissingToken.HTTPStatus, ErrMissingToken.ToHTTPError())
			return
		}
		if !actor.HasRole(roles...) {
			c.AbortWithStatusJSON(ErrRoleNotAllowed.HTTPStatus, ErrRoleNotAllowed.ToHTTPError())
			return
		}
		c.Next()
	}
}
