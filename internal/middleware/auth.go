package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/services"
	"go.uber.org/zap"
)

// RequireAuth rejects requests whose credential header does not pass the
// authenticator. On success the resolved identity travels in the request
// context.
func RequireAuth(authenticator services.Authenticator, header string, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		credential := c.GetHeader(header)
		if credential == "" {
			apierrors.Unauthorized(c, "")
			return
		}

		identity, err := authenticator.Authenticate(c.Request.Context(), credential)
		if err != nil {
			if !errors.Is(err, services.ErrUnauthorized) {
				log.Error("authentication failed", zap.Error(err))
				apierrors.InternalError(c, "")
				return
			}
			apierrors.Unauthorized(c, "Invalid or missing credentials")
			return
		}

		c.Request = c.Request.WithContext(services.ContextWithIdentity(c.Request.Context(), identity))
		c.Next()
	}
}

// GetIdentity retrieves the authenticated caller
func GetIdentity(c *gin.Context) (services.Identity, bool) {
	if c.Request == nil {
		return services.Identity{}, false
	}
	return services.IdentityFromContext(c.Request.Context())
}
