package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	iauth "github.com/vigilohq/vigilo/internal/auth"
	"github.com/vigilohq/vigilo/internal/tenantctx"
	"github.com/vigilohq/vigilo/pkg/errors"
	"github.com/vigilohq/vigilo/pkg/response"
)

// CtxClaimsKey holds the validated JWT claims on the gin context.
const CtxClaimsKey = "authClaims"

// Auth enforces JWT authentication using the supplied JWT service. On
// success the caller identity, including the tenant scope, is injected into
// the request context for the service layer.
func Auth(jwt *iauth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if len(authz) < 8 || !strings.EqualFold(authz[:7], "Bearer ") {
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		token := strings.TrimSpace(authz[7:])
		claims, err := jwt.ValidateAccessToken(token)
		if err != nil {
			// Normalise all validation failures to 401
			c.Header("WWW-Authenticate", "Bearer")
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		c.Set(CtxClaimsKey, claims)

		ctx := tenantctx.WithIdentity(c.Request.Context(), tenantctx.Identity{
			TenantID:  claims.TenantID,
			UserID:    claims.UserID,
			Username:  claims.Username,
			RoleCodes: claims.RoleCodes,
			IPAddress: c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRole allows the request through only when the caller holds one of
// the given role codes.
func RequireRole(codes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := tenantctx.FromContext(c.Request.Context())
		if !ok {
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		for _, code := range codes {
			if identity.HasRole(code) {
				c.Next()
				return
			}
		}

		response.Error(c, errors.ErrForbidden)
		c.Abort()
	}
}
