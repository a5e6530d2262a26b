package middleware

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/workhub/backend/internal/infrastructure/logger"
	"github.com/workhub/backend/internal/interfaces/http/dto"
)

// TenantIDKey is the gin context key holding the resolved tenant slug
const TenantIDKey = "tenant_id"

// tenantSlugPattern matches lowercase alphanumeric slugs with hyphens,
// 1 to 50 characters, no leading or trailing hyphen.
var tenantSlugPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,48}[a-z0-9])?$`)

// TenantResolver extracts the tenant slug from the URL path, validates
// it and stores it in both the gin context and the request context so
// the logger picks it up.
func TenantResolver() gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("tenant_id")
		if !tenantSlugPattern.MatchString(slug) {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(
				dto.ErrCodeBadRequest,
				"Invalid tenant identifier",
			))
			return
		}

		c.Set(TenantIDKey, slug)

		reqLogger := logger.GetGinLogger(c)
		ctx, _ := logger.WithTenantID(c.Request.Context(), reqLogger, slug)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetTenantID returns the tenant slug resolved by TenantResolver,
// or an empty string when the middleware did not run.
func GetTenantID(c *gin.Context) string {
	return c.GetString(TenantIDKey)
}
