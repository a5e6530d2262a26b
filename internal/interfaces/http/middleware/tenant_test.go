package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTenantRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/:tenant_id/ping", TenantResolver(), func(c *gin.Context) {
		c.String(http.StatusOK, GetTenantID(c))
	})
	return r
}

func TestTenantResolver(t *testing.T) {
	r := newTenantRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/acme-corp/ping", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "acme-corp", w.Body.String())
}

func TestTenantResolverRejectsInvalidSlug(t *testing.T) {
	r := newTenantRouter()

	for _, slug := range []string{"Acme", "-leading", "trailing-", "has_underscore"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/"+slug+"/ping", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, slug)
	}
}
