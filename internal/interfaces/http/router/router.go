// Package router wires handlers into the Gin engine.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/workhub/backend/internal/interfaces/http/middleware"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration. System routes live directly
// under the versioned prefix; workspace routes live under the tenant
// segment and run behind the tenant resolver.
type Router struct {
	engine     *gin.Engine
	apiVersion string
	system     []RouteRegistrar
	tenant     []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// RegisterSystem adds a registrar mounted at /api/<version>
func (r *Router) RegisterSystem(registrars ...RouteRegistrar) *Router {
	r.system = append(r.system, registrars...)
	return r
}

// RegisterTenant adds a registrar mounted at /api/<version>/:tenant_id
func (r *Router) RegisterTenant(registrars ...RouteRegistrar) *Router {
	r.tenant = append(r.tenant, registrars...)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)

	for _, registrar := range r.system {
		registrar.RegisterRoutes(api)
	}

	workspace := api.Group("/:tenant_id")
	workspace.Use(middleware.TenantResolver())

	for _, registrar := range r.tenant {
		registrar.RegisterRoutes(workspace)
	}
}
