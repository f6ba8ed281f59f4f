package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar is implemented by handlers that can register their
// routes on a router group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router wires handlers onto a gin engine under a versioned API prefix
type Router struct {
	engine     *gin.Engine
	version    string
	registrars []RouteRegistrar
}

// New creates a new router for the given engine
func New(engine *gin.Engine, version string) *Router {
	if version == "" {
		version = "v1"
	}
	return &Router{
		engine:  engine,
		version: version,
	}
}

// Register adds handlers to be wired on Setup
func (r *Router) Register(registrars ...RouteRegistrar) {
	r.registrars = append(r.registrars, registrars...)
}

// Setup registers all handlers under /api/<version>
func (r *Router) Setup() *gin.RouterGroup {
	api := r.engine.Group("/api/" + r.version)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
	return api
}
