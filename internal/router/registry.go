package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Registry collects feature modules and registers their routes under /api.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return &Registry{Engine: engine, API: engine.Group("/api")}
}

// Use appends middleware applied to the whole /api group.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

// RegisterAll applies the group middleware and lets every module claim its
// routes. Call once, after all Add calls.
func (r *Registry) RegisterAll() {
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
	}
}
