package router

import "github.com/gin-gonic/gin"

// Module is a feature unit that owns a slice of the route table.
type Module interface {
	Register(rg *gin.RouterGroup)
}
