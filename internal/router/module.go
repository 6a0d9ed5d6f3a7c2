package router

import "github.com/gin-gonic/gin"

// Module registers one feature area's routes on the /api group. Modules
// attach their own auth and rate-limit middleware per route group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
