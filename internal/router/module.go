package router

import "github.com/gin-gonic/gin"

// Module is one resource's routes. Register receives the /api group; a
// module applies its own guards and limits per route.
type Module interface {
	Register(api *gin.RouterGroup)
}
