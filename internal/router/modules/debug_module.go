package modules

import (
	"expvar"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/bootcamp-directory/internal/interface/middleware"
)

// DebugModule exposes expvar (including the aggregator counters) to private networks.
type DebugModule struct {
	Limits Limits
}

func NewDebugModule(limits Limits) *DebugModule { return &DebugModule{Limits: limits} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/debug/vars", middleware.OnlyWhen(middleware.AllowPrivateIP()), m.Limits.PerIP(120), gin.WrapH(expvar.Handler()))
}
