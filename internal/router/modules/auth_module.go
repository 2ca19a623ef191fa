package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/bootcamp-directory/internal/interface/http"
	"github.com/oksasatya/bootcamp-directory/internal/interface/middleware"
)

// AuthModule serves /api/auth. Credential endpoints are rate limited per IP and route.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Guard   *middleware.Guard
	Limits  Limits
}

func NewAuthModule(h *handlers.AuthHandler, guard *middleware.Guard, limits Limits) *AuthModule {
	return &AuthModule{Handler: h, Guard: guard, Limits: limits}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")

	auth.POST("/register", m.Limits.PerIPAndPath(10), m.Handler.Register)
	auth.POST("/login", m.Limits.PerIPAndPath(10), m.Handler.Login)
	auth.GET("/logout", m.Handler.Logout)
	auth.POST("/forgotpassword", m.Limits.PerIPAndPath(5), m.Handler.ForgotPassword)
	auth.PUT("/resetpassword/:resettoken", m.Limits.PerIPAndPath(30), m.Handler.ResetPassword)

	me := auth.Group("/")
	me.Use(m.Guard.Protect(), m.Limits.PerUser(120))
	{
		me.GET("/me", m.Handler.Me)
		me.PUT("/updatedetails", m.Handler.UpdateDetails)
		me.PUT("/updatepassword", m.Handler.UpdatePassword)
	}
}
