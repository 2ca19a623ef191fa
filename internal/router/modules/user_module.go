package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	handlers "github.com/oksasatya/bootcamp-directory/internal/interface/http"
	"github.com/oksasatya/bootcamp-directory/internal/interface/middleware"
)

// UserModule serves /api/users; every route is admin only.
type UserModule struct {
	Handler *handlers.UserHandler
	Guard   *middleware.Guard
}

func NewUserModule(h *handlers.UserHandler, guard *middleware.Guard) *UserModule {
	return &UserModule{Handler: h, Guard: guard}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(m.Guard.Protect(), m.Guard.Authorize(entity.RoleAdmin))
	{
		users.GET("", m.Handler.List)
		users.POST("", m.Handler.Create)
		users.GET("/:id", m.Handler.Get)
		users.PUT("/:id", m.Handler.Update)
		users.DELETE("/:id", m.Handler.Delete)
	}
}
