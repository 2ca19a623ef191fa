package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	handlers "github.com/oksasatya/bootcamp-directory/internal/interface/http"
	"github.com/oksasatya/bootcamp-directory/internal/interface/middleware"
)

type BootcampModule struct {
	Handler *handlers.BootcampHandler
	Guard   *middleware.Guard
}

func NewBootcampModule(h *handlers.BootcampHandler, guard *middleware.Guard) *BootcampModule {
	return &BootcampModule{Handler: h, Guard: guard}
}

func (m *BootcampModule) Register(rg *gin.RouterGroup) {
	b := rg.Group("/bootcamps")
	b.GET("", m.Handler.List)
	b.GET("/search", m.Handler.Search)
	b.GET("/radius/:zipcode/:distance", m.Handler.WithinRadius)
	b.GET("/:id", m.Handler.Get)

	publish := []gin.HandlerFunc{m.Guard.Protect(), m.Guard.Authorize(entity.RolePublisher, entity.RoleAdmin)}
	b.POST("", append(publish, m.Handler.Create)...)
	b.PUT("/:id", append(publish, m.Handler.Update)...)
	b.DELETE("/:id", append(publish, m.Handler.Delete)...)
	b.PUT("/:id/photo", append(publish, m.Handler.UploadPhoto)...)
}
