package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	handlers "github.com/oksasatya/bootcamp-directory/internal/interface/http"
	"github.com/oksasatya/bootcamp-directory/internal/interface/middleware"
)

// CourseModule serves /api/courses and the nested /api/bootcamps/:id/courses.
type CourseModule struct {
	Handler *handlers.CourseHandler
	Guard   *middleware.Guard
}

func NewCourseModule(h *handlers.CourseHandler, guard *middleware.Guard) *CourseModule {
	return &CourseModule{Handler: h, Guard: guard}
}

func (m *CourseModule) Register(rg *gin.RouterGroup) {
	publish := []gin.HandlerFunc{m.Guard.Protect(), m.Guard.Authorize(entity.RolePublisher, entity.RoleAdmin)}

	rg.GET("/bootcamps/:id/courses", m.Handler.List)
	rg.POST("/bootcamps/:id/courses", append(publish, m.Handler.Create)...)

	c := rg.Group("/courses")
	c.GET("", m.Handler.List)
	c.GET("/:id", m.Handler.Get)
	c.PUT("/:id", append(publish, m.Handler.Update)...)
	c.DELETE("/:id", append(publish, m.Handler.Delete)...)
}
