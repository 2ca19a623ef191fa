package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	handlers "github.com/oksasatya/bootcamp-directory/internal/interface/http"
	"github.com/oksasatya/bootcamp-directory/internal/interface/middleware"
)

// ReviewModule serves /api/reviews and the nested /api/bootcamps/:id/reviews.
type ReviewModule struct {
	Handler *handlers.ReviewHandler
	Guard   *middleware.Guard
}

func NewReviewModule(h *handlers.ReviewHandler, guard *middleware.Guard) *ReviewModule {
	return &ReviewModule{Handler: h, Guard: guard}
}

func (m *ReviewModule) Register(rg *gin.RouterGroup) {
	review := []gin.HandlerFunc{m.Guard.Protect(), m.Guard.Authorize(entity.RoleUser, entity.RoleAdmin)}

	rg.GET("/bootcamps/:id/reviews", m.Handler.List)
	rg.POST("/bootcamps/:id/reviews", append(review, m.Handler.Create)...)

	r := rg.Group("/reviews")
	r.GET("", m.Handler.List)
	r.GET("/:id", m.Handler.Get)
	r.PUT("/:id", append(review, m.Handler.Update)...)
	r.DELETE("/:id", append(review, m.Handler.Delete)...)
}
