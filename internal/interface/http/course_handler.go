package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bootcamp-directory/internal/application"
	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/pkg/response"
)

type CourseHandler struct {
	Svc    *application.CourseService
	Logger *logrus.Logger
}

func NewCourseHandler(svc *application.CourseService, logger *logrus.Logger) *CourseHandler {
	return &CourseHandler{Svc: svc, Logger: logger}
}

type createCourseRequest struct {
	Title                string  `json:"title" binding:"required,max=100"`
	Description          string  `json:"description" binding:"required"`
	Weeks                int     `json:"weeks" binding:"required,gt=0"`
	Tuition              float64 `json:"tuition" binding:"required,gt=0"`
	MinimumSkill         string  `json:"minimum_skill" binding:"required,skill"`
	ScholarshipAvailable bool    `json:"scholarship_available"`
}

type updateCourseRequest struct {
	Title                *string  `json:"title" binding:"omitempty,min=1,max=100"`
	Description          *string  `json:"description" binding:"omitempty,min=1"`
	Weeks                *int     `json:"weeks" binding:"omitempty,gt=0"`
	Tuition              *float64 `json:"tuition" binding:"omitempty,gt=0"`
	MinimumSkill         *string  `json:"minimum_skill" binding:"omitempty,skill"`
	ScholarshipAvailable *bool    `json:"scholarship_available"`
}

// List GET /api/courses and GET /api/bootcamps/:id/courses
func (h *CourseHandler) List(c *gin.Context) {
	out, err := h.Svc.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.List(c, out, "ok")
}

// Get GET /api/courses/:id
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, course, "ok", nil)
}

// Create POST /api/bootcamps/:id/courses
func (h *CourseHandler) Create(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req createCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}
	course, err := h.Svc.Create(c.Request.Context(), a, c.Param("id"), application.CreateCourseInput{
		Title:                req.Title,
		Description:          req.Description,
		Weeks:                req.Weeks,
		Tuition:              req.Tuition,
		MinimumSkill:         entity.Skill(req.MinimumSkill),
		ScholarshipAvailable: req.ScholarshipAvailable,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusCreated, course, "course created", nil)
}

// Update PUT /api/courses/:id
func (h *CourseHandler) Update(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req updateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}
	in := application.UpdateCourseInput{
		Title:                req.Title,
		Description:          req.Description,
		Weeks:                req.Weeks,
		Tuition:              req.Tuition,
		ScholarshipAvailable: req.ScholarshipAvailable,
	}
	if req.MinimumSkill != nil {
		sk := entity.Skill(*req.MinimumSkill)
		in.MinimumSkill = &sk
	}
	course, err := h.Svc.Update(c.Request.Context(), a, c.Param("id"), in)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, course, "course updated", nil)
}

// Delete DELETE /api/courses/:id
func (h *CourseHandler) Delete(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), a, c.Param("id")); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{}, "course deleted", nil)
}
