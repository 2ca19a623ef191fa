package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bootcamp-directory/internal/application"
	"github.com/oksasatya/bootcamp-directory/pkg/response"
)

type ReviewHandler struct {
	Svc    *application.ReviewService
	Logger *logrus.Logger
}

func NewReviewHandler(svc *application.ReviewService, logger *logrus.Logger) *ReviewHandler {
	return &ReviewHandler{Svc: svc, Logger: logger}
}

type createReviewRequest struct {
	Title  string `json:"title" binding:"required,max=100"`
	Text   string `json:"text" binding:"required"`
	Rating int    `json:"rating" binding:"required,rating"`
}

type updateReviewRequest struct {
	Title  *string `json:"title" binding:"omitempty,min=1,max=100"`
	Text   *string `json:"text" binding:"omitempty,min=1"`
	Rating *int    `json:"rating" binding:"omitempty,rating"`
}

// List GET /api/reviews and GET /api/bootcamps/:id/reviews
func (h *ReviewHandler) List(c *gin.Context) {
	out, err := h.Svc.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.List(c, out, "ok")
}

// Get GET /api/reviews/:id
func (h *ReviewHandler) Get(c *gin.Context) {
	r, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, r, "ok", nil)
}

// Create POST /api/bootcamps/:id/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}
	r, err := h.Svc.Create(c.Request.Context(), a, c.Param("id"), application.ReviewInput{
		Title:  req.Title,
		Text:   req.Text,
		Rating: req.Rating,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusCreated, r, "review created", nil)
}

// Update PUT /api/reviews/:id
func (h *ReviewHandler) Update(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req updateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}
	r, err := h.Svc.Update(c.Request.Context(), a, c.Param("id"), application.UpdateReviewInput{
		Title:  req.Title,
		Text:   req.Text,
		Rating: req.Rating,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, r, "review updated", nil)
}

// Delete DELETE /api/reviews/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), a, c.Param("id")); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{}, "review deleted", nil)
}
