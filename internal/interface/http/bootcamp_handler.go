package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bootcamp-directory/internal/application"
	"github.com/oksasatya/bootcamp-directory/pkg/apperror"
	"github.com/oksasatya/bootcamp-directory/pkg/response"
)

type BootcampHandler struct {
	Svc    *application.BootcampService
	Logger *logrus.Logger
}

func NewBootcampHandler(svc *application.BootcampService, logger *logrus.Logger) *BootcampHandler {
	return &BootcampHandler{Svc: svc, Logger: logger}
}

type createBootcampRequest struct {
	Name          string   `json:"name" binding:"required,max=50"`
	Description   string   `json:"description" binding:"required,max=500"`
	Website       string   `json:"website" binding:"omitempty,url"`
	Phone         string   `json:"phone" binding:"omitempty,max=20"`
	Email         string   `json:"email" binding:"omitempty,email"`
	Address       string   `json:"address" binding:"required"`
	Zipcode       string   `json:"zipcode" binding:"required,max=12"`
	Careers       []string `json:"careers" binding:"required,min=1,dive,required"`
	Housing       bool     `json:"housing"`
	JobAssistance bool     `json:"job_assistance"`
	JobGuarantee  bool     `json:"job_guarantee"`
	AcceptGI      bool     `json:"accept_gi"`
}

type updateBootcampRequest struct {
	Name          *string  `json:"name" binding:"omitempty,min=1,max=50"`
	Description   *string  `json:"description" binding:"omitempty,max=500"`
	Website       *string  `json:"website" binding:"omitempty,url"`
	Phone         *string  `json:"phone" binding:"omitempty,max=20"`
	Email         *string  `json:"email" binding:"omitempty,email"`
	Address       *string  `json:"address" binding:"omitempty,min=1"`
	Zipcode       *string  `json:"zipcode" binding:"omitempty,min=1,max=12"`
	Careers       []string `json:"careers" binding:"omitempty,min=1,dive,required"`
	Housing       *bool    `json:"housing"`
	JobAssistance *bool    `json:"job_assistance"`
	JobGuarantee  *bool    `json:"job_guarantee"`
	AcceptGI      *bool    `json:"accept_gi"`
}

// List GET /api/bootcamps
func (h *BootcampHandler) List(c *gin.Context) {
	out, err := h.Svc.List(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.List(c, out, "ok")
}

// Get GET /api/bootcamps/:id
func (h *BootcampHandler) Get(c *gin.Context) {
	b, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, b, "ok", nil)
}

// Search GET /api/bootcamps/search?q=
func (h *BootcampHandler) Search(c *gin.Context) {
	out, err := h.Svc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.List(c, out, "ok")
}

// WithinRadius GET /api/bootcamps/radius/:zipcode/:distance (distance in km)
func (h *BootcampHandler) WithinRadius(c *gin.Context) {
	distance, err := strconv.ParseFloat(c.Param("distance"), 64)
	if err != nil {
		fail(c, h.Logger, apperror.Validation("distance must be a number of kilometres"))
		return
	}
	out, err := h.Svc.WithinRadius(c.Request.Context(), c.Param("zipcode"), distance)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.List(c, out, "ok")
}

// Create POST /api/bootcamps
func (h *BootcampHandler) Create(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req createBootcampRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}
	b, err := h.Svc.Create(c.Request.Context(), a, application.CreateBootcampInput{
		Name:          req.Name,
		Description:   req.Description,
		Website:       req.Website,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		Zipcode:       req.Zipcode,
		Careers:       req.Careers,
		Housing:       req.Housing,
		JobAssistance: req.JobAssistance,
		JobGuarantee:  req.JobGuarantee,
		AcceptGI:      req.AcceptGI,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusCreated, b, "bootcamp created", nil)
}

// Update PUT /api/bootcamps/:id
func (h *BootcampHandler) Update(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req updateBootcampRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}
	b, err := h.Svc.Update(c.Request.Context(), a, c.Param("id"), application.UpdateBootcampInput{
		Name:          req.Name,
		Description:   req.Description,
		Website:       req.Website,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		Zipcode:       req.Zipcode,
		Careers:       req.Careers,
		Housing:       req.Housing,
		JobAssistance: req.JobAssistance,
		JobGuarantee:  req.JobGuarantee,
		AcceptGI:      req.AcceptGI,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, b, "bootcamp updated", nil)
}

// Delete DELETE /api/bootcamps/:id
func (h *BootcampHandler) Delete(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), a, c.Param("id")); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{}, "bootcamp deleted", nil)
}

// UploadPhoto PUT /api/bootcamps/:id/photo (multipart field "file")
func (h *BootcampHandler) UploadPhoto(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		fail(c, h.Logger, apperror.Validation("please upload a file"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		fail(c, h.Logger, apperror.Wrap(apperror.KindInternal, "could not read upload", err))
		return
	}
	defer func() { _ = f.Close() }()

	b, err := h.Svc.UploadPhoto(c.Request.Context(), a, c.Param("id"), application.PhotoUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, b, "photo uploaded", nil)
}
