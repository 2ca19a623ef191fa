package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bootcamp-directory/internal/application"
	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/pkg/helpers"
	"github.com/oksasatya/bootcamp-directory/pkg/response"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Cookies *helpers.Manager
	Logger  *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, cookies *helpers.Manager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Cookies: cookies, Logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Role     string `json:"role" binding:"omitempty,signuprole"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateDetailsRequest struct {
	Name  string `json:"name" binding:"omitempty,max=100"`
	Email string `json:"email" binding:"omitempty,email"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,pwd"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetPasswordRequest struct {
	Password string `json:"password" binding:"required,pwd"`
}

type sessionMeta struct {
	ExpiresAt time.Time `json:"expires_at"`
}

// session sets the cookie and writes the user.
func (h *AuthHandler) session(c *gin.Context, status int, u *entity.User, sess application.Session, msg string) {
	h.Cookies.SetSession(c, sess.Token, sess.ExpiresAt)
	response.OK(c, status, u, msg, sessionMeta{ExpiresAt: sess.ExpiresAt.UTC()})
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}
	u, sess, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     entity.Role(req.Role),
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	h.session(c, http.StatusCreated, u, sess, "registered")
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}
	u, sess, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	h.session(c, http.StatusOK, u, sess, "login successful")
}

// Logout GET /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.OK(c, http.StatusOK, gin.H{}, "logged out", nil)
}

// Me GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	u, err := h.Svc.Me(c.Request.Context(), a.ID)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, u, "ok", nil)
}

// UpdateDetails PUT /api/auth/updatedetails
func (h *AuthHandler) UpdateDetails(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req updateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}
	u, err := h.Svc.UpdateDetails(c.Request.Context(), a, application.UpdateDetailsInput{Name: req.Name, Email: req.Email})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, u, "details updated", nil)
}

// UpdatePassword PUT /api/auth/updatepassword
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}
	u, sess, err := h.Svc.UpdatePassword(c.Request.Context(), a, req.CurrentPassword, req.NewPassword)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	h.session(c, http.StatusOK, u, sess, "password updated")
}

// ForgotPassword POST /api/auth/forgotpassword
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}
	if err := h.Svc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{}, "email sent", nil)
}

// ResetPassword PUT /api/auth/resetpassword/:resettoken
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, err)
		return
	}
	u, sess, err := h.Svc.ResetPassword(c.Request.Context(), c.Param("resettoken"), req.Password)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	h.session(c, http.StatusOK, u, sess, "password reset")
}
