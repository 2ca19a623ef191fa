package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/internal/interface/middleware"
	"github.com/oksasatya/bootcamp-directory/pkg/apperror"
	"github.com/oksasatya/bootcamp-directory/pkg/response"
	"github.com/oksasatya/bootcamp-directory/pkg/validation"
)

// fail writes err as an API error. Internal and upstream failures are logged
// with their cause; the client only sees the kind's message.
func fail(c *gin.Context, logger *logrus.Logger, err error) {
	kind := apperror.KindOf(err)
	if logger != nil && (kind == apperror.KindInternal || kind == apperror.KindUpstream) {
		logger.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
			"kind":       kind,
		}).Error("request failed")
	}
	response.AppError(c, err)
}

// invalid writes a binding error with per-field details.
func invalid(c *gin.Context, err error) {
	response.Fail(c, http.StatusBadRequest, "invalid payload", response.ErrorBody{
		Code:    apperror.KindValidation,
		Details: validation.ToDetails(err),
	})
}

// actor returns the identity attached by the guard. A missing identity is
// never anonymous success.
func actor(c *gin.Context) (*entity.User, bool) {
	u := middleware.CurrentUser(c)
	if u == nil {
		response.AppError(c, apperror.Unauthenticated("not authorized to access this route"))
		return nil, false
	}
	return u, true
}
