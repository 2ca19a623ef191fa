package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/internal/domain/policy"
	"github.com/oksasatya/bootcamp-directory/pkg/apperror"
	"github.com/oksasatya/bootcamp-directory/pkg/helpers"
	"github.com/oksasatya/bootcamp-directory/pkg/response"
)

// Identifier resolves a session token to a user.
type Identifier interface {
	Identify(ctx context.Context, token string) (*entity.User, error)
}

// Guard protects routes with the session cookie and role checks.
type Guard struct {
	Auth   Identifier
	Logger *logrus.Logger
}

func NewGuard(auth Identifier, logger *logrus.Logger) *Guard {
	return &Guard{Auth: auth, Logger: logger}
}

// Protect requires a valid session cookie and attaches its user to the request.
func (g *Guard) Protect() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(helpers.SessionCookie)
		u, err := g.Auth.Identify(c.Request.Context(), token)
		if err != nil {
			if !apperror.Is(err, apperror.KindUnauthenticated) && g.Logger != nil {
				g.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("session lookup failed")
			}
			response.AppError(c, err)
			return
		}
		setCurrentUser(c, u)
		c.Next()
	}
}

// Authorize must run after Protect. It rejects users whose role is not listed.
func (g *Guard) Authorize(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := policy.Authorize(CurrentUser(c), roles...); err != nil {
			response.AppError(c, err)
			return
		}
		c.Next()
	}
}
