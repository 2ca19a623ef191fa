package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
)

// Only Protect writes this key; handlers read it through CurrentUser.
const currentUserKey = "middleware.current_user"

func setCurrentUser(c *gin.Context, u *entity.User) {
	c.Set(currentUserKey, u)
}

// CurrentUser returns the identity attached by Protect, or nil.
func CurrentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}
