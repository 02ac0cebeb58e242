package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/swot-auditor/swot-backend/internal/auth/domain"
)

const CtxUser = "auth_user"

// SetUser stores the loaded profile for downstream handlers.
func SetUser(c *gin.Context, u *domain.User) {
	c.Set(CtxUser, u)
}

// CurrentUser returns the profile stored by the access gates, or nil.
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(CtxUser)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}
