package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swot-auditor/swot-backend/internal/auth"
	"github.com/swot-auditor/swot-backend/internal/auth/domain"
	"github.com/swot-auditor/swot-backend/internal/auth/service"
)

// RequireApproved lets through only users an admin has approved.
func RequireApproved(svc *service.AuthService) gin.HandlerFunc {
	return gate(svc, false)
}

// RequireAdmin lets through only admins.
func RequireAdmin(svc *service.AuthService) gin.HandlerFunc {
	return gate(svc, true)
}

func gate(svc *service.AuthService, admin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := auth.UserFirebaseUID(c)
		if uid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
			return
		}

		user, err := svc.Authorize(c.Request.Context(), uid, admin)
		switch {
		case err == nil:
		case errors.Is(err, domain.ErrUserNotFound):
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"ok": false, "error": "profile not synced"})
			return
		case errors.Is(err, domain.ErrPendingApproval):
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"ok": false, "error": "pending approval"})
			return
		case service.IsAccessError(err):
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"ok": false, "error": err.Error()})
			return
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to load user"})
			return
		}

		auth.SetUser(c, user)
		c.Next()
	}
}
