package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swot-auditor/swot-backend/internal/auth"
	"github.com/swot-auditor/swot-backend/internal/auth/domain"
)

// GetProfile returns the current user's profile
func (h *Handler) GetProfile(c *gin.Context) {
	firebaseUID := auth.UserFirebaseUID(c)
	if firebaseUID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
		return
	}

	user, err := h.authService.GetUserByFirebaseUID(c.Request.Context(), firebaseUID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to load user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "user": user})
}

type syncReq struct {
	Email      string `json:"email,omitempty"`
	Name       string `json:"name"`
	PersonType string `json:"person_type"`
	Document   string `json:"document"`
	WhatsApp   string `json:"whatsapp"`
	UF         string `json:"uf"`
	City       string `json:"city"`
}

// SyncUser stores the profile submitted after Firebase authentication.
func (h *Handler) SyncUser(c *gin.Context) {
	firebaseUID := auth.UserFirebaseUID(c)
	if firebaseUID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
		return
	}

	var body syncReq
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON body"})
		return
	}

	// the token claim wins over the body; a body email only fills the profile
	email := auth.UserEmail(c)
	verified := email != "" && auth.UserEmailVerified(c)
	if email == "" {
		email = body.Email
	}

	user, err := h.authService.SyncUser(c.Request.Context(), domain.SyncUserRequest{
		FirebaseUID:   firebaseUID,
		Email:         email,
		EmailVerified: verified,
		Name:          body.Name,
		PersonType:    body.PersonType,
		Document:      body.Document,
		WhatsApp:      body.WhatsApp,
		UF:            body.UF,
		City:          body.City,
	})
	if err != nil {
		var pe *domain.ProfileError
		switch {
		case errors.As(err, &pe):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": pe.Error(), "field": pe.Field})
		case errors.Is(err, domain.ErrEmailTaken), errors.Is(err, domain.ErrDocumentTaken):
			c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to sync user"})
		}
		return
	}

	_ = h.authService.RecordLogin(c.Request.Context(), firebaseUID)

	c.JSON(http.StatusOK, gin.H{"ok": true, "user": user, "pending_approval": !user.IsApproved})
}
