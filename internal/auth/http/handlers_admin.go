package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/swot-auditor/swot-backend/internal/auth/domain"
	"github.com/swot-auditor/swot-backend/internal/prompts"
)

func (h *Handler) ListPending(c *gin.Context) {
	users, err := h.authService.ListPending(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to list users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "users": users})
}

func (h *Handler) Approve(c *gin.Context) {
	uid := strings.TrimSpace(c.Param("id"))
	user, err := h.authService.Approve(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to approve user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": user})
}

func (h *Handler) GetPrompts(c *gin.Context) {
	set, err := h.prompts.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to load prompts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "prompts": set})
}

type promptsReq struct {
	Auditor  string `json:"auditor"`
	Engineer string `json:"engineer"`
	Chatbot  string `json:"chatbot"`
	Version  string `json:"version"`
}

// UpdatePrompts merges the non-empty fields into the stored prompt set.
func (h *Handler) UpdatePrompts(c *gin.Context) {
	var req promptsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	if strings.TrimSpace(req.Auditor+req.Engineer+req.Chatbot) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "at least one prompt is required"})
		return
	}

	set, err := h.prompts.Update(c.Request.Context(), prompts.Set{
		Auditor:  req.Auditor,
		Engineer: req.Engineer,
		Chatbot:  req.Chatbot,
		Version:  req.Version,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to update prompts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "prompts": set})
}
