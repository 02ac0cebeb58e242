package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swot-auditor/swot-backend/internal/chat"
	"github.com/swot-auditor/swot-backend/internal/oracle"
	"github.com/swot-auditor/swot-backend/internal/prompts"
)

type Handler struct {
	svc *chat.Service
}

func New(svc *chat.Service) *Handler {
	return &Handler{svc: svc}
}

// Register attaches the chat route to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.send)
}

type sendReq struct {
	History []prompts.Message `json:"history"`
	Message string            `json:"message"`
}

func (h *Handler) send(c *gin.Context) {
	var req sendReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	reply, err := h.svc.Send(c.Request.Context(), req.History, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrEmptyMessage), errors.Is(err, chat.ErrBadRole):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		case oracle.IsTimeout(err):
			c.JSON(http.StatusGatewayTimeout, gin.H{"ok": false, "error": "assistant timed out"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "assistant unavailable"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "reply": reply})
}
