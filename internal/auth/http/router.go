package http

import "github.com/gin-gonic/gin"

// Register attaches the signed-in user routes.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/me", h.GetProfile)
	rg.POST("/sync", h.SyncUser)
}

// RegisterAdmin attaches admin routes; the caller applies the admin gate.
func (h *Handler) RegisterAdmin(rg *gin.RouterGroup) {
	rg.GET("/users/pending", h.ListPending)
	rg.POST("/users/:id/approve", h.Approve)
	rg.GET("/prompts", h.GetPrompts)
	rg.PUT("/prompts", h.UpdatePrompts)
}
