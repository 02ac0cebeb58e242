package http

import "github.com/gin-gonic/gin"

// Register attaches project routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.DELETE("/:id", h.delete)
	rg.POST("/:id/attachments", h.addAttachments)

	rg.POST("/:id/intake", h.submitIntake)
	rg.POST("/:id/payment/approve", h.approvePayment)
	rg.POST("/:id/questionnaire", h.generateQuestionnaire)
	rg.POST("/:id/answers", h.submitAnswers)
	rg.POST("/:id/audit", h.runAudit)
	rg.POST("/:id/revision", h.runRevision)
	rg.POST("/:id/purge", h.purge)
}
