package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/swot-auditor/swot-backend/internal/projects/domain"
	"github.com/swot-auditor/swot-backend/internal/projects/service"
	"github.com/swot-auditor/swot-backend/internal/projects/workflow"
)

type createReq struct {
	ClientName  string `json:"client_name"`
	ProjectName string `json:"project_name"`
	Mode        string `json:"mode"`
	AuditorType string `json:"auditor_type"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := c.GetString("firebase_uid")
	p, err := h.svc.Create(c.Request.Context(), userID, service.CreateInput{
		ClientName:  req.ClientName,
		ProjectName: req.ProjectName,
		Mode:        req.Mode,
		AuditorType: req.AuditorType,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

func (h *Handler) list(c *gin.Context) {
	userID := c.GetString("firebase_uid")
	items, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) get(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	userID := c.GetString("firebase_uid")
	p, err := h.svc.Get(c.Request.Context(), userID, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) delete(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	userID := c.GetString("firebase_uid")
	if err := h.svc.Delete(c.Request.Context(), userID, id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type attachmentsReq struct {
	Attachments []domain.Attachment `json:"attachments"`
}

func (h *Handler) addAttachments(c *gin.Context) {
	var req attachmentsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	h.respond(c, func(userID, id string) (*workflow.Result, error) {
		return h.svc.AddAttachments(c.Request.Context(), userID, id, req.Attachments)
	})
}

type intakeReq struct {
	Description string              `json:"description"`
	Lens        string              `json:"lens"`
	Attachments []domain.Attachment `json:"attachments"`
}

func (h *Handler) submitIntake(c *gin.Context) {
	var req intakeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	h.respond(c, func(userID, id string) (*workflow.Result, error) {
		return h.svc.SubmitIntake(c.Request.Context(), userID, id, workflow.IntakeInput{
			Description: req.Description,
			Lens:        req.Lens,
			Attachments: req.Attachments,
		})
	})
}

func (h *Handler) approvePayment(c *gin.Context) {
	h.respond(c, func(userID, id string) (*workflow.Result, error) {
		return h.svc.ApprovePayment(c.Request.Context(), userID, id)
	})
}

func (h *Handler) generateQuestionnaire(c *gin.Context) {
	h.respond(c, func(userID, id string) (*workflow.Result, error) {
		return h.svc.GenerateQuestionnaire(c.Request.Context(), userID, id)
	})
}

type answersReq struct {
	Answers string `json:"answers"`
}

func (h *Handler) submitAnswers(c *gin.Context) {
	var req answersReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	h.respond(c, func(userID, id string) (*workflow.Result, error) {
		return h.svc.SubmitAnswers(c.Request.Context(), userID, id, req.Answers)
	})
}

func (h *Handler) runAudit(c *gin.Context) {
	h.respond(c, func(userID, id string) (*workflow.Result, error) {
		return h.svc.RunAudit(c.Request.Context(), userID, id)
	})
}

type revisionReq struct {
	Comment     string              `json:"comment"`
	Attachments []domain.Attachment `json:"attachments"`
	Confirm     bool                `json:"confirm"`
}

func (h *Handler) runRevision(c *gin.Context) {
	var req revisionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	h.respond(c, func(userID, id string) (*workflow.Result, error) {
		return h.svc.RunRevision(c.Request.Context(), userID, id, workflow.RevisionInput{
			Comment:     req.Comment,
			Attachments: req.Attachments,
			Confirm:     req.Confirm,
		})
	})
}

type purgeReq struct {
	Confirm bool `json:"confirm"`
}

func (h *Handler) purge(c *gin.Context) {
	var req purgeReq
	// an empty body means "not confirmed"
	_ = c.ShouldBindJSON(&req)
	h.respond(c, func(userID, id string) (*workflow.Result, error) {
		return h.svc.Purge(c.Request.Context(), userID, id, req.Confirm)
	})
}

// respond runs a workflow action and renders its result.
func (h *Handler) respond(c *gin.Context, fn func(userID, id string) (*workflow.Result, error)) {
	id := strings.TrimSpace(c.Param("id"))
	userID := c.GetString("firebase_uid")
	res, err := fn(userID, id)
	if err != nil {
		writeError(c, err)
		return
	}
	body := gin.H{"ok": true, "project": res.Project}
	if len(res.Degraded) > 0 {
		body["degraded"] = res.Degraded
	}
	c.JSON(http.StatusOK, body)
}
