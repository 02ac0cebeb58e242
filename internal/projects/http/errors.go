package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swot-auditor/swot-backend/internal/oracle"
	"github.com/swot-auditor/swot-backend/internal/projects/domain"
)

func statusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation, domain.KindExtractionDegraded:
		return http.StatusBadRequest
	case domain.KindInvalidTransition, domain.KindBusy:
		return http.StatusConflict
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindOracle:
		if oracle.IsTimeout(err) {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// writeError renders err as the standard failure envelope.
func writeError(c *gin.Context, err error) {
	code := statusFor(err)
	body := gin.H{"ok": false, "error": err.Error()}
	if kind := domain.KindOf(err); kind != "" {
		body["kind"] = kind
		body["retryable"] = domain.IsRetryable(err)
	}
	if code == http.StatusInternalServerError {
		body["error"] = "internal error"
	}
	c.JSON(code, body)
}
