package http

import (
	"github.com/swot-auditor/swot-backend/internal/auth/service"
	"github.com/swot-auditor/swot-backend/internal/prompts"
)

type Handler struct {
	authService *service.AuthService
	prompts     prompts.Store
}

func New(authService *service.AuthService, promptStore prompts.Store) *Handler {
	return &Handler{
		authService: authService,
		prompts:     promptStore,
	}
}
