package routes

import (
	"github.com/gin-gonic/gin"

	authhttp "github.com/swot-auditor/swot-backend/internal/auth/http"
	authmw "github.com/swot-auditor/swot-backend/internal/auth/middleware"
	"github.com/swot-auditor/swot-backend/internal/auth/service"
	chathttp "github.com/swot-auditor/swot-backend/internal/chat/http"
	projectshttp "github.com/swot-auditor/swot-backend/internal/projects/http"
)

type V1Deps struct {
	// Authenticate sets firebase_uid; either the Firebase verifier or the dev fallback.
	Authenticate gin.HandlerFunc
	AuthService  *service.AuthService
	Users        *authhttp.Handler
	Projects     *projectshttp.Handler
	Chat         *chathttp.Handler
}

func RegisterV1(r *gin.Engine, dep V1Deps) {
	api := r.Group("/api/v1")
	api.Use(dep.Authenticate)

	dep.Users.Register(api.Group("/users"))

	admin := api.Group("/admin")
	admin.Use(authmw.RequireAdmin(dep.AuthService))
	dep.Users.RegisterAdmin(admin)

	approved := authmw.RequireApproved(dep.AuthService)

	projectsGroup := api.Group("/projects")
	projectsGroup.Use(approved)
	dep.Projects.Register(projectsGroup)

	chatGroup := api.Group("/chat")
	chatGroup.Use(approved)
	dep.Chat.Register(chatGroup)
}
