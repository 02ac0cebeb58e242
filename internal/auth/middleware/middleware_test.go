package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authctx "github.com/swot-auditor/swot-backend/internal/auth"
	"github.com/swot-auditor/swot-backend/internal/auth/domain"
	"github.com/swot-auditor/swot-backend/internal/auth/repository"
	"github.com/swot-auditor/swot-backend/internal/auth/service"
)

type stubVerifier map[string]*auth.Token

func (s stubVerifier) VerifyIDToken(_ context.Context, token string) (*auth.Token, error) {
	if t, ok := s[token]; ok {
		return t, nil
	}
	return nil, errors.New("bad token")
}

func TestFirebaseAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	verifier := stubVerifier{
		"good": {UID: "uid-1", Claims: map[string]interface{}{"email": "ana@example.com"}},
	}

	r := gin.New()
	r.Use(FirebaseAuthMiddleware(verifier))
	r.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, authctx.UserFirebaseUID(c)+"|"+authctx.UserEmail(c))
	})

	tests := []struct {
		name   string
		header string
		code   int
		body   string
	}{
		{"missing", "", http.StatusUnauthorized, ""},
		{"not bearer", "Basic abc", http.StatusUnauthorized, ""},
		{"invalid", "Bearer nope", http.StatusUnauthorized, ""},
		{"valid", "Bearer good", http.StatusOK, "uid-1|ana@example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)
			assert.Equal(t, tt.code, rr.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, rr.Body.String())
			}
		})
	}
}

func TestAccessGates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	store := repository.NewMemoryUserRepository()
	svc := service.NewAuthService(store, []string{"boss@example.com"}, nil)

	sync := func(uid, email, doc string) {
		_, err := svc.SyncUser(ctx, domain.SyncUserRequest{
			FirebaseUID: uid, Email: email, EmailVerified: true, Name: "Nome", PersonType: "PF",
			Document: doc, WhatsApp: "11987654321", UF: "SP", City: "Santos",
		})
		require.NoError(t, err)
	}
	sync("pending", "p@example.com", "12345678909")
	sync("approved", "a@example.com", "98765432100")
	sync("boss", "boss@example.com", "11122233344")
	_, err := svc.Approve(ctx, "approved")
	require.NoError(t, err)

	r := gin.New()
	r.Use(authctx.OptionalUser())
	ok := func(c *gin.Context) {
		require.NotNil(t, authctx.CurrentUser(c))
		c.Status(http.StatusNoContent)
	}
	r.GET("/projects", RequireApproved(svc), ok)
	r.GET("/admin", RequireAdmin(svc), ok)

	tests := []struct {
		path string
		uid  string
		code int
	}{
		{"/projects", "pending", http.StatusForbidden},
		{"/projects", "approved", http.StatusNoContent},
		{"/projects", "boss", http.StatusNoContent},
		{"/projects", "stranger", http.StatusForbidden},
		{"/admin", "approved", http.StatusForbidden},
		{"/admin", "boss", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.path+"/"+tt.uid, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set("X-User-Id", tt.uid)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)
			assert.Equal(t, tt.code, rr.Code)
		})
	}
}
