package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swot-auditor/swot-backend/internal/auth/domain"
	"github.com/swot-auditor/swot-backend/internal/auth/repository"
)

func profile(uid, email, doc string) domain.SyncUserRequest {
	return domain.SyncUserRequest{
		FirebaseUID:   uid,
		Email:         email,
		EmailVerified: true,
		Name:          "Ana Souza",
		PersonType:    "PF",
		Document:      doc,
		WhatsApp:      "11987654321",
		UF:            "SP",
		City:          "Campinas",
	}
}

func TestAuthService_SyncUser_PendingByDefault(t *testing.T) {
	store := repository.NewMemoryUserRepository()
	svc := NewAuthService(store, []string{"Boss@Example.com"}, nil)
	ctx := context.Background()

	u, err := svc.SyncUser(ctx, profile("uid-1", "ana@example.com", "123.456.789-09"))
	require.NoError(t, err)
	assert.False(t, u.IsApproved)
	assert.False(t, u.IsAdmin)
	assert.Equal(t, "12345678909", u.Document)

	_, err = svc.Authorize(ctx, "uid-1", false)
	assert.ErrorIs(t, err, domain.ErrPendingApproval)
	assert.True(t, IsAccessError(err))

	pending, err := svc.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	approved, err := svc.Approve(ctx, "uid-1")
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)

	_, err = svc.Authorize(ctx, "uid-1", false)
	assert.NoError(t, err)
	_, err = svc.Authorize(ctx, "uid-1", true)
	assert.ErrorIs(t, err, domain.ErrNotAdmin)

	// a later sync does not reset approval
	u, err = svc.SyncUser(ctx, profile("uid-1", "ana@example.com", "123.456.789-09"))
	require.NoError(t, err)
	assert.True(t, u.IsApproved)
}

func TestAuthService_SyncUser_AdminEmail(t *testing.T) {
	store := repository.NewMemoryUserRepository()
	svc := NewAuthService(store, []string{" boss@example.com "}, nil)
	ctx := context.Background()

	u, err := svc.SyncUser(ctx, profile("uid-boss", "BOSS@example.com", "987.654.321-00"))
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)
	assert.True(t, u.IsApproved)

	_, err = svc.Authorize(ctx, "uid-boss", true)
	assert.NoError(t, err)
}

func TestAuthService_SyncUser_UnverifiedAdminEmail(t *testing.T) {
	svc := NewAuthService(repository.NewMemoryUserRepository(), []string{"boss@example.com"}, nil)

	req := profile("uid-x", "boss@example.com", "987.654.321-00")
	req.EmailVerified = false
	u, err := svc.SyncUser(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, u.IsAdmin)
	assert.False(t, u.IsApproved)
}

func TestAuthService_SyncUser_PromotesExisting(t *testing.T) {
	store := repository.NewMemoryUserRepository()
	ctx := context.Background()

	_, err := NewAuthService(store, nil, nil).SyncUser(ctx, profile("uid-1", "ana@example.com", "12345678909"))
	require.NoError(t, err)

	u, err := NewAuthService(store, []string{"ana@example.com"}, nil).SyncUser(ctx, profile("uid-1", "ana@example.com", "12345678909"))
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)

	stored, err := store.GetByFirebaseUID(ctx, "uid-1")
	require.NoError(t, err)
	assert.True(t, stored.IsApproved)
}

func TestAuthService_SyncUser_Errors(t *testing.T) {
	svc := NewAuthService(repository.NewMemoryUserRepository(), nil, nil)
	ctx := context.Background()

	_, err := svc.SyncUser(ctx, profile("uid-1", "ana@example.com", "111.111.111-11"))
	assert.ErrorIs(t, err, domain.ErrInvalidProfileReq)

	_, err = svc.SyncUser(ctx, profile("uid-1", "ana@example.com", "12345678909"))
	require.NoError(t, err)
	_, err = svc.SyncUser(ctx, profile("uid-2", "other@example.com", "12345678909"))
	assert.ErrorIs(t, err, domain.ErrDocumentTaken)

	_, err = svc.Authorize(ctx, "ghost", false)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
