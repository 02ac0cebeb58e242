package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/swot-auditor/swot-backend/internal/auth/domain"
)

// MemoryUserRepository mirrors UserRepository in process, for runs without Postgres.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
	now   func() time.Time
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[string]domain.User),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (m *MemoryUserRepository) GetByFirebaseUID(_ context.Context, uid string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[uid]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (m *MemoryUserRepository) Upsert(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for uid, u := range m.users {
		if uid == user.FirebaseUID {
			continue
		}
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
		if u.Document == user.Document {
			return domain.ErrDocumentTaken
		}
	}

	now := m.now()
	if existing, ok := m.users[user.FirebaseUID]; ok {
		user.IsAdmin = existing.IsAdmin
		user.IsApproved = existing.IsApproved
		user.CreatedAt = existing.CreatedAt
		user.LastLoginAt = existing.LastLoginAt
	} else {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	m.users[user.FirebaseUID] = *user
	return nil
}

func (m *MemoryUserRepository) update(uid string, fn func(*domain.User)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[uid]
	if !ok {
		return domain.ErrUserNotFound
	}
	fn(&u)
	m.users[uid] = u
	return nil
}

func (m *MemoryUserRepository) Promote(_ context.Context, uid string) error {
	return m.update(uid, func(u *domain.User) {
		u.IsAdmin, u.IsApproved = true, true
		u.UpdatedAt = m.now()
	})
}

func (m *MemoryUserRepository) Approve(_ context.Context, uid string) error {
	return m.update(uid, func(u *domain.User) {
		u.IsApproved = true
		u.UpdatedAt = m.now()
	})
}

func (m *MemoryUserRepository) UpdateLastLogin(_ context.Context, uid string) error {
	return m.update(uid, func(u *domain.User) {
		now := m.now()
		u.LastLoginAt = &now
	})
}

func (m *MemoryUserRepository) ListPending(context.Context) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.User, 0)
	for _, u := range m.users {
		if !u.IsApproved {
			cp := u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
