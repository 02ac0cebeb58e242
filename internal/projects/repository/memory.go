package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/swot-auditor/swot-backend/internal/projects/domain"
	"github.com/swot-auditor/swot-backend/internal/projects/utils"
)

// MemoryRepository is an in-process Repository used when no database is configured.
// Every read and write goes through a deep copy.
type MemoryRepository struct {
	mu       sync.RWMutex
	projects map[string]*domain.Project
	deleted  map[string]bool
	now      func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		projects: make(map[string]*domain.Project),
		deleted:  make(map[string]bool),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (m *MemoryRepository) Create(_ context.Context, p *domain.Project) error {
	if err := p.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := 0; i < maxIDAttempts; i++ {
		id, err := utils.NewProjectID()
		if err != nil {
			return err
		}
		if _, taken := m.projects[id]; taken {
			continue
		}
		now := m.now()
		p.ID = id
		p.CreatedAt = now
		p.UpdatedAt = now
		m.projects[id] = p.Clone()
		return nil
	}
	return domain.ErrAlreadyExists
}

func (m *MemoryRepository) Get(_ context.Context, id string) (*domain.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.projects[id]
	if !ok || m.deleted[id] {
		return nil, domain.ErrNotFound
	}
	return p.Clone(), nil
}

func (m *MemoryRepository) ListByOwner(_ context.Context, ownerID string) ([]*domain.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Project, 0)
	for id, p := range m.projects {
		if p.OwnerID == ownerID && !m.deleted[id] {
			out = append(out, p.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryRepository) Save(_ context.Context, p *domain.Project) error {
	if err := p.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[p.ID]; !ok || m.deleted[p.ID] {
		return domain.ErrNotFound
	}
	p.UpdatedAt = m.now()
	m.projects[p.ID] = p.Clone()
	return nil
}

func (m *MemoryRepository) SoftDelete(_ context.Context, ownerID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok || m.deleted[id] || p.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	m.deleted[id] = true
	return nil
}

func (m *MemoryRepository) ListPurgeCandidates(_ context.Context, before time.Time, offset, limit int) ([]*domain.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Project, 0)
	for id, p := range m.projects {
		if m.deleted[id] || p.PurgedAt != nil || p.CompletedAt == nil || !p.CompletedAt.Before(before) {
			continue
		}
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CompletedAt.Equal(*out[j].CompletedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CompletedAt.Before(*out[j].CompletedAt)
	})
	if offset >= len(out) {
		return out[:0], nil
	}
	if offset > 0 {
		out = out[offset:]
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
