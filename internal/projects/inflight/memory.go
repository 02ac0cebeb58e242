package inflight

import (
	"context"
	"sync"
	"time"

	"github.com/swot-auditor/swot-backend/internal/projects/domain"
)

// MemoryGuard is a single-process Guard.
type MemoryGuard struct {
	mu   sync.Mutex
	held map[string]memoryEntry
	ttl  time.Duration
	now  func() time.Time
	seq  uint64
}

type memoryEntry struct {
	seq     uint64
	status  domain.Status
	expires time.Time
}

func NewMemoryGuard(ttl time.Duration) *MemoryGuard {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryGuard{held: make(map[string]memoryEntry), ttl: ttl, now: time.Now}
}

func (g *MemoryGuard) Acquire(_ context.Context, projectID string, status domain.Status) (Lease, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := g.now()
	if e, ok := g.held[projectID]; ok && now.Before(e.expires) {
		return nil, ErrHeld
	}
	g.seq++
	g.held[projectID] = memoryEntry{seq: g.seq, status: status, expires: now.Add(g.ttl)}
	return &memoryLease{guard: g, projectID: projectID, seq: g.seq}, nil
}

func (g *MemoryGuard) Current(_ context.Context, projectID string) (domain.Status, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	e, ok := g.held[projectID]
	if !ok || !g.now().Before(e.expires) {
		return "", false, nil
	}
	return e.status, true, nil
}

type memoryLease struct {
	guard     *MemoryGuard
	projectID string
	seq       uint64
}

func (l *memoryLease) Release(context.Context) error {
	l.guard.mu.Lock()
	defer l.guard.mu.Unlock()
	if e, ok := l.guard.held[l.projectID]; ok && e.seq == l.seq {
		delete(l.guard.held, l.projectID)
	}
	return nil
}
