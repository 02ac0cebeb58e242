package repository

import (
	"context"
	"time"

	"github.com/swot-auditor/swot-backend/internal/projects/domain"
)

// Repository is the persistence port used by the workflow engine and the project service.
// Writes replace the whole record; the last writer wins.
type Repository interface {
	// Create assigns a public id and timestamps to p and stores it.
	Create(ctx context.Context, p *domain.Project) error
	Get(ctx context.Context, id string) (*domain.Project, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Project, error)
	Save(ctx context.Context, p *domain.Project) error
	SoftDelete(ctx context.Context, ownerID, id string) error
	// ListPurgeCandidates returns completed, unpurged projects finished before the
	// cutoff, oldest first, skipping the first offset matches.
	ListPurgeCandidates(ctx context.Context, before time.Time, offset, limit int) ([]*domain.Project, error)
}
