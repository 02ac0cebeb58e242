// Package inflight keeps at most one oracle-backed operation running per project.
package inflight

import (
	"context"
	"errors"
	"time"

	"github.com/swot-auditor/swot-backend/internal/projects/domain"
)

// ErrHeld is returned by Acquire when another operation holds the project.
var ErrHeld = errors.New("project operation already in flight")

// DefaultTTL bounds how long a crashed holder can block a project.
const DefaultTTL = 5 * time.Minute

// Guard hands out per-project leases. The lease value records the transient status
// shown to readers while the operation runs.
type Guard interface {
	Acquire(ctx context.Context, projectID string, status domain.Status) (Lease, error)
	// Current reports the in-flight status, if any.
	Current(ctx context.Context, projectID string) (domain.Status, bool, error)
}

// Lease is released exactly once by its holder.
type Lease interface {
	Release(ctx context.Context) error
}
