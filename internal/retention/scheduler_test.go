package retention

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swot-auditor/swot-backend/internal/oracle/oracletest"
	"github.com/swot-auditor/swot-backend/internal/projects/domain"
	"github.com/swot-auditor/swot-backend/internal/projects/inflight"
	"github.com/swot-auditor/swot-backend/internal/projects/repository"
	"github.com/swot-auditor/swot-backend/internal/projects/workflow"
	"github.com/swot-auditor/swot-backend/internal/prompts"
)

func seed(t *testing.T, repo *repository.MemoryRepository, status domain.Status, completed time.Time) *domain.Project {
	t.Helper()
	ctx := context.Background()
	p := domain.NewProject("user-1", "ACME", "Dossiê", domain.ModeAuditor, domain.AuditorConsultancy)
	p.Description = "dados sigilosos"
	require.NoError(t, repo.Create(ctx, p))
	p.Status = status
	if !completed.IsZero() {
		p.CompletedAt = &completed
	}
	p.ClientAnswers = domain.StringPtr("respostas")
	require.NoError(t, repo.Save(ctx, p))
	return p
}

func TestJob_RunOnce(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 3, 0, 0, 0, time.UTC)
	repo := repository.NewMemoryRepository()
	guard := inflight.NewMemoryGuard(time.Minute)
	engine := workflow.New(workflow.Deps{
		Repo:    repo,
		Oracle:  oracletest.New(),
		Prompts: prompts.NewMemoryStore(),
		Guard:   guard,
		Signer:  prompts.NewSigner("", ""),
	}, workflow.Config{})

	old := seed(t, repo, domain.StatusCompleted, now.AddDate(0, 0, -45))
	audited := seed(t, repo, domain.StatusAudited, now.AddDate(0, 0, -31))
	recent := seed(t, repo, domain.StatusCompleted, now.AddDate(0, 0, -5))
	busy := seed(t, repo, domain.StatusCompleted, now.AddDate(0, 0, -60))
	open := seed(t, repo, domain.StatusAwaitingAnswers, time.Time{})

	lease, err := guard.Acquire(ctx, busy.ID, domain.StatusAuditing)
	require.NoError(t, err)

	job := NewJob(repo, engine, Config{Days: 30}, nil)
	job.now = func() time.Time { return now }

	rep, err := job.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, Report{Scanned: 3, Purged: 2, Busy: 1}, rep)

	for _, id := range []string{old.ID, audited.ID} {
		p, err := repo.Get(ctx, id)
		require.NoError(t, err)
		assert.True(t, p.Purged())
		assert.Equal(t, domain.PurgeTombstone, p.Description)
		assert.Equal(t, domain.PurgeTombstone, domain.Deref(p.ClientAnswers))
	}
	for _, id := range []string{recent.ID, open.ID, busy.ID} {
		p, err := repo.Get(ctx, id)
		require.NoError(t, err)
		assert.False(t, p.Purged())
	}

	require.NoError(t, lease.Release(ctx))
	rep, err = job.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, Report{Scanned: 1, Purged: 1}, rep)
}

// stuckPurger fails for the listed projects and delegates the rest.
type stuckPurger struct {
	next  Purger
	stuck map[string]bool
}

func (s stuckPurger) PurgeExpired(ctx context.Context, id string) (*workflow.Result, error) {
	if s.stuck[id] {
		return nil, errors.New("storage rejected update")
	}
	return s.next.PurgeExpired(ctx, id)
}

func TestJob_RunOnce_SkipsStuckBatch(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 3, 0, 0, 0, time.UTC)
	repo := repository.NewMemoryRepository()
	engine := workflow.New(workflow.Deps{
		Repo:    repo,
		Oracle:  oracletest.New(),
		Prompts: prompts.NewMemoryStore(),
		Signer:  prompts.NewSigner("", ""),
	}, workflow.Config{})

	// the two oldest candidates fill a whole batch and never purge
	first := seed(t, repo, domain.StatusCompleted, now.AddDate(0, 0, -90))
	second := seed(t, repo, domain.StatusCompleted, now.AddDate(0, 0, -80))
	third := seed(t, repo, domain.StatusCompleted, now.AddDate(0, 0, -70))
	fourth := seed(t, repo, domain.StatusAudited, now.AddDate(0, 0, -60))

	purger := stuckPurger{next: engine, stuck: map[string]bool{first.ID: true, second.ID: true}}
	job := NewJob(repo, purger, Config{Days: 30, Batch: 2}, nil)
	job.now = func() time.Time { return now }

	rep, err := job.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, Report{Scanned: 4, Purged: 2, Failed: 2}, rep)

	for _, id := range []string{third.ID, fourth.ID} {
		p, err := repo.Get(ctx, id)
		require.NoError(t, err)
		assert.True(t, p.Purged(), id)
	}
	for _, id := range []string{first.ID, second.ID} {
		p, err := repo.Get(ctx, id)
		require.NoError(t, err)
		assert.False(t, p.Purged(), id)
	}
}

type failingRepo struct{}

func (failingRepo) ListPurgeCandidates(context.Context, time.Time, int, int) ([]*domain.Project, error) {
	return nil, errors.New("db down")
}

func TestJob_ListFailure(t *testing.T) {
	job := NewJob(failingRepo{}, nil, Config{}, nil)
	_, err := job.RunOnce(context.Background())
	assert.ErrorContains(t, err, "db down")
}

func TestScheduler_InvalidSpec(t *testing.T) {
	job := NewJob(failingRepo{}, nil, Config{Spec: "not a spec"}, nil)
	err := NewScheduler(job).Start(context.Background())
	assert.Error(t, err)
}

func TestScheduler_StartStop(t *testing.T) {
	job := NewJob(failingRepo{}, nil, Config{}, nil)
	s := NewScheduler(job)
	require.NoError(t, s.Start(context.Background()))
	assert.Len(t, s.cron.Entries(), 1)
	s.Stop()
}
