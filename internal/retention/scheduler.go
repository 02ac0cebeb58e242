// Package retention destroys client source data of finished projects on a schedule.
package retention

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/swot-auditor/swot-backend/internal/platform/logger"
	"github.com/swot-auditor/swot-backend/internal/projects/domain"
	"github.com/swot-auditor/swot-backend/internal/projects/workflow"
)

const (
	DefaultSpec  = "0 0 3 * * *"
	DefaultDays  = 30
	DefaultBatch = 100
)

// Candidates lists finished, unpurged projects; repository.Repository satisfies it.
type Candidates interface {
	ListPurgeCandidates(ctx context.Context, before time.Time, offset, limit int) ([]*domain.Project, error)
}

// Purger runs the engine purge without an ownership check.
type Purger interface {
	PurgeExpired(ctx context.Context, projectID string) (*workflow.Result, error)
}

type Config struct {
	Spec  string
	Days  int
	Batch int
}

// Report summarises one pass.
type Report struct {
	Scanned int
	Purged  int
	Busy    int
	Failed  int
}

type Job struct {
	repo   Candidates
	purger Purger
	cfg    Config
	log    *logger.Logger
	now    func() time.Time
}

func NewJob(repo Candidates, purger Purger, cfg Config, log *logger.Logger) *Job {
	if cfg.Spec == "" {
		cfg.Spec = DefaultSpec
	}
	if cfg.Days <= 0 {
		cfg.Days = DefaultDays
	}
	if cfg.Batch <= 0 {
		cfg.Batch = DefaultBatch
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Job{repo: repo, purger: purger, cfg: cfg, log: log, now: time.Now}
}

// RunOnce purges every expired project, one batch at a time. Busy and
// failed projects stay candidates, so later pages skip past them; a busy
// project is picked up by the next pass.
func (j *Job) RunOnce(ctx context.Context) (Report, error) {
	cutoff := j.now().UTC().AddDate(0, 0, -j.cfg.Days)

	var rep Report
	offset := 0
	for {
		items, err := j.repo.ListPurgeCandidates(ctx, cutoff, offset, j.cfg.Batch)
		if err != nil {
			return rep, fmt.Errorf("list purge candidates: %w", err)
		}
		rep.Scanned += len(items)
		for _, p := range items {
			if err := ctx.Err(); err != nil {
				return rep, err
			}
			_, err := j.purger.PurgeExpired(ctx, p.ID)
			switch {
			case err == nil:
				rep.Purged++
			case domain.KindOf(err) == domain.KindBusy:
				rep.Busy++
				offset++
			default:
				rep.Failed++
				offset++
				j.log.Error("retention purge failed", "project_id", p.ID, "error", err)
			}
		}
		if len(items) < j.cfg.Batch {
			break
		}
	}

	j.log.Info("retention pass done",
		"cutoff", cutoff.Format(time.RFC3339),
		"scanned", rep.Scanned,
		"purged", rep.Purged,
		"busy", rep.Busy,
		"failed", rep.Failed,
	)
	return rep, nil
}

type Scheduler struct {
	cron *cron.Cron
	job  *Job
}

func NewScheduler(job *Job) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithSeconds()),
		job:  job,
	}
}

// Start registers the nightly pass and starts the cron loop.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.job.cfg.Spec, func() {
		if _, err := s.job.RunOnce(ctx); err != nil {
			s.job.log.Error("retention pass failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule retention %q: %w", s.job.cfg.Spec, err)
	}

	s.job.log.Info("retention scheduler started", "spec", s.job.cfg.Spec, "days", s.job.cfg.Days)
	s.cron.Start()
	return nil
}

// Stop halts scheduling and waits for a running pass.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
