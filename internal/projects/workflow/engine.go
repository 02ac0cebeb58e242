// Package workflow drives projects through the audit state machine.
package workflow

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/swot-auditor/swot-backend/internal/oracle"
	"github.com/swot-auditor/swot-backend/internal/platform/logger"
	"github.com/swot-auditor/swot-backend/internal/projects/domain"
	"github.com/swot-auditor/swot-backend/internal/projects/events"
	"github.com/swot-auditor/swot-backend/internal/projects/extract"
	"github.com/swot-auditor/swot-backend/internal/projects/inflight"
	"github.com/swot-auditor/swot-backend/internal/projects/repository"
	"github.com/swot-auditor/swot-backend/internal/prompts"
)

const DefaultOracleTimeout = 120 * time.Second

type Config struct {
	OracleTimeout time.Duration
	// StrictExtraction fails a transition when the primary document tag is missing.
	StrictExtraction bool
}

type Deps struct {
	Repo    repository.Repository
	Oracle  oracle.Oracle
	Prompts prompts.Store
	Guard   inflight.Guard
	Events  events.Publisher
	Signer  *prompts.Signer
	Log     *logger.Logger
}

// Engine owns every status change of a project.
type Engine struct {
	repo    repository.Repository
	oracle  oracle.Oracle
	prompts prompts.Store
	guard   inflight.Guard
	events  events.Publisher
	signer  *prompts.Signer
	log     *logger.Logger
	cfg     Config
	now     func() time.Time
}

func New(d Deps, cfg Config) *Engine {
	if cfg.OracleTimeout <= 0 {
		cfg.OracleTimeout = DefaultOracleTimeout
	}
	if d.Guard == nil {
		d.Guard = inflight.NewMemoryGuard(inflight.DefaultTTL)
	}
	if d.Events == nil {
		d.Events = events.Nop{}
	}
	if d.Prompts == nil {
		d.Prompts = prompts.NewMemoryStore()
	}
	if d.Signer == nil {
		d.Signer = prompts.NewSigner("", "")
	}
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	return &Engine{
		repo:    d.Repo,
		oracle:  d.Oracle,
		prompts: d.Prompts,
		guard:   d.Guard,
		events:  d.Events,
		signer:  d.Signer,
		log:     d.Log.With("component", "workflow"),
		cfg:     cfg,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Result is returned by every successful transition.
type Result struct {
	Project  *domain.Project `json:"project"`
	Degraded []Degradation   `json:"degraded,omitempty"`
}

type IntakeInput struct {
	Description string
	Lens        string
	Attachments []domain.Attachment
}

type RevisionInput struct {
	Comment     string
	Attachments []domain.Attachment
	Confirm     bool
}

// View returns the project with its in-flight status overlaid.
func (e *Engine) View(ctx context.Context, userID, projectID string) (*domain.Project, error) {
	p, err := e.load(ctx, "get", userID, projectID)
	if err != nil {
		return nil, err
	}
	e.overlay(ctx, p)
	return p, nil
}

func (e *Engine) overlay(ctx context.Context, p *domain.Project) {
	status, held, err := e.guard.Current(ctx, p.ID)
	if err != nil {
		e.log.Warn("in-flight lookup failed", "project_id", p.ID, "error", err)
		return
	}
	if held && status.InFlight() {
		p.Status = status
	}
}

// Overlay applies in-flight statuses to a list of projects.
func (e *Engine) Overlay(ctx context.Context, ps []*domain.Project) {
	for _, p := range ps {
		e.overlay(ctx, p)
	}
}

// SubmitIntake generates the pre-report and moves the project to AWAITING_PAYMENT.
func (e *Engine) SubmitIntake(ctx context.Context, userID, projectID string, in IntakeInput) (*Result, error) {
	const op = "submit_intake"
	return e.transition(ctx, op, userID, projectID, domain.StatusAnalyzingPre, func(p *domain.Project, s Strategy) (*Result, error) {
		if err := requireStatus(op, p, domain.StatusIntake, domain.StatusAnalyzingPre); err != nil {
			return nil, err
		}
		if p.Purged() {
			return nil, domain.Validation(op, "project data was purged")
		}
		if err := applyIntake(op, p, in); err != nil {
			return nil, err
		}

		content, degraded, err := e.call(ctx, op, p, s, s.PreReport(p, e.signer.Today()))
		if err != nil {
			return nil, err
		}
		p.PreReport = domain.StringPtr(e.signer.Sign(content))
		p.Tier = domain.ClassifyTier(content)
		p.Status = domain.StatusAwaitingPayment
		return e.commit(ctx, op, p, degraded)
	})
}

func applyIntake(op string, p *domain.Project, in IntakeInput) error {
	if d := strings.TrimSpace(in.Description); d != "" {
		p.Description = d
	}
	for _, a := range in.Attachments {
		if err := a.Validate(); err != nil {
			return domain.Validation(op, err.Error())
		}
	}
	p.Attachments = append(p.Attachments, in.Attachments...)
	if p.Description == "" && len(p.Attachments) == 0 {
		return domain.Validation(op, "description or at least one attachment is required")
	}

	lens, ok := domain.ParseLens(in.Lens)
	if !ok {
		return domain.Validation(op, "lens must be A, B or C")
	}
	if lens != "" {
		p.Lens = lens
	}
	switch {
	case p.RequiresLens() && p.Lens == "":
		return domain.Validation(op, "lens is required for consultancy audits")
	case !p.RequiresLens() && p.Lens != "":
		return domain.Validation(op, "lens only applies to consultancy audits")
	}
	return nil
}

// AddAttachments appends source files while the project is still at intake.
func (e *Engine) AddAttachments(ctx context.Context, userID, projectID string, files []domain.Attachment) (*Result, error) {
	const op = "add_attachments"
	if len(files) == 0 {
		return nil, domain.Validation(op, "at least one attachment is required")
	}
	for _, a := range files {
		if err := a.Validate(); err != nil {
			return nil, domain.Validation(op, err.Error())
		}
	}
	return e.transition(ctx, op, userID, projectID, "", func(p *domain.Project, _ Strategy) (*Result, error) {
		if p.Status != domain.StatusIntake {
			return nil, &domain.Error{Kind: domain.KindInvalidTransition, Op: op, Msg: "attachments can only be added at intake"}
		}
		if p.Purged() {
			return nil, domain.Validation(op, "project data was purged")
		}
		p.Attachments = append(p.Attachments, files...)
		return e.commit(ctx, op, p, nil)
	})
}

// ApprovePayment opens the questionnaire stage. No oracle call is made.
func (e *Engine) ApprovePayment(ctx context.Context, userID, projectID string) (*Result, error) {
	const op = "approve_payment"
	return e.transition(ctx, op, userID, projectID, "", func(p *domain.Project, _ Strategy) (*Result, error) {
		if err := requireStatus(op, p, domain.StatusAwaitingPayment, domain.StatusPaidApproved); err != nil {
			return nil, err
		}
		p.Status = domain.StatusPaidApproved
		return e.commit(ctx, op, p, nil)
	})
}

// GenerateQuestionnaire asks the oracle for the client questionnaire.
func (e *Engine) GenerateQuestionnaire(ctx context.Context, userID, projectID string) (*Result, error) {
	const op = "generate_questionnaire"
	return e.transition(ctx, op, userID, projectID, domain.StatusAnalyzingQuestions, func(p *domain.Project, s Strategy) (*Result, error) {
		if err := requireStatus(op, p, domain.StatusPaidApproved, domain.StatusAnalyzingQuestions); err != nil {
			return nil, err
		}
		if p.Purged() {
			return nil, domain.Validation(op, "project data was purged")
		}
		content, degraded, err := e.call(ctx, op, p, s, s.Questionnaire(p, e.signer.Today()))
		if err != nil {
			return nil, err
		}
		p.Questionnaire = domain.StringPtr(e.signer.Sign(content))
		p.Status = domain.StatusAwaitingAnswers
		return e.commit(ctx, op, p, degraded)
	})
}

// SubmitAnswers generates the final documents and completes the project.
func (e *Engine) SubmitAnswers(ctx context.Context, userID, projectID, answers string) (*Result, error) {
	const op = "submit_answers"
	answers = strings.TrimSpace(answers)
	if answers == "" {
		return nil, domain.Validation(op, "answers are required")
	}
	return e.transition(ctx, op, userID, projectID, domain.StatusAnalyzingFinal, func(p *domain.Project, s Strategy) (*Result, error) {
		if err := requireStatus(op, p, domain.StatusAwaitingAnswers, domain.StatusAnalyzingFinal); err != nil {
			return nil, err
		}
		if p.Purged() {
			return nil, domain.Validation(op, "project data was purged")
		}
		p.ClientAnswers = domain.StringPtr(answers)

		raw, err := e.generate(ctx, op, p, s, s.Final(p, e.signer.Today()))
		if err != nil {
			return nil, err
		}
		degraded := s.MapFinal(p, raw, e.signer.Sign)
		if err := e.strict(op, degraded); err != nil {
			return nil, err
		}
		now := e.now()
		p.Version = domain.InitialVersion
		p.CompletedAt = &now
		p.Status = domain.StatusCompleted
		return e.commit(ctx, op, p, degraded)
	})
}

// RunAudit runs the compliance audit over the completed auditor document.
func (e *Engine) RunAudit(ctx context.Context, userID, projectID string) (*Result, error) {
	const op = "run_audit"
	return e.transition(ctx, op, userID, projectID, domain.StatusAuditing, func(p *domain.Project, s Strategy) (*Result, error) {
		if err := requireStatus(op, p, domain.StatusCompleted, domain.StatusAuditing); err != nil {
			return nil, err
		}
		stage, ok := s.Audit(p, e.signer.Today())
		if !ok {
			return nil, &domain.Error{Kind: domain.KindInvalidTransition, Op: op, Msg: "audit is not available in engineer mode"}
		}
		if domain.Deref(*s.Content(p)) == "" {
			return nil, domain.Validation(op, "there is no document to audit")
		}
		content, degraded, err := e.call(ctx, op, p, s, stage)
		if err != nil {
			return nil, err
		}
		p.AuditReport = domain.StringPtr(e.signer.Sign(content))
		p.Status = domain.StatusAudited
		return e.commit(ctx, op, p, degraded)
	})
}

// RunRevision regenerates the main document from a comment and new files.
// Status never changes; the version label is bumped.
func (e *Engine) RunRevision(ctx context.Context, userID, projectID string, in RevisionInput) (*Result, error) {
	const op = "run_revision"
	comment := strings.TrimSpace(in.Comment)
	if !in.Confirm {
		return nil, domain.Validation(op, "revision must be confirmed")
	}
	if comment == "" && len(in.Attachments) == 0 {
		return nil, domain.Validation(op, "a comment or a new attachment is required")
	}
	for _, a := range in.Attachments {
		if err := a.Validate(); err != nil {
			return nil, domain.Validation(op, err.Error())
		}
	}

	return e.transition(ctx, op, userID, projectID, "", func(p *domain.Project, s Strategy) (*Result, error) {
		if !p.Status.Revisable() {
			return nil, domain.InvalidTransition(op, p.Status, p.Status)
		}
		target := s.Content(p)
		if domain.Deref(*target) == "" {
			return nil, domain.Validation(op, "there is no document to revise")
		}
		stage := s.Revision(p, e.signer.Today(), comment, in.Attachments)
		raw, err := e.generate(ctx, op, p, s, stage)
		if err != nil {
			return nil, err
		}
		content, deg := stage.Resolve(raw)
		var degraded []Degradation
		if deg != nil {
			// a placeholder would overwrite the existing document
			if deg.Placeholder() {
				return nil, domain.Degraded(op, deg.Document, "response too short to replace the current document")
			}
			degraded = append(degraded, *deg)
		}
		if err := e.strict(op, degraded); err != nil {
			return nil, err
		}
		*target = domain.StringPtr(e.signer.Sign(content))
		p.Version = domain.NextVersion(p.Version)
		return e.commit(ctx, op, p, degraded)
	})
}

// Purge destroys client-provided source data. Purging twice changes nothing.
func (e *Engine) Purge(ctx context.Context, userID, projectID string, confirm bool) (*Result, error) {
	const op = "purge"
	if !confirm {
		return nil, domain.Validation(op, "purge must be confirmed")
	}
	return e.transition(ctx, op, userID, projectID, "", func(p *domain.Project, _ Strategy) (*Result, error) {
		return e.purge(ctx, op, p)
	})
}

// Delete soft-deletes a project while holding the in-flight guard, so it is
// refused with BUSY while any operation, revisions included, is running.
func (e *Engine) Delete(ctx context.Context, userID, projectID string) error {
	const op = "delete"
	_, err := e.transition(ctx, op, userID, projectID, "", func(p *domain.Project, _ Strategy) (*Result, error) {
		if err := e.repo.SoftDelete(ctx, p.OwnerID, p.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.NotFound(op)
			}
			return nil, err
		}
		return &Result{Project: p}, nil
	})
	return err
}

// PurgeExpired purges a project on behalf of the retention job.
func (e *Engine) PurgeExpired(ctx context.Context, projectID string) (*Result, error) {
	const op = "purge_expired"
	return e.transition(ctx, op, "", projectID, "", func(p *domain.Project, _ Strategy) (*Result, error) {
		return e.purge(ctx, op, p)
	})
}

func (e *Engine) purge(ctx context.Context, op string, p *domain.Project) (*Result, error) {
	if p.Purged() {
		return &Result{Project: p}, nil
	}
	now := e.now()
	p.Description = domain.PurgeTombstone
	if p.ClientAnswers != nil {
		p.ClientAnswers = domain.StringPtr(domain.PurgeTombstone)
	}
	p.Attachments = []domain.Attachment{}
	p.PurgedAt = &now
	return e.commit(ctx, op, p, nil)
}

// transition serialises the operation through the in-flight guard, loads
// the latest stored project and hands a copy to fn. Nothing is stored unless fn commits.
func (e *Engine) transition(ctx context.Context, op, userID, projectID string, flight domain.Status, fn func(*domain.Project, Strategy) (*Result, error)) (*Result, error) {
	lease, err := e.guard.Acquire(ctx, projectID, flight)
	if err != nil {
		if errors.Is(err, inflight.ErrHeld) {
			return nil, domain.Busy(op, projectID)
		}
		return nil, err
	}
	defer func() {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := lease.Release(rctx); err != nil {
			e.log.Warn("release in-flight lease failed", "project_id", projectID, "error", err)
		}
	}()

	p, err := e.load(ctx, op, userID, projectID)
	if err != nil {
		return nil, err
	}
	res, err := fn(p.Clone(), For(p))
	if err != nil {
		e.log.Warn("transition failed",
			"op", op,
			"project_id", projectID,
			"status", p.Status,
			"kind", domain.KindOf(err),
			"error", err,
		)
		return nil, err
	}
	return res, nil
}

// load fetches a project; an empty userID skips the ownership check.
func (e *Engine) load(ctx context.Context, op, userID, projectID string) (*domain.Project, error) {
	p, err := e.repo.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound(op)
		}
		return nil, err
	}
	if userID != "" && p.OwnerID != userID {
		return nil, domain.NotFound(op)
	}
	return p, nil
}

func requireStatus(op string, p *domain.Project, want, next domain.Status) error {
	if p.Status != want || !domain.CanTransition(want, next) {
		return domain.InvalidTransition(op, p.Status, next)
	}
	return nil
}

// call runs a single-document stage and applies the fallback policy.
func (e *Engine) call(ctx context.Context, op string, p *domain.Project, s Strategy, stage Stage) (string, []Degradation, error) {
	raw, err := e.generate(ctx, op, p, s, stage)
	if err != nil {
		return "", nil, err
	}
	content, deg := stage.Resolve(raw)
	var degraded []Degradation
	if deg != nil {
		degraded = append(degraded, *deg)
	}
	if err := e.strict(op, degraded); err != nil {
		return "", nil, err
	}
	return content, degraded, nil
}

// generate renders the stage prompt, calls the oracle under the configured
// timeout and strips anchor artifacts from the response.
func (e *Engine) generate(ctx context.Context, op string, p *domain.Project, s Strategy, stage Stage) (string, error) {
	set, err := e.prompts.Get(ctx)
	if err != nil {
		e.log.Warn("prompt store unavailable, using built-in prompts", "error", err)
		set = prompts.Defaults()
	}
	turn, err := prompts.Render(stage.Turn, stage.Data)
	if err != nil {
		return "", err
	}
	parts := make([]oracle.Part, 0, len(stage.Attachments))
	for _, a := range stage.Attachments {
		b, err := a.Bytes()
		if err != nil {
			return "", domain.Validation(op, err.Error())
		}
		parts = append(parts, oracle.Part{MIMEType: a.MIMEType, Data: b})
	}

	cctx, cancel := context.WithTimeout(ctx, e.cfg.OracleTimeout)
	defer cancel()

	start := time.Now()
	raw, err := e.oracle.Generate(cctx, oracle.Request{
		System:      s.System(set),
		Prompt:      turn,
		Attachments: parts,
		Temperature: stage.Temperature,
	})
	if err != nil {
		if errors.Is(err, oracle.ErrEmptyResponse) {
			// an empty answer is handled like any other extraction miss
			raw = ""
		} else {
			return "", domain.Oracle(op, err, true)
		}
	}
	e.log.Debug("oracle call done",
		"op", op,
		"project_id", p.ID,
		"strategy", s.Name(),
		"chars", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return extract.CleanAnchors(raw), nil
}

func (e *Engine) strict(op string, degraded []Degradation) error {
	if !e.cfg.StrictExtraction || len(degraded) == 0 {
		return nil
	}
	d := degraded[0]
	return domain.Degraded(op, d.Document, "primary tag missing ("+d.Outcome+")")
}

func (e *Engine) commit(ctx context.Context, op string, p *domain.Project, degraded []Degradation) (*Result, error) {
	if err := e.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	ev := events.Event{
		ProjectID: p.ID,
		Action:    op,
		Status:    p.Status,
		Version:   p.Version,
		Degraded:  len(degraded) > 0,
		At:        e.now(),
	}
	if err := e.events.Publish(ctx, ev); err != nil {
		e.log.Warn("publish project event failed", "project_id", p.ID, "error", err)
	}
	e.log.Info("project transition",
		"op", op,
		"project_id", p.ID,
		"status", p.Status,
		"version", p.Version,
		"degraded", len(degraded),
	)
	return &Result{Project: p, Degraded: degraded}, nil
}
