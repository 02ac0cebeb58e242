package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/swot-auditor/swot-backend/internal/projects/domain"
	"github.com/swot-auditor/swot-backend/internal/projects/utils"
)

const maxIDAttempts = 5

const projectColumns = `
id, owner_id, client_name, project_name, mode, auditor_type, lens, status, tier, version,
description, attachments,
pre_report, questionnaire, client_answers, final_dossier, investment_summary,
compliance_report, governance_opinion, dossier_metadata, audit_report, ranking_metadata,
completed_at, purged_at, created_at, updated_at`

// ProjectRepository stores projects in Postgres.
type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	if err := p.Validate(); err != nil {
		return err
	}
	attachments, err := encodeAttachments(p.Attachments)
	if err != nil {
		return err
	}

	const q = `
INSERT INTO projects (id, owner_id, client_name, project_name, mode, auditor_type, lens, status, tier, version, description, attachments)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING created_at, updated_at;
`
	for i := 0; i < maxIDAttempts; i++ {
		id, err := utils.NewProjectID()
		if err != nil {
			return err
		}
		err = r.db.QueryRowContext(ctx, q,
			id, p.OwnerID, p.ClientName, p.ProjectName, string(p.Mode), string(p.AuditorType),
			string(p.Lens), string(p.Status), int(p.Tier), p.Version, p.Description, attachments,
		).Scan(&p.CreatedAt, &p.UpdatedAt)
		if err == nil {
			p.ID = id
			return nil
		}

		// unique violation on id → retry
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			continue
		}
		return err
	}
	return fmt.Errorf("failed to generate unique project id")
}

func (r *ProjectRepository) Get(ctx context.Context, id string) (*domain.Project, error) {
	q := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1 AND deleted_at IS NULL;`
	p, err := scanProject(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Project, error) {
	q := `SELECT ` + projectColumns + ` FROM projects WHERE owner_id = $1 AND deleted_at IS NULL ORDER BY created_at DESC;`
	return r.list(ctx, q, ownerID)
}

func (r *ProjectRepository) ListPurgeCandidates(ctx context.Context, before time.Time, offset, limit int) ([]*domain.Project, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	q := `SELECT ` + projectColumns + ` FROM projects
WHERE deleted_at IS NULL AND purged_at IS NULL AND completed_at IS NOT NULL AND completed_at < $1
ORDER BY completed_at ASC, id ASC
LIMIT $2 OFFSET $3;`
	return r.list(ctx, q, before, limit, offset)
}

func (r *ProjectRepository) list(ctx context.Context, q string, args ...any) ([]*domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*domain.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ProjectRepository) Save(ctx context.Context, p *domain.Project) error {
	if err := p.Validate(); err != nil {
		return err
	}
	attachments, err := encodeAttachments(p.Attachments)
	if err != nil {
		return err
	}

	const q = `
UPDATE projects SET
	client_name = $2, project_name = $3, lens = $4, status = $5, tier = $6, version = $7,
	description = $8, attachments = $9,
	pre_report = $10, questionnaire = $11, client_answers = $12, final_dossier = $13,
	investment_summary = $14, compliance_report = $15, governance_opinion = $16,
	dossier_metadata = $17, audit_report = $18, ranking_metadata = $19,
	completed_at = $20, purged_at = $21, updated_at = now()
WHERE id = $1 AND deleted_at IS NULL
RETURNING updated_at;
`
	err = r.db.QueryRowContext(ctx, q,
		p.ID, p.ClientName, p.ProjectName, string(p.Lens), string(p.Status), int(p.Tier), p.Version,
		p.Description, attachments,
		nullString(p.PreReport), nullString(p.Questionnaire), nullString(p.ClientAnswers), nullString(p.FinalDossier),
		nullString(p.InvestmentSummary), nullString(p.ComplianceReport), nullString(p.GovernanceOpinion),
		nullString(p.DossierMetadata), nullString(p.AuditReport), nullString(p.RankingMetadata),
		nullTime(p.CompletedAt), nullTime(p.PurgedAt),
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *ProjectRepository) SoftDelete(ctx context.Context, ownerID, id string) error {
	const q = `
UPDATE projects
SET deleted_at = now(), updated_at = now()
WHERE owner_id = $1 AND id = $2 AND deleted_at IS NULL;
`
	res, err := r.db.ExecContext(ctx, q, ownerID, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var (
		p                             domain.Project
		mode, auditorType, lens, stat string
		tier                          int
		attachments                   []byte
		fields                        [10]sql.NullString
		completedAt, purgedAt         sql.NullTime
	)
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.ClientName, &p.ProjectName, &mode, &auditorType, &lens, &stat, &tier, &p.Version,
		&p.Description, &attachments,
		&fields[0], &fields[1], &fields[2], &fields[3], &fields[4],
		&fields[5], &fields[6], &fields[7], &fields[8], &fields[9],
		&completedAt, &purgedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Mode = domain.Mode(mode)
	p.AuditorType = domain.AuditorType(auditorType)
	p.Lens = domain.Lens(lens)
	p.Status = domain.Status(stat)
	p.Tier = domain.Tier(tier)

	p.Attachments = []domain.Attachment{}
	if len(attachments) > 0 {
		if err := json.Unmarshal(attachments, &p.Attachments); err != nil {
			return nil, fmt.Errorf("project %s: decode attachments: %w", p.ID, err)
		}
	}

	targets := []**string{
		&p.PreReport, &p.Questionnaire, &p.ClientAnswers, &p.FinalDossier, &p.InvestmentSummary,
		&p.ComplianceReport, &p.GovernanceOpinion, &p.DossierMetadata, &p.AuditReport, &p.RankingMetadata,
	}
	for i, f := range fields {
		if f.Valid {
			v := f.String
			*targets[i] = &v
		}
	}
	if completedAt.Valid {
		t := completedAt.Time
		p.CompletedAt = &t
	}
	if purgedAt.Valid {
		t := purgedAt.Time
		p.PurgedAt = &t
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("stored project is invalid: %w", err)
	}
	return &p, nil
}

func encodeAttachments(in []domain.Attachment) ([]byte, error) {
	if in == nil {
		in = []domain.Attachment{}
	}
	b, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encode attachments: %w", err)
	}
	return b, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
