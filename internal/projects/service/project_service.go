package service

import (
	"context"
	"strings"

	"github.com/swot-auditor/swot-backend/internal/projects/domain"
	"github.com/swot-auditor/swot-backend/internal/projects/repository"
	"github.com/swot-auditor/swot-backend/internal/projects/workflow"
)

const maxNameLen = 200

// ProjectService handles project CRUD and forwards workflow actions to the engine.
type ProjectService struct {
	repo   repository.Repository
	engine *workflow.Engine
}

// NewProjectService creates a new project service
func NewProjectService(repo repository.Repository, engine *workflow.Engine) *ProjectService {
	return &ProjectService{
		repo:   repo,
		engine: engine,
	}
}

type CreateInput struct {
	ClientName  string
	ProjectName string
	Mode        string
	AuditorType string
}

// Create opens a new project at intake.
func (s *ProjectService) Create(ctx context.Context, userID string, in CreateInput) (*domain.Project, error) {
	const op = "create"
	if strings.TrimSpace(userID) == "" {
		return nil, domain.Validation(op, "owner required")
	}
	client := strings.TrimSpace(in.ClientName)
	name := strings.TrimSpace(in.ProjectName)
	if client == "" || name == "" {
		return nil, domain.Validation(op, "client_name and project_name are required")
	}
	if len([]rune(name)) > maxNameLen || len([]rune(client)) > maxNameLen {
		return nil, domain.Validation(op, "names are limited to 200 characters")
	}

	mode, ok := domain.ParseMode(in.Mode)
	if !ok {
		return nil, domain.Validation(op, "mode must be AUDITOR or ENGINEER")
	}
	at, ok := domain.ParseAuditorType(in.AuditorType)
	if !ok {
		return nil, domain.Validation(op, "auditor_type must be CONSULTANCY or GOVERNANCE")
	}
	switch mode {
	case domain.ModeAuditor:
		if at == "" {
			at = domain.AuditorConsultancy
		}
	case domain.ModeEngineer:
		if at != "" {
			return nil, domain.Validation(op, "auditor_type only applies to AUDITOR mode")
		}
	}

	p := domain.NewProject(userID, client, name, mode, at)
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns the user's projects newest first. Attachment payloads are stripped.
func (s *ProjectService) List(ctx context.Context, userID string) ([]*domain.Project, error) {
	items, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.engine.Overlay(ctx, items)
	for _, p := range items {
		p.Attachments = domain.WithoutData(p.Attachments)
	}
	return items, nil
}

func (s *ProjectService) Get(ctx context.Context, userID, projectID string) (*domain.Project, error) {
	return s.engine.View(ctx, userID, projectID)
}

// Delete soft-deletes a project. Projects with a running operation are left alone.
func (s *ProjectService) Delete(ctx context.Context, userID, projectID string) error {
	return s.engine.Delete(ctx, userID, projectID)
}

func (s *ProjectService) AddAttachments(ctx context.Context, userID, projectID string, files []domain.Attachment) (*workflow.Result, error) {
	return s.engine.AddAttachments(ctx, userID, projectID, files)
}

func (s *ProjectService) SubmitIntake(ctx context.Context, userID, projectID string, in workflow.IntakeInput) (*workflow.Result, error) {
	return s.engine.SubmitIntake(ctx, userID, projectID, in)
}

func (s *ProjectService) ApprovePayment(ctx context.Context, userID, projectID string) (*workflow.Result, error) {
	return s.engine.ApprovePayment(ctx, userID, projectID)
}

func (s *ProjectService) GenerateQuestionnaire(ctx context.Context, userID, projectID string) (*workflow.Result, error) {
	return s.engine.GenerateQuestionnaire(ctx, userID, projectID)
}

func (s *ProjectService) SubmitAnswers(ctx context.Context, userID, projectID, answers string) (*workflow.Result, error) {
	return s.engine.SubmitAnswers(ctx, userID, projectID, answers)
}

func (s *ProjectService) RunAudit(ctx context.Context, userID, projectID string) (*workflow.Result, error) {
	return s.engine.RunAudit(ctx, userID, projectID)
}

func (s *ProjectService) RunRevision(ctx context.Context, userID, projectID string, in workflow.RevisionInput) (*workflow.Result, error) {
	return s.engine.RunRevision(ctx, userID, projectID, in)
}

func (s *ProjectService) Purge(ctx context.Context, userID, projectID string, confirm bool) (*workflow.Result, error) {
	return s.engine.Purge(ctx, userID, projectID, confirm)
}
