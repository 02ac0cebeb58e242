package workflow

import (
	"github.com/swot-auditor/swot-backend/internal/projects/domain"
	"github.com/swot-auditor/swot-backend/internal/prompts"
)

// signFunc appends the authenticity block to a document.
type signFunc func(string) string

// Strategy supplies templates, tag vocabulary and field mapping for one kind of project.
// It is picked once per project by For.
type Strategy interface {
	Name() string
	System(set prompts.Set) string

	PreReport(p *domain.Project, date string) Stage
	Questionnaire(p *domain.Project, date string) Stage
	Final(p *domain.Project, date string) Stage
	// MapFinal writes the final-stage documents into p.
	MapFinal(p *domain.Project, raw string, sign signFunc) []Degradation

	// Audit returns false when the project kind has no audit pass.
	Audit(p *domain.Project, date string) (Stage, bool)
	Revision(p *domain.Project, date, comment string, files []domain.Attachment) Stage

	// Content points at the field the final stage fills and revisions overwrite.
	Content(p *domain.Project) **string
}

// For selects the strategy for a project.
func For(p *domain.Project) Strategy {
	switch {
	case p.Mode == domain.ModeEngineer:
		return engineerStrategy{}
	case p.IsGovernance():
		return auditorStrategy{governance: true}
	default:
		return auditorStrategy{}
	}
}
