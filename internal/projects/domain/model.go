package domain

import "time"

// PurgeTombstone replaces client-provided source data after a purge.
const PurgeTombstone = "[REGISTRO: DADOS ORIGINAIS E ARQUIVOS FONTE DESTRUÍDOS CONFORME PROTOCOLO DE SEGURANÇA]"

// Project represents a single audit or engineering engagement owned by a user.
// It is storage-agnostic and used across the workflow, repository and HTTP layers.
//
// Generated content fields are nil until the stage that produces them completes.
type Project struct {
	ID          string      `json:"id"`
	OwnerID     string      `json:"owner_id"`
	ClientName  string      `json:"client_name"`
	ProjectName string      `json:"project_name"`
	Mode        Mode        `json:"mode"`
	AuditorType AuditorType `json:"auditor_type,omitempty"`
	Lens        Lens        `json:"lens,omitempty"`
	Status      Status      `json:"status"`
	Tier        Tier        `json:"tier,omitempty"`
	Version     string      `json:"version"`

	Description string       `json:"description"`
	Attachments []Attachment `json:"attachments"`

	PreReport         *string `json:"pre_report,omitempty"`
	Questionnaire     *string `json:"questionnaire,omitempty"`
	ClientAnswers     *string `json:"client_answers,omitempty"`
	FinalDossier      *string `json:"final_dossier,omitempty"`
	InvestmentSummary *string `json:"investment_summary,omitempty"`
	ComplianceReport  *string `json:"compliance_report,omitempty"`
	GovernanceOpinion *string `json:"governance_opinion,omitempty"`
	DossierMetadata   *string `json:"dossier_metadata,omitempty"`
	AuditReport       *string `json:"audit_report,omitempty"`
	RankingMetadata   *string `json:"ranking_metadata,omitempty"`

	CompletedAt *time.Time `json:"completed_at,omitempty"`
	PurgedAt    *time.Time `json:"purged_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewProject returns a project at intake with no generated content.
func NewProject(ownerID, clientName, projectName string, mode Mode, auditorType AuditorType) *Project {
	now := time.Now().UTC()
	return &Project{
		OwnerID:     ownerID,
		ClientName:  clientName,
		ProjectName: projectName,
		Mode:        mode,
		AuditorType: auditorType,
		Status:      StatusIntake,
		Version:     InitialVersion,
		Attachments: []Attachment{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsGovernance reports whether the project runs the public-governance auditor flow.
func (p *Project) IsGovernance() bool {
	return p.Mode == ModeAuditor && p.AuditorType == AuditorGovernance
}

// RequiresLens reports whether a lens must be chosen before the pre-report.
func (p *Project) RequiresLens() bool {
	return p.Mode == ModeAuditor && p.AuditorType == AuditorConsultancy
}

// Purged reports whether source data has already been destroyed.
func (p *Project) Purged() bool {
	return p.PurgedAt != nil
}

// Clone returns a deep copy so a failed transition never leaks partial writes.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	c := *p
	c.Attachments = append([]Attachment(nil), p.Attachments...)
	if c.Attachments == nil {
		c.Attachments = []Attachment{}
	}
	for _, f := range []**string{
		&c.PreReport, &c.Questionnaire, &c.ClientAnswers, &c.FinalDossier,
		&c.InvestmentSummary, &c.ComplianceReport, &c.GovernanceOpinion,
		&c.DossierMetadata, &c.AuditReport, &c.RankingMetadata,
	} {
		if *f != nil {
			v := **f
			*f = &v
		}
	}
	if p.CompletedAt != nil {
		t := *p.CompletedAt
		c.CompletedAt = &t
	}
	if p.PurgedAt != nil {
		t := *p.PurgedAt
		c.PurgedAt = &t
	}
	return &c
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// Deref returns the pointed string or "" when absent.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
