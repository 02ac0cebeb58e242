package workflow

import (
	"github.com/swot-auditor/swot-backend/internal/projects/domain"
	"github.com/swot-auditor/swot-backend/internal/projects/extract"
	"github.com/swot-auditor/swot-backend/internal/prompts"
)

var (
	tagArtifactDossier    = extract.Tag{Start: "[INICIO ARTEFATO 1: DOSSIÊ DE PROJETO ESTRUTURADO]", End: "[FIM ARTEFATO 1]"}
	tagArtifactPitch      = extract.Tag{Start: "[INICIO ARTEFATO 2: SUMÁRIO EXECUTIVO (PITCH)]", End: "[FIM ARTEFATO 2]"}
	tagArtifactCompliance = extract.Tag{Start: "[INICIO ARTEFATO 3: RELATÓRIO DE CONFORMIDADE INTERNA]", End: "[FIM ARTEFATO 3]"}
	tagArtifactGlossary   = extract.Tag{Start: "[INICIO ARTEFATO 4: GLOSSÁRIO E REFERÊNCIAS]", End: "[FIM ARTEFATO 4]"}
)

const glossaryHeading = "\n\n# GLOSSÁRIO E REFERÊNCIAS\n"

// engineerStrategy turns raw ideas into structured project documents.
// Only the final stage is tagged; earlier stages keep the whole response.
type engineerStrategy struct{}

func (engineerStrategy) Name() string { return "engineer" }

func (engineerStrategy) System(set prompts.Set) string { return set.Engineer }

func (engineerStrategy) PreReport(p *domain.Project, date string) Stage {
	return Stage{
		Document:    DocPreReport,
		Turn:        prompts.TurnPreReportEngineer,
		Data:        prompts.TurnData{Date: date, Description: p.Description},
		Temperature: 0.4,
		MinRawLen:   MinRawLen,
		Placeholder: placeholderPreReport,
		Attachments: p.Attachments,
	}
}

func (engineerStrategy) Questionnaire(p *domain.Project, date string) Stage {
	return Stage{
		Document:    DocQuestionnaire,
		Turn:        prompts.TurnQuestionnaireEngineer,
		Data:        prompts.TurnData{Date: date},
		Temperature: 0.5,
		MinRawLen:   MinRawLen,
		Placeholder: placeholderQuestionnaire,
		Attachments: p.Attachments,
	}
}

func (engineerStrategy) Final(p *domain.Project, date string) Stage {
	return Stage{
		Document: DocFinal,
		Turn:     prompts.TurnFinalEngineer,
		Data: prompts.TurnData{
			Date:          date,
			Description:   p.Description,
			Questionnaire: domain.Deref(p.Questionnaire),
			Answers:       domain.Deref(p.ClientAnswers),
		},
		Temperature: 0.4,
		Tag:         tagArtifactDossier,
		MinRawLen:   MinRawLenFinal,
		Placeholder: placeholderFinal,
		Attachments: p.Attachments,
	}
}

func (s engineerStrategy) MapFinal(p *domain.Project, raw string, sign signFunc) []Degradation {
	var degraded []Degradation
	dossier, deg := s.Final(p, "").Resolve(raw)
	if deg != nil {
		degraded = append(degraded, *deg)
	}
	if glossary, ok := extract.Extract(raw, tagArtifactGlossary); ok && glossary != "" {
		dossier += glossaryHeading + glossary
	}
	p.FinalDossier = domain.StringPtr(sign(dossier))

	if pitch, ok := extract.Extract(raw, tagArtifactPitch); ok && pitch != "" {
		p.InvestmentSummary = domain.StringPtr(pitch)
	}
	if compliance, ok := extract.Extract(raw, tagArtifactCompliance); ok && compliance != "" {
		p.ComplianceReport = domain.StringPtr(sign(compliance))
	}
	return degraded
}

func (engineerStrategy) Audit(*domain.Project, string) (Stage, bool) {
	return Stage{}, false
}

func (engineerStrategy) Revision(p *domain.Project, date, comment string, files []domain.Attachment) Stage {
	return Stage{
		Document:    DocRevision,
		Turn:        prompts.TurnRevisionEngineer,
		Data:        prompts.TurnData{Date: date, Document: domain.Deref(p.FinalDossier), Comments: comment},
		Temperature: 0.3,
		MinRawLen:   MinRawLen,
		Placeholder: placeholderRevision,
		Attachments: files,
	}
}

func (engineerStrategy) Content(p *domain.Project) **string {
	return &p.FinalDossier
}
