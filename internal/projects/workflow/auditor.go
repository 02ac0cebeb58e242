package workflow

import (
	"github.com/swot-auditor/swot-backend/internal/projects/domain"
	"github.com/swot-auditor/swot-backend/internal/projects/extract"
	"github.com/swot-auditor/swot-backend/internal/prompts"
)

var (
	tagPreReport     = extract.Tag{Start: "[INICIO_PDF_PRERELATORIO]", End: "[FIM_PDF_PRERELATORIO]"}
	tagQuestionnaire = extract.Tag{Start: "[INICIO_PDF_QUESTIONARIO]", End: "[FIM_PDF_QUESTIONARIO]"}
	tagDossier       = extract.Tag{Start: "[INICIO_PDF_DOSSIE_FINAL]", End: "[FIM_PDF_DOSSIE_FINAL]"}
	tagOnePager      = extract.Tag{Start: "[INICIO_PDF_ONEPAGER]", End: "[FIM_PDF_ONEPAGER]"}
	tagMetadata      = extract.Tag{Start: "[INICIO_METADADOS]", End: "[FIM_METADADOS]"}
	tagAudit         = extract.Tag{Start: "[INICIO_RELATORIO_AUDITORIA]", End: "[FIM_RELATORIO_AUDITORIA]"}
)

// auditorStrategy drives consultancy and governance audits.
type auditorStrategy struct {
	governance bool
}

func (s auditorStrategy) Name() string {
	if s.governance {
		return "governance"
	}
	return "consultancy"
}

func (auditorStrategy) System(set prompts.Set) string { return set.Auditor }

func (s auditorStrategy) vars(p *domain.Project, date string) prompts.TurnData {
	d := prompts.TurnData{Date: date, Description: p.Description, ModeLabel: "CONSULTORIA", Lens: string(p.Lens)}
	if s.governance {
		d.ModeLabel = "GOVERNANÇA"
		d.Lens = "N/A"
	}
	return d
}

func (s auditorStrategy) PreReport(p *domain.Project, date string) Stage {
	return Stage{
		Document:    DocPreReport,
		Turn:        prompts.TurnPreReportAuditor,
		Data:        s.vars(p, date),
		Temperature: 0.4,
		Tag:         tagPreReport,
		MinRawLen:   MinRawLen,
		Placeholder: placeholderPreReport,
		Attachments: p.Attachments,
	}
}

func (s auditorStrategy) Questionnaire(p *domain.Project, date string) Stage {
	return Stage{
		Document:    DocQuestionnaire,
		Turn:        prompts.TurnQuestionnaireAuditor,
		Data:        prompts.TurnData{Date: date},
		Temperature: 0.5,
		Tag:         tagQuestionnaire,
		MinRawLen:   MinRawLen,
		Placeholder: placeholderQuestionnaire,
		Attachments: p.Attachments,
	}
}

func (s auditorStrategy) Final(p *domain.Project, date string) Stage {
	d := s.vars(p, date)
	d.Questionnaire = domain.Deref(p.Questionnaire)
	d.Answers = domain.Deref(p.ClientAnswers)
	doc := DocFinal
	if s.governance {
		doc = DocGovernance
	}
	return Stage{
		Document:    doc,
		Turn:        prompts.TurnFinalAuditor,
		Data:        d,
		Temperature: 0.4,
		Tag:         tagDossier,
		MinRawLen:   MinRawLenFinal,
		Placeholder: placeholderFinal,
		Attachments: p.Attachments,
	}
}

func (s auditorStrategy) MapFinal(p *domain.Project, raw string, sign signFunc) []Degradation {
	var degraded []Degradation
	content, deg := s.Final(p, "").Resolve(raw)
	if deg != nil {
		degraded = append(degraded, *deg)
	}
	*s.Content(p) = domain.StringPtr(sign(content))

	meta, hasMeta := extract.Extract(raw, tagMetadata)
	if hasMeta {
		p.DossierMetadata = domain.StringPtr(meta)
	}
	if s.governance {
		if rank, ok := extract.Ranking(meta); hasMeta && ok {
			p.RankingMetadata = domain.StringPtr(rank)
		}
		return degraded
	}
	if onePager, ok := extract.Extract(raw, tagOnePager); ok && onePager != "" {
		p.InvestmentSummary = domain.StringPtr(onePager)
	}
	return degraded
}

func (s auditorStrategy) Audit(p *domain.Project, date string) (Stage, bool) {
	return Stage{
		Document:    DocAudit,
		Turn:        prompts.TurnAudit,
		Data:        prompts.TurnData{Date: date, Document: extract.Truncate(domain.Deref(*s.Content(p)), auditWindow) + "..."},
		Temperature: 0.1,
		Tag:         tagAudit,
		MinRawLen:   MinRawLen,
		Placeholder: placeholderAudit,
	}, true
}

func (s auditorStrategy) Revision(p *domain.Project, date, comment string, files []domain.Attachment) Stage {
	return Stage{
		Document: DocRevision,
		Turn:     prompts.TurnRevisionAuditor,
		Data: prompts.TurnData{
			Date:     date,
			Document: extract.Truncate(domain.Deref(*s.Content(p)), auditWindow) + "...",
			Comments: comment,
		},
		Temperature: 0.3,
		Tag:         tagDossier,
		MinRawLen:   MinRawLen,
		Placeholder: placeholderRevision,
		Attachments: files,
	}
}

func (s auditorStrategy) Content(p *domain.Project) **string {
	if s.governance {
		return &p.GovernanceOpinion
	}
	return &p.FinalDossier
}
