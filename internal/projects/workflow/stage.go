package workflow

import (
	"github.com/swot-auditor/swot-backend/internal/projects/domain"
	"github.com/swot-auditor/swot-backend/internal/projects/extract"
	"github.com/swot-auditor/swot-backend/internal/prompts"
)

// Minimum raw-response lengths, in runes, for the untagged fallback.
const (
	MinRawLen      = 20
	MinRawLenFinal = 50
	auditWindow    = 10000
)

const (
	placeholderPreReport     = "Erro na geração do relatório."
	placeholderQuestionnaire = "Erro ao gerar questionário."
	placeholderFinal         = "Erro ao gerar o dossiê final."
	placeholderAudit         = "Erro ao gerar relatório de auditoria."
	placeholderRevision      = "Erro ao gerar revisão."
)

// Document names used in degradation warnings.
const (
	DocPreReport     = "pre_report"
	DocQuestionnaire = "questionnaire"
	DocFinal         = "final_dossier"
	DocGovernance    = "governance_opinion"
	DocAudit         = "audit_report"
	DocRevision      = "revision"
)

// Stage is everything needed for one oracle call and the extraction of its primary document.
type Stage struct {
	Document    string
	Turn        string
	Data        prompts.TurnData
	Temperature float32
	// Tag is zero when the raw response is the document.
	Tag         extract.Tag
	MinRawLen   int
	Placeholder string
	Attachments []domain.Attachment
}

func (s Stage) tagged() bool {
	return s.Tag.Start != "" && s.Tag.End != ""
}

// Resolve extracts the primary document from raw and reports a degradation
// when the tag was missed or the placeholder had to be used.
func (s Stage) Resolve(raw string) (string, *Degradation) {
	var (
		content string
		outcome extract.Outcome
	)
	if s.tagged() {
		content, outcome = extract.Resolve(raw, s.Tag, s.MinRawLen, s.Placeholder)
	} else {
		content, outcome = extract.Fallback(raw, s.MinRawLen, s.Placeholder)
	}
	if outcome == extract.Tagged || (!s.tagged() && outcome == extract.RawFallback) {
		return content, nil
	}
	return content, &Degradation{Document: s.Document, Outcome: outcome.String()}
}

// Degradation records a primary document that was not found under its tag.
type Degradation struct {
	Document string `json:"document"`
	Outcome  string `json:"outcome"`
}

// Placeholder reports whether the document was replaced by an error string.
func (d Degradation) Placeholder() bool {
	return d.Outcome == extract.Placeholder.String()
}
