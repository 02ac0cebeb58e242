package prompts

import (
	"fmt"
	"time"

	"github.com/swot-auditor/swot-backend/internal/projects/utils"
)

const (
	DefaultOperator = "R. Morais - Sócio Sênior"
	DefaultTitle    = "Auditor Líder de Compliance & Estratégia"
	hashLength      = 8
)

// Signer appends the authenticity block to generated documents.
type Signer struct {
	Operator string
	Title    string
	Now      func() time.Time
	Hash     func() string
}

func NewSigner(operator, title string) *Signer {
	if operator == "" {
		operator = DefaultOperator
	}
	if title == "" {
		title = DefaultTitle
	}
	return &Signer{Operator: operator, Title: title}
}

func (s *Signer) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Signer) hash() string {
	if s.Hash != nil {
		return s.Hash()
	}
	h, err := utils.NewHash(hashLength)
	if err != nil {
		return fmt.Sprintf("%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return h
}

// Block returns the signature block alone.
func (s *Signer) Block() string {
	return fmt.Sprintf("\n\n---\n**RESPONSÁVEL TÉCNICO:**\n%s\n*%s*\n\n**REGISTRO DE AUTENTICIDADE:**\nHash: #%s | Emissão: %s\n",
		s.Operator, s.Title, s.hash(), FormatDate(s.now()))
}

// Sign appends the block to content.
func (s *Signer) Sign(content string) string {
	return content + s.Block()
}

// Today is the date stamped into turns.
func (s *Signer) Today() string {
	return FormatDate(s.now())
}
