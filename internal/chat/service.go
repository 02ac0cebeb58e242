// Package chat is the assistant widget backend: one oracle call per message.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/swot-auditor/swot-backend/internal/oracle"
	"github.com/swot-auditor/swot-backend/internal/platform/logger"
	"github.com/swot-auditor/swot-backend/internal/projects/extract"
	"github.com/swot-auditor/swot-backend/internal/prompts"
)

const (
	Temperature    = 0.7
	MaxHistory     = 40
	DefaultTimeout = 60 * time.Second

	Apology = "Desculpe, não consegui processar sua solicitação."
)

var (
	ErrEmptyMessage = errors.New("message is required")
	ErrBadRole      = errors.New(`history roles must be "user" or "model"`)
)

var suggestionsTag = extract.Tag{Start: "[SUGESTOES]", End: "[/SUGESTOES]"}

// Reply is the cleaned answer plus the follow-up prompts offered to the client.
type Reply struct {
	Content     string   `json:"content"`
	Suggestions []string `json:"suggestions"`
}

type Service struct {
	oracle  oracle.Oracle
	prompts prompts.Store
	log     *logger.Logger
	timeout time.Duration
}

func NewService(o oracle.Oracle, store prompts.Store, log *logger.Logger, timeout time.Duration) *Service {
	if log == nil {
		log = logger.Nop()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{oracle: o, prompts: store, log: log, timeout: timeout}
}

// Send answers message in the context of history. Only the most recent
// MaxHistory entries are forwarded.
func (s *Service) Send(ctx context.Context, history []prompts.Message, message string) (*Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}
	for _, m := range history {
		if m.Role != "user" && m.Role != "model" {
			return nil, ErrBadRole
		}
	}
	if len(history) > MaxHistory {
		history = history[len(history)-MaxHistory:]
	}

	set, err := s.prompts.Get(ctx)
	if err != nil {
		s.log.Warn("prompt store unavailable, using built-in prompts", "error", err)
		set = prompts.Defaults()
	}
	turn, err := prompts.Render(prompts.TurnChat, prompts.TurnData{History: history, Message: message})
	if err != nil {
		return nil, err
	}

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	raw, err := s.oracle.Generate(cctx, oracle.Request{
		System:      set.Chatbot,
		Prompt:      turn,
		Temperature: Temperature,
	})
	if err != nil && !errors.Is(err, oracle.ErrEmptyResponse) {
		return nil, fmt.Errorf("chat: %w", err)
	}
	if strings.TrimSpace(raw) == "" {
		raw = Apology
	}
	return Parse(extract.CleanAnchors(raw)), nil
}

// Parse splits the suggestions block off the answer.
func Parse(text string) *Reply {
	r := &Reply{Content: strings.TrimSpace(text), Suggestions: []string{}}
	block, ok := extract.Extract(text, suggestionsTag)
	if !ok {
		return r
	}
	r.Content = extract.RemoveBlock(text, suggestionsTag)
	if lines := extract.Lines(block); len(lines) > 0 {
		r.Suggestions = lines
	}
	return r
}
