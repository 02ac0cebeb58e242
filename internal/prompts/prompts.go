// Package prompts holds the system instructions and user-turn templates sent to the oracle.
package prompts

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"sync"
	"text/template"
	"time"
)

//go:embed templates/*.md templates/*.tmpl
var files embed.FS

// Set is the editable trio of system instructions.
type Set struct {
	Auditor   string    `json:"auditor" firestore:"auditor"`
	Engineer  string    `json:"engineer" firestore:"engineer"`
	Chatbot   string    `json:"chatbot" firestore:"chatbot"`
	Version   string    `json:"version" firestore:"version"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// Merge overlays the non-empty fields of patch onto s.
func (s Set) Merge(patch Set) Set {
	if patch.Auditor != "" {
		s.Auditor = patch.Auditor
	}
	if patch.Engineer != "" {
		s.Engineer = patch.Engineer
	}
	if patch.Chatbot != "" {
		s.Chatbot = patch.Chatbot
	}
	if patch.Version != "" {
		s.Version = patch.Version
	}
	return s
}

// fill replaces blank fields with the built-in defaults.
func (s Set) fill() Set {
	d := Defaults()
	if s.Auditor == "" {
		s.Auditor = d.Auditor
	}
	if s.Engineer == "" {
		s.Engineer = d.Engineer
	}
	if s.Chatbot == "" {
		s.Chatbot = d.Chatbot
	}
	if s.Version == "" {
		s.Version = d.Version
	}
	return s
}

// Store reads and updates the current prompt set.
type Store interface {
	Get(ctx context.Context) (Set, error)
	Update(ctx context.Context, patch Set) (Set, error)
}

const defaultVersion = "builtin"

var (
	defaultsOnce sync.Once
	defaults     Set
	turns        *template.Template
)

func load() {
	read := func(name string) string {
		b, err := files.ReadFile("templates/" + name)
		if err != nil {
			panic(fmt.Sprintf("prompts: missing embedded %s: %v", name, err))
		}
		return string(b)
	}
	defaults = Set{
		Auditor:  read("auditor.md"),
		Engineer: read("engineer.md"),
		Chatbot:  read("chatbot.md"),
		Version:  defaultVersion,
	}
	turns = template.Must(template.New("turns").ParseFS(files, "templates/turns.tmpl"))
}

// Defaults returns the built-in prompt set.
func Defaults() Set {
	defaultsOnce.Do(load)
	return defaults
}

// Message is one transcript entry for chat turns.
type Message struct {
	Role string `json:"role"` // "user" or "model"
	Text string `json:"text"`
}

// TurnData is interpolated into the per-call user turn.
type TurnData struct {
	Date          string
	Lens          string
	ModeLabel     string
	Description   string
	Questionnaire string
	Answers       string
	Document      string
	Comments      string
	History       []Message
	Message       string
}

// Turn names.
const (
	TurnPreReportAuditor      = "pre_report_auditor"
	TurnPreReportEngineer     = "pre_report_engineer"
	TurnQuestionnaireAuditor  = "questionnaire_auditor"
	TurnQuestionnaireEngineer = "questionnaire_engineer"
	TurnFinalAuditor          = "final_auditor"
	TurnFinalEngineer         = "final_engineer"
	TurnAudit                 = "audit"
	TurnRevisionAuditor       = "revision_auditor"
	TurnRevisionEngineer      = "revision_engineer"
	TurnChat                  = "chat"
)

// Render executes the named user-turn template.
func Render(name string, data TurnData) (string, error) {
	defaultsOnce.Do(load)
	var buf bytes.Buffer
	if err := turns.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render turn %s: %w", name, err)
	}
	return buf.String(), nil
}

// FormatDate renders t as dd/mm/yyyy.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}
