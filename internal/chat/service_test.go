package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swot-auditor/swot-backend/internal/oracle"
	"github.com/swot-auditor/swot-backend/internal/oracle/oracletest"
	"github.com/swot-auditor/swot-backend/internal/prompts"
)

func TestParse(t *testing.T) {
	raw := "O modo Auditor gera um dossiê.\n\n[sugestoes]\n- Como funciona o pagamento?\n* O que é a Lente B?\n\n[/SUGESTOES]"
	r := Parse(raw)
	assert.Equal(t, "O modo Auditor gera um dossiê.", r.Content)
	assert.Equal(t, []string{"Como funciona o pagamento?", "O que é a Lente B?"}, r.Suggestions)

	plain := Parse("  Sem sugestões aqui.  ")
	assert.Equal(t, "Sem sugestões aqui.", plain.Content)
	assert.Empty(t, plain.Suggestions)
	assert.NotNil(t, plain.Suggestions)
}

func TestSend(t *testing.T) {
	o := oracletest.Texts(`Olá!<a name="x"></a> [SUGESTOES]Próximo passo?[/SUGESTOES]`)
	store := prompts.NewMemoryStore()
	_, err := store.Update(context.Background(), prompts.Set{Chatbot: "Você é o assistente."})
	require.NoError(t, err)
	svc := NewService(o, store, nil, 0)

	history := []prompts.Message{
		{Role: "user", Text: "Oi"},
		{Role: "model", Text: "Olá, como posso ajudar?"},
	}
	r, err := svc.Send(context.Background(), history, "  Quanto custa?  ")
	require.NoError(t, err)
	assert.Equal(t, "Olá!", r.Content)
	assert.Equal(t, []string{"Próximo passo?"}, r.Suggestions)

	req := o.Last()
	assert.Equal(t, "Você é o assistente.", req.System)
	assert.InDelta(t, 0.7, req.Temperature, 1e-6)
	assert.Equal(t, "USUÁRIO: Oi\nSWOT AuditorIA: Olá, como posso ajudar?\nUSUÁRIO: Quanto custa?", req.Prompt)
}

func TestSend_Validation(t *testing.T) {
	o := oracletest.New()
	svc := NewService(o, prompts.NewMemoryStore(), nil, 0)

	_, err := svc.Send(context.Background(), nil, "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	_, err = svc.Send(context.Background(), []prompts.Message{{Role: "system", Text: "x"}}, "oi")
	assert.ErrorIs(t, err, ErrBadRole)
	assert.Equal(t, 0, o.Calls())
}

func TestSend_EmptyAnswerFallsBackToApology(t *testing.T) {
	o := oracletest.New(oracletest.Reply{Err: oracle.ErrEmptyResponse}, oracletest.Reply{Text: "   "})
	svc := NewService(o, prompts.NewMemoryStore(), nil, 0)

	for i := 0; i < 2; i++ {
		r, err := svc.Send(context.Background(), nil, "oi")
		require.NoError(t, err)
		assert.Equal(t, Apology, r.Content)
	}
}

func TestSend_OracleFailure(t *testing.T) {
	o := oracletest.New(oracletest.Reply{Err: errors.New("quota exceeded")})
	svc := NewService(o, prompts.NewMemoryStore(), nil, 0)

	_, err := svc.Send(context.Background(), nil, "oi")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "quota exceeded"))
}

func TestSend_TrimsHistory(t *testing.T) {
	o := oracletest.Texts("ok")
	svc := NewService(o, prompts.NewMemoryStore(), nil, 0)

	history := make([]prompts.Message, MaxHistory+5)
	for i := range history {
		history[i] = prompts.Message{Role: "user", Text: "m"}
	}
	history[0].Text = "primeira"

	_, err := svc.Send(context.Background(), history, "oi")
	require.NoError(t, err)
	assert.NotContains(t, o.Last().Prompt, "primeira")
	assert.Equal(t, MaxHistory+1, strings.Count(o.Last().Prompt, "USUÁRIO:"))
}
