package workflow

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/swot-auditor/swot-backend/internal/oracle/oracletest"
	"github.com/swot-auditor/swot-backend/internal/projects/domain"
)

// Random operation sequences never move a stored project backwards, and
// every observed change is an edge of the state machine (or a revision self-loop).
func TestStatusOnlyAdvances(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	kinds := []struct {
		mode domain.Mode
		at   domain.AuditorType
		lens string
	}{
		{domain.ModeAuditor, domain.AuditorConsultancy, "B"},
		{domain.ModeAuditor, domain.AuditorGovernance, ""},
		{domain.ModeEngineer, "", ""},
	}
	replies := []oracletest.Reply{
		{Text: strings.Repeat("conteúdo gerado ", 10)},
		{Text: "curto"},
		{Err: errors.New("network down")},
		{Text: consultancyFinal},
	}

	for round := 0; round < 30; round++ {
		k := kinds[round%len(kinds)]
		h := newHarness(t, Config{StrictExtraction: round%4 == 0})
		p := h.seed(t, k.mode, k.at)
		prev := domain.StatusIntake

		for step := 0; step < 40; step++ {
			h.oracle.Push(replies[rng.Intn(len(replies))])
			switch rng.Intn(7) {
			case 0:
				_, _ = h.engine.SubmitIntake(ctx, owner, p.ID, IntakeInput{Description: "Projeto X", Lens: k.lens})
			case 1:
				_, _ = h.engine.ApprovePayment(ctx, owner, p.ID)
			case 2:
				_, _ = h.engine.GenerateQuestionnaire(ctx, owner, p.ID)
			case 3:
				_, _ = h.engine.SubmitAnswers(ctx, owner, p.ID, "respostas")
			case 4:
				_, _ = h.engine.RunAudit(ctx, owner, p.ID)
			case 5:
				_, _ = h.engine.RunRevision(ctx, owner, p.ID, RevisionInput{Comment: "ajuste", Confirm: true})
			case 6:
				if rng.Intn(5) == 0 {
					_, _ = h.engine.Purge(ctx, owner, p.ID, true)
				}
			}

			cur := h.stored(t, p.ID).Status
			require.False(t, cur.InFlight(), "stored in-flight status %s", cur)
			require.GreaterOrEqual(t, cur.Rank(), prev.Rank(), "%s -> %s", prev, cur)
			if cur != prev {
				ok := false
				// a stored jump skips exactly the in-flight state between two resting states
				for _, mid := range domain.AllStatuses() {
					if domain.CanTransition(prev, mid) && (mid == cur || domain.CanTransition(mid, cur)) {
						ok = true
					}
				}
				require.True(t, ok, "%s -> %s is not reachable", prev, cur)
			}
			prev = cur
		}
	}
}
