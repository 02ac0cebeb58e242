package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var startEnd = Tag{Start: "[START]", End: "[END]"}

func TestExtract_Scenario(t *testing.T) {
	got, ok := Extract("noise[START]hello world[END]more noise", startEnd)
	assert.True(t, ok)
	assert.Equal(t, "hello world", got)
}

func TestExtract_InsensitiveToNoise(t *testing.T) {
	inner := "  conteúdo\ncom várias linhas  "
	noises := []string{
		"",
		"prefix",
		"[END] stray end first ",
		"(.*) regex chars ^$ ",
		"\n\n",
		"[start-ish]",
	}
	for _, prefix := range noises {
		for _, suffix := range noises {
			text := prefix + startEnd.Start + inner + startEnd.End + suffix
			got, ok := Extract(text, startEnd)
			assert.True(t, ok, "prefix=%q suffix=%q", prefix, suffix)
			assert.Equal(t, strings.TrimSpace(inner), got, "prefix=%q suffix=%q", prefix, suffix)
		}
	}
}

func TestExtract_CaseInsensitive(t *testing.T) {
	tag := Tag{Start: "[INICIO_PDF_DOSSIE_FINAL]", End: "[FIM_PDF_DOSSIE_FINAL]"}
	got, ok := Extract("a [inicio_pdf_dossie_final] corpo [Fim_Pdf_Dossie_Final] b", tag)
	assert.True(t, ok)
	assert.Equal(t, "corpo", got)
}

func TestExtract_BracketsAreLiteral(t *testing.T) {
	// As a character class "[START]" would match a single 'S'.
	_, ok := Extract("S hello T", startEnd)
	assert.False(t, ok)
}

func TestExtract_NonGreedyNoNesting(t *testing.T) {
	text := "[START]one[END] [START]two[END]"
	got, _ := Extract(text, startEnd)
	assert.Equal(t, "one", got)

	nested := "[START]a [START]b[END] c[END]"
	got, _ = Extract(nested, startEnd)
	assert.Equal(t, "a [START]b", got)
}

func TestExtract_Misses(t *testing.T) {
	for _, text := range []string{"", "no tags", "[START] unterminated", "only end [END]"} {
		got, ok := Extract(text, startEnd)
		assert.False(t, ok, text)
		assert.Empty(t, got)
	}
	_, ok := Extract("x", Tag{})
	assert.False(t, ok)
}

func TestMany(t *testing.T) {
	dossier := Tag{"[INICIO_PDF_DOSSIE_FINAL]", "[FIM_PDF_DOSSIE_FINAL]"}
	onepager := Tag{"[INICIO_PDF_ONEPAGER]", "[FIM_PDF_ONEPAGER]"}
	meta := Tag{"[INICIO_METADADOS]", "[FIM_METADADOS]"}
	text := "[INICIO_PDF_DOSSIE_FINAL]D[FIM_PDF_DOSSIE_FINAL]x[INICIO_METADADOS]M[FIM_METADADOS]"

	got := Many(text, dossier, onepager, meta)
	assert.Equal(t, map[Tag]string{dossier: "D", meta: "M"}, got)
}

func TestRanking(t *testing.T) {
	meta := "Setor: saúde\n[METADATA_RANKING]: Score 87 | Risco baixo\nOutra linha"
	got, ok := Ranking(meta)
	assert.True(t, ok)
	assert.Equal(t, "Score 87 | Risco baixo", got)

	got, ok = Ranking("[metadata_ranking] final sem quebra")
	assert.True(t, ok)
	assert.Equal(t, "final sem quebra", got)

	_, ok = Ranking("sem ranking")
	assert.False(t, ok)
}

func TestRemoveBlock(t *testing.T) {
	tag := Tag{"[SUGESTOES]", "[/SUGESTOES]"}
	got := RemoveBlock("Resposta.\n[SUGESTOES]\n- a\n[/SUGESTOES]\n", tag)
	assert.Equal(t, "Resposta.", got)
	assert.Equal(t, "plain", RemoveBlock(" plain ", tag))
}

func TestCleanAnchors(t *testing.T) {
	in := `<a name="sec1"></a># Título <A ID="x"> </A>texto<a name="y"/>`
	assert.Equal(t, "# Título texto", CleanAnchors(in))
}

func TestLines(t *testing.T) {
	got := Lines("\n- Primeira\n* Segunda\n\n• Terceira  \n")
	assert.Equal(t, []string{"Primeira", "Segunda", "Terceira"}, got)
	assert.Nil(t, Lines("   "))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "ação", Truncate("ação!", 4))
	assert.Equal(t, "abc", Truncate("abc", 10))
	assert.Equal(t, "", Truncate("abc", 0))
}

func TestResolve_FallbackBoundary(t *testing.T) {
	const threshold = 20
	const placeholder = "Erro na geração do relatório."
	tag := Tag{"[INICIO_PDF_PRERELATORIO]", "[FIM_PDF_PRERELATORIO]"}

	atThreshold := strings.Repeat("é", threshold)
	got, outcome := Resolve(atThreshold, tag, threshold, placeholder)
	assert.Equal(t, atThreshold, got)
	assert.Equal(t, RawFallback, outcome)

	below := strings.Repeat("é", threshold-1)
	got, outcome = Resolve(below, tag, threshold, placeholder)
	assert.Equal(t, placeholder, got)
	assert.Equal(t, Placeholder, outcome)

	got, outcome = Resolve("x[INICIO_PDF_PRERELATORIO]ok[FIM_PDF_PRERELATORIO]", tag, threshold, placeholder)
	assert.Equal(t, "ok", got)
	assert.Equal(t, Tagged, outcome)

	got, outcome = Fallback(strings.Repeat(" ", threshold), threshold, placeholder)
	assert.Equal(t, placeholder, got)
	assert.Equal(t, "placeholder", outcome.String())
}
