package oracle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestLimited_PassesThrough(t *testing.T) {
	var got Request
	next := Func(func(_ context.Context, req Request) (string, error) {
		got = req
		return "ok", nil
	})
	l := NewLimited(next, 0, 0)

	out, err := l.Generate(context.Background(), Request{Prompt: "p"})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, "p", got.Prompt)
}

func TestLimited_WaitHonoursContext(t *testing.T) {
	next := Func(func(context.Context, Request) (string, error) { return "ok", nil })
	l := NewLimited(next, 0.001, 1)

	_, err := l.Generate(context.Background(), Request{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Generate(ctx, Request{})
	assert.Error(t, err)
}

func TestIsTimeout(t *testing.T) {
	assert.True(t, IsTimeout(context.DeadlineExceeded))
	assert.False(t, IsTimeout(errors.New("x")))
}

func TestUnavailable(t *testing.T) {
	_, err := Unavailable{}.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestBuildContents_AttachmentsFirst(t *testing.T) {
	c := buildContents(Request{
		Prompt:      "turn",
		Attachments: []Part{{MIMEType: "application/pdf", Data: []byte("pdf")}},
	})
	require.Len(t, c, 1)
	assert.Equal(t, genai.RoleUser, c[0].Role)
	require.Len(t, c[0].Parts, 2)
	require.NotNil(t, c[0].Parts[0].InlineData)
	assert.Equal(t, "application/pdf", c[0].Parts[0].InlineData.MIMEType)
	assert.Equal(t, "turn", c[0].Parts[1].Text)
}

func TestBuildConfig(t *testing.T) {
	cfg := buildConfig(Request{System: "sys", Temperature: 0.4})
	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 0.4, *cfg.Temperature, 1e-6)
	require.NotNil(t, cfg.SystemInstruction)
	assert.Equal(t, "sys", cfg.SystemInstruction.Parts[0].Text)

	assert.Nil(t, buildConfig(Request{}).SystemInstruction)
}

func TestNewGemini_RequiresKey(t *testing.T) {
	_, err := NewGemini(context.Background(), GeminiConfig{}, nil)
	assert.Error(t, err)
}
