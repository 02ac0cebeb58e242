// Package oracle is the text-generation collaborator used by the workflow and chat.
package oracle

import (
	"context"
	"errors"
)

var (
	ErrEmptyResponse = errors.New("oracle returned an empty response")
	ErrNotConfigured = errors.New("oracle is not configured")
)

// Part is an inline binary attachment sent with the prompt.
type Part struct {
	MIMEType string
	Data     []byte
}

// Request is one text-in/text-out call.
type Request struct {
	System      string
	Prompt      string
	Attachments []Part
	Temperature float32
}

// Oracle generates a single text blob for a request.
type Oracle interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Func adapts a function to Oracle.
type Func func(ctx context.Context, req Request) (string, error)

func (f Func) Generate(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// IsTimeout reports whether err came from an expired deadline.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

// Unavailable is used when no API key is configured: every call fails.
type Unavailable struct{}

func (Unavailable) Generate(context.Context, Request) (string, error) {
	return "", ErrNotConfigured
}
