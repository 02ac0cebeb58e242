package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Attachment is an uploaded source document carried inline as base64.
type Attachment struct {
	Filename string `json:"filename"`
	MIMEType string `json:"mime_type"`
	Data     string `json:"data,omitempty"`
}

// Bytes decodes the base64 payload.
func (a Attachment) Bytes() ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(strings.TrimSpace(a.Data))
	if err != nil {
		return nil, fmt.Errorf("attachment %q: invalid base64: %w", a.Filename, err)
	}
	return b, nil
}

func (a Attachment) Validate() error {
	if strings.TrimSpace(a.Filename) == "" {
		return fmt.Errorf("attachment filename required")
	}
	if strings.TrimSpace(a.MIMEType) == "" {
		return fmt.Errorf("attachment %q: mime type required", a.Filename)
	}
	b, err := a.Bytes()
	if err != nil {
		return err
	}
	if len(b) == 0 {
		return fmt.Errorf("attachment %q: empty payload", a.Filename)
	}
	return nil
}

// WithoutData strips payloads for listing responses.
func WithoutData(in []Attachment) []Attachment {
	out := make([]Attachment, len(in))
	for i, a := range in {
		out[i] = Attachment{Filename: a.Filename, MIMEType: a.MIMEType}
	}
	return out
}
