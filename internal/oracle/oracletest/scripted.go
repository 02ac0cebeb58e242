// Package oracletest provides a scripted oracle for tests.
package oracletest

import (
	"context"
	"fmt"
	"sync"

	"github.com/swot-auditor/swot-backend/internal/oracle"
)

// Reply is one scripted response.
type Reply struct {
	Text string
	Err  error
}

// Scripted returns queued replies in order and records every request.
type Scripted struct {
	mu       sync.Mutex
	replies  []Reply
	requests []oracle.Request
	// Block, when set, is waited on before replying.
	Block chan struct{}
}

func New(replies ...Reply) *Scripted {
	return &Scripted{replies: replies}
}

// Texts is a shortcut for successful replies.
func Texts(texts ...string) *Scripted {
	s := &Scripted{}
	for _, t := range texts {
		s.replies = append(s.replies, Reply{Text: t})
	}
	return s
}

func (s *Scripted) Push(r Reply) {
	s.mu.Lock()
	s.replies = append(s.replies, r)
	s.mu.Unlock()
}

func (s *Scripted) Generate(ctx context.Context, req oracle.Request) (string, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	block := s.Block
	s.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.replies) == 0 {
		return "", fmt.Errorf("oracletest: no scripted reply for call %d", len(s.requests))
	}
	r := s.replies[0]
	s.replies = s.replies[1:]
	return r.Text, r.Err
}

func (s *Scripted) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func (s *Scripted) Requests() []oracle.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]oracle.Request(nil), s.requests...)
}

// Last returns the most recent request.
func (s *Scripted) Last() oracle.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return oracle.Request{}
	}
	return s.requests[len(s.requests)-1]
}
