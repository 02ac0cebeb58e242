// Package events publishes project transitions for live clients.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/swot-auditor/swot-backend/internal/projects/domain"
)

const channelPrefix = "swot:events:" // swot:events:{project_id}

// Event is the payload sent after every persisted transition.
type Event struct {
	ProjectID string        `json:"project_id"`
	Action    string        `json:"action"`
	Status    domain.Status `json:"status"`
	Version   string        `json:"version"`
	Degraded  bool          `json:"degraded,omitempty"`
	At        time.Time     `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Channel returns the pub/sub channel for a project.
func Channel(projectID string) string {
	return channelPrefix + projectID
}

// RedisPublisher publishes events on Redis pub/sub.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, ev Event) error {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.client.Publish(ctx, Channel(ev.ProjectID), data).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
