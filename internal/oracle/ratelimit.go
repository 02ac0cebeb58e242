package oracle

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Limited throttles outbound calls with a token bucket.
type Limited struct {
	next    Oracle
	limiter *rate.Limiter
}

// NewLimited allows perSecond calls with the given burst. perSecond <= 0 disables throttling.
func NewLimited(next Oracle, perSecond float64, burst int) *Limited {
	lim := rate.NewLimiter(rate.Inf, 0)
	if perSecond > 0 {
		if burst < 1 {
			burst = 1
		}
		lim = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
	return &Limited{next: next, limiter: lim}
}

func (l *Limited) Generate(ctx context.Context, req Request) (string, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("oracle rate limit: %w", err)
	}
	return l.next.Generate(ctx, req)
}
