package internal

import (
	"context"
	"time"
)

// defaultCallTimeout bounds outbound calls whose timeout is not configured.
const defaultCallTimeout = 5 * time.Second

// WithTimeout derives a deadline context for an outbound call, substituting
// a conservative default when the configured duration is missing or invalid.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = defaultCallTimeout
	}
	return context.WithTimeout(ctx, duration)
}
