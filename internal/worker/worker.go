package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/corazor/contact-service/internal/ratelimit"
	"github.com/corazor/contact-service/internal/service"
)

// Background bundles the in-process jobs started next to the HTTP server.
type Background struct {
	Notifications  *service.NotificationService
	RateLimitStore *ratelimit.MemoryStore
	PruneInterval  time.Duration
	Logger         *zap.Logger
}

// Start registers notification handlers and launches the limiter janitor.
// The janitor stops when ctx is cancelled.
func Start(ctx context.Context, bg Background) {
	if bg.Notifications != nil {
		bg.Notifications.RegisterHandlers()
	}
	if bg.RateLimitStore == nil {
		return
	}
	interval := bg.PruneInterval
	if interval <= 0 {
		interval = time.Minute
	}
	if bg.Logger != nil {
		bg.Logger.Debug("starting rate limit janitor", zap.Duration("interval", interval))
	}
	go bg.RateLimitStore.RunJanitor(ctx, interval)
}
