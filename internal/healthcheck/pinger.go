package healthcheck

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UserAgent identifies the pinger to the site.
const UserAgent = "Corazor-Health-Check/1.0"

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusError     = "error"
)

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// Result is the outcome of one health check.
type Result struct {
	Status     string `json:"status"`
	Timestamp  string `json:"timestamp"`
	StatusCode int    `json:"status_code,omitempty"`
}

// Pinger calls the site's health endpoint from outside, the way an external
// cron service would.
type Pinger struct {
	url     string
	timeout time.Duration
	logger  *zap.Logger
	now     func() time.Time
}

// NewPinger targets {siteURL}/api/health.
func NewPinger(siteURL string, timeout time.Duration, logger *zap.Logger) *Pinger {
	return &Pinger{
		url:     strings.TrimRight(siteURL, "/") + "/api/health",
		timeout: timeout,
		logger:  logger,
		now:     time.Now,
	}
}

// Check performs a single GET. Any 2xx is healthy, other statuses are
// unhealthy and transport failures are reported as error.
func (p *Pinger) Check(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return p.errored(err)
	}

	agent := fiber.Get(p.url).UserAgent(UserAgent)
	if p.timeout > 0 {
		agent = agent.Timeout(p.timeout)
	}
	status, _, errs := agent.Bytes()
	if len(errs) > 0 {
		return p.errored(errors.Join(errs...))
	}

	if status >= 200 && status <= 299 {
		p.logger.Info("health check passed", zap.String("url", p.url), zap.Int("status", status))
		return p.result(StatusHealthy, status)
	}
	p.logger.Error("health check failed", zap.String("url", p.url), zap.Int("status", status))
	return p.result(StatusUnhealthy, status)
}

func (p *Pinger) errored(err error) Result {
	p.logger.Error("health check error", zap.String("url", p.url), zap.Error(err))
	return p.result(StatusError, 0)
}

func (p *Pinger) result(status string, code int) Result {
	return Result{Status: status, Timestamp: p.now().UTC().Format(isoMillis), StatusCode: code}
}
