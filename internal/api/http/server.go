package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/corazor/contact-service/internal/config"
)

// NewServerConfig derives Fiber settings from app configuration. With a
// proxy header set, c.IP() reports the first valid address from that header,
// so per-client rate limits work behind a CDN or load balancer. When trusted
// proxies are listed, the header is only honoured on connections from them.
func NewServerConfig(app config.AppConfig) fiber.Config {
	cfg := fiber.Config{AppName: app.Name}
	if app.ProxyHeader == "" {
		return cfg
	}
	cfg.ProxyHeader = app.ProxyHeader
	cfg.EnableIPValidation = true
	if len(app.TrustedProxies) > 0 {
		cfg.EnableTrustedProxyCheck = true
		cfg.TrustedProxies = app.TrustedProxies
	}
	return cfg
}
