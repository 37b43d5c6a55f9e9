package config

import (
	"os"
	"reflect"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, key := range []string{
		"APP_NAME", "NEXT_PUBLIC_DEPLOY_ENV", "NEXT_PUBLIC_SITE_URL", "CONTACT_FORM_EMAIL",
		"CONTACT_PROCESSING_LATENCY_MS", "RATE_LIMIT_ENABLED", "RATE_LIMIT_MAX_REQUESTS",
		"RATE_LIMIT_WINDOW_SECONDS", "RATE_LIMIT_BACKEND", "REDIS_DB", "CONTACT_FORM_SERVICE",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.App.Name != "Corazor Technology Website" {
		t.Errorf("App.Name = %q", cfg.App.Name)
	}
	if cfg.App.Env != "development" || cfg.App.IsProduction() {
		t.Errorf("App.Env = %q, want development", cfg.App.Env)
	}
	if cfg.Site.URL != "https://corazor.com" {
		t.Errorf("Site.URL = %q", cfg.Site.URL)
	}
	if cfg.Contact.RecipientEmail != "contact@corazor.com" {
		t.Errorf("Contact.RecipientEmail = %q", cfg.Contact.RecipientEmail)
	}
	if got := cfg.Contact.ProcessingLatency(); got != 500*time.Millisecond {
		t.Errorf("ProcessingLatency() = %v, want 500ms", got)
	}
	if cfg.RateLimit.Enabled {
		t.Error("rate limiting should be disabled by default")
	}
	if cfg.RateLimit.MaxRequests != 5 || cfg.RateLimit.Window() != time.Minute {
		t.Errorf("RateLimit = %+v", cfg.RateLimit)
	}
	if cfg.Contact.EmailEnabled() {
		t.Error("email should be disabled without service and key")
	}
	if cfg.Auth.AdminEnabled() || cfg.Auth.JWTSecret != "" {
		t.Errorf("admin should be disabled with no secret by default, got %+v", cfg.Auth)
	}
	if cfg.App.ProxyHeader != "" || len(cfg.App.TrustedProxies) != 0 {
		t.Errorf("proxy trust should be off by default, got %+v", cfg.App)
	}
}

func TestLoad_Overrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("NEXT_PUBLIC_DEPLOY_ENV", "Production")
	t.Setenv("NEXT_PUBLIC_SITE_URL", "https://example.com/")
	t.Setenv("CONTACT_PROCESSING_LATENCY_MS", "0")
	t.Setenv("CONTACT_FORM_SERVICE", "Resend")
	t.Setenv("CONTACT_FORM_API_KEY", "re_123")
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_WINDOW_SECONDS", "10")
	t.Setenv("RATE_LIMIT_BACKEND", "memory")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")
	t.Setenv("AUTH_JWT_SECRET", "a-long-random-secret")
	t.Setenv("HTTP_PROXY_HEADER", "X-Forwarded-For")
	t.Setenv("HTTP_TRUSTED_PROXIES", " 10.0.0.0/8, ,192.168.1.1 ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.App.IsProduction() {
		t.Error("expected production environment")
	}
	if cfg.Site.URL != "https://example.com" {
		t.Errorf("Site.URL = %q, trailing slash should be trimmed", cfg.Site.URL)
	}
	if cfg.Contact.ProcessingLatency() != 0 {
		t.Errorf("ProcessingLatency() = %v, want 0", cfg.Contact.ProcessingLatency())
	}
	if !cfg.Contact.EmailEnabled() {
		t.Error("expected email to be enabled")
	}
	if !cfg.RateLimit.Enabled || cfg.RateLimit.Window() != 10*time.Second {
		t.Errorf("RateLimit = %+v", cfg.RateLimit)
	}
	if !cfg.Auth.AdminEnabled() {
		t.Error("expected admin to be enabled with a hash and secret")
	}
	if cfg.App.ProxyHeader != "X-Forwarded-For" {
		t.Errorf("ProxyHeader = %q", cfg.App.ProxyHeader)
	}
	if want := []string{"10.0.0.0/8", "192.168.1.1"}; !reflect.DeepEqual(cfg.App.TrustedProxies, want) {
		t.Errorf("TrustedProxies = %v, want %v", cfg.App.TrustedProxies, want)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "bad redis db", env: map[string]string{"REDIS_DB": "x"}},
		{name: "unknown limiter backend", env: map[string]string{"RATE_LIMIT_BACKEND": "memcached"}},
		{name: "admin hash without jwt secret", env: map[string]string{
			"ADMIN_PASSWORD_HASH": "$2a$10$abcdefghijklmnopqrstuv",
			"AUTH_JWT_SECRET":     "",
		}},
		{name: "admin hash with placeholder jwt secret", env: map[string]string{
			"ADMIN_PASSWORD_HASH": "$2a$10$abcdefghijklmnopqrstuv",
			"AUTH_JWT_SECRET":     "dev-secret",
		}},
		{name: "redis backend without address", env: map[string]string{
			"RATE_LIMIT_ENABLED": "true",
			"RATE_LIMIT_BACKEND": "redis",
			"REDIS_ADDR":         "",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t, t.TempDir())
			t.Setenv("REDIS_DB", "")
			t.Setenv("RATE_LIMIT_BACKEND", "")
			t.Setenv("ADMIN_PASSWORD_HASH", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("Load() error = nil, want error")
			}
		})
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir for older toolchains).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore cwd: %v", err)
		}
	})
}
