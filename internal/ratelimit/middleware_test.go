package ratelimit

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/corazor/contact-service/internal/observability"
	apperrors "github.com/corazor/contact-service/pkg/util"
)

func TestMiddleware(t *testing.T) {
	limiter := NewLimiter(NewMemoryStore(), 2, time.Minute)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"success": false, "message": de.Message})
		},
	})
	app.Post("/api/contact", Middleware(limiter, KeyByIP("contact"), zap.NewNop(), metrics), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/contact", nil))
		if err != nil {
			t.Fatalf("app.Test error = %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i+1, resp.StatusCode)
		}
		if resp.Header.Get("X-RateLimit-Limit") != "2" {
			t.Errorf("X-RateLimit-Limit = %q", resp.Header.Get("X-RateLimit-Limit"))
		}
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/contact", nil))
	if err != nil {
		t.Fatalf("app.Test error = %v", err)
	}
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", resp.StatusCode)
	}
	if resp.Header.Get("X-RateLimit-Remaining") != "0" {
		t.Errorf("X-RateLimit-Remaining = %q", resp.Header.Get("X-RateLimit-Remaining"))
	}
	if resp.Header.Get(fiber.HeaderRetryAfter) == "" {
		t.Error("Retry-After header missing")
	}

	body, _ := io.ReadAll(resp.Body)
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if payload["message"] != apperrors.MsgRateLimited {
		t.Errorf("message = %v", payload["message"])
	}
	if metrics.Snapshot().RateLimitedCalls != 1 {
		t.Errorf("RateLimitedCalls = %d, want 1", metrics.Snapshot().RateLimitedCalls)
	}
}

func TestMiddleware_FailsOpen(t *testing.T) {
	app := fiber.New()
	app.Get("/", Middleware(NewLimiter(failingStore{}, 1, time.Minute), KeyByIP("x"), zap.NewNop(), nil), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("app.Test error = %v", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want 204", resp.StatusCode)
	}
}
