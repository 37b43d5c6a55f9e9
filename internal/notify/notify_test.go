package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/corazor/contact-service/internal/domain"
)

func sampleSubmission() domain.ContactSubmission {
	return domain.ContactSubmission{
		ID:        "6f1c3c2e-1111-4d2a-9a55-0d7a3b8e1f00",
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		Phone:     "5551234567",
		Message:   "I need a <b>new</b> platform built",
		CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestRenderSubmissionHTML(t *testing.T) {
	html, err := RenderSubmissionHTML(sampleSubmission())
	if err != nil {
		t.Fatalf("RenderSubmissionHTML() error = %v", err)
	}
	if strings.Contains(html, "<b>new</b>") {
		t.Error("message was not escaped")
	}
	if !strings.Contains(html, "&lt;b&gt;new&lt;/b&gt;") {
		t.Errorf("escaped message missing from %q", html)
	}
	if !strings.Contains(html, "<strong>Company:</strong> N/A") {
		t.Error("blank company should render as N/A")
	}
}

func TestSubmissionSubject(t *testing.T) {
	s := sampleSubmission()
	if got := SubmissionSubject(s); got != "New inquiry from Jane Doe" {
		t.Errorf("SubmissionSubject() = %q", got)
	}
	s.Company = "Acme"
	if got := SubmissionSubject(s); got != "New inquiry from Jane Doe (Acme)" {
		t.Errorf("SubmissionSubject() = %q", got)
	}
}

func TestCRMWebhook_PostSubmission(t *testing.T) {
	var got CRMLead
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	hook := NewCRMWebhook(srv.URL, "https://corazor.com", time.Second)
	if err := hook.PostSubmission(context.Background(), sampleSubmission()); err != nil {
		t.Fatalf("PostSubmission() error = %v", err)
	}
	if got.Email != "jane@example.com" || got.Source != "https://corazor.com" {
		t.Errorf("lead = %+v", got)
	}
}

func TestCRMWebhook_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewCRMWebhook(srv.URL, "site", time.Second).PostSubmission(context.Background(), sampleSubmission())
	if err == nil || !strings.Contains(err.Error(), "502") {
		t.Errorf("PostSubmission() error = %v, want status 502", err)
	}
}

func TestCRMWebhook_ExpiredContext(t *testing.T) {
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	if err := NewCRMWebhook("http://127.0.0.1:1", "site", 0).PostSubmission(ctx, sampleSubmission()); err == nil {
		t.Error("expected error for expired context")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{name: "shorter than limit", in: "abc", n: 5, want: "abc"},
		{name: "ascii cut", in: "abcdef", n: 3, want: "abc"},
		{name: "cut inside two byte rune", in: "aé", n: 2, want: "a"},
		{name: "cut inside four byte rune", in: "ab😀", n: 4, want: "ab"},
		{name: "cut on rune boundary", in: "éé", n: 2, want: "é"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.n)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncate(%q, %d) returned invalid UTF-8", tt.in, tt.n)
			}
		})
	}
}
