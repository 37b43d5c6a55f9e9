package events

import (
	"context"
	"errors"
	"testing"
)

func TestInMemoryDispatcher_Publish(t *testing.T) {
	d := NewInMemoryDispatcher()
	var calls []string

	d.Subscribe(EventContactSubmitted, func(ctx context.Context, e Event) error {
		calls = append(calls, "first")
		return errors.New("email down")
	})
	d.Subscribe(EventContactSubmitted, func(ctx context.Context, e Event) error {
		calls = append(calls, "second")
		return nil
	})
	d.Subscribe(EventType("other"), func(ctx context.Context, e Event) error {
		calls = append(calls, "other")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventContactSubmitted})
	if err == nil || err.Error() != "email down" {
		t.Errorf("Publish() error = %v, want email down", err)
	}
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Errorf("calls = %v, want [first second]", calls)
	}
}

func TestInMemoryDispatcher_NoListeners(t *testing.T) {
	if err := NewInMemoryDispatcher().Publish(context.Background(), Event{Type: EventContactSubmitted}); err != nil {
		t.Errorf("Publish() error = %v, want nil", err)
	}
}
