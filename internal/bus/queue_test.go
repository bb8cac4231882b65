package bus

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestQueuePublishAndRun(t *testing.T) {
	q := NewQueue(4)
	for i := 0; i < 3; i++ {
		if err := q.TryPublish(Event{Recv: time.Now()}); err != nil {
			t.Fatalf("publish %d: %v", i, err)
		}
	}
	q.Close()

	var handled int
	q.Run(context.Background(), func(Event) { handled++ })
	if handled != 3 {
		t.Fatalf("handled count mismatch: got %d want 3", handled)
	}
}

func TestQueueFull(t *testing.T) {
	q := NewQueue(1)
	if err := q.TryPublish(Event{}); err != nil {
		t.Fatalf("first publish: %v", err)
	}
	if err := q.TryPublish(Event{}); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
}

func TestQueueClosed(t *testing.T) {
	q := NewQueue(1)
	q.Close()
	q.Close() // double close must be safe

	if err := q.TryPublish(Event{}); !errors.Is(err, ErrQueueClosed) {
		t.Fatalf("expected ErrQueueClosed, got %v", err)
	}
}

func TestQueueRunStopsOnContextCancel(t *testing.T) {
	q := NewQueue(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		q.Run(ctx, func(Event) {})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("run did not stop on context cancel")
	}
}
