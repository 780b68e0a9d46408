package logging_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"barrage/server/logging"
	"barrage/server/logging/sinks"
)

func newTestRouter(t *testing.T, cfg logging.Config) (*logging.Router, *sinks.MemorySink) {
	t.Helper()
	memory := sinks.NewMemorySink()
	router := logging.NewRouter(cfg, logging.SystemClock{}, log.New(os.Stderr, "", 0), []logging.NamedSink{
		{Name: "memory", Sink: memory},
	})
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		router.Close(ctx)
	})
	return router, memory
}

func waitForEvents(t *testing.T, memory *sinks.MemorySink, count int) []logging.Event {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		events := memory.Events()
		if len(events) >= count {
			return events
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d events, got %d", count, len(memory.Events()))
	return nil
}

func TestRouterDeliversEventsToSinks(t *testing.T) {
	cfg := logging.DefaultConfig()
	router, memory := newTestRouter(t, cfg)

	router.Publish(context.Background(), logging.Event{
		Type:     "combat.explosion",
		Tick:     7,
		Actor:    logging.ProjectileRef("proj-1"),
		Severity: logging.SeverityInfo,
	})

	events := waitForEvents(t, memory, 1)
	if events[0].Type != "combat.explosion" {
		t.Fatalf("expected explosion event, got %q", events[0].Type)
	}
	if events[0].Tick != 7 {
		t.Fatalf("expected tick 7, got %d", events[0].Tick)
	}
	if events[0].Time.IsZero() {
		t.Fatalf("expected the router to stamp the event time")
	}
}

func TestRouterFiltersBelowMinimumSeverity(t *testing.T) {
	cfg := logging.DefaultConfig()
	cfg.MinimumSeverity = logging.SeverityWarn
	router, memory := newTestRouter(t, cfg)

	router.Publish(context.Background(), logging.Event{Type: "noise", Severity: logging.SeverityInfo})
	router.Publish(context.Background(), logging.Event{Type: "signal", Severity: logging.SeverityWarn})

	events := waitForEvents(t, memory, 1)
	for _, event := range events {
		if event.Type == "noise" {
			t.Fatalf("info event leaked through a warn filter")
		}
	}
}

func TestRouterMergesConfiguredFields(t *testing.T) {
	cfg := logging.DefaultConfig()
	cfg.Fields = map[string]any{"match": "test-match"}
	router, memory := newTestRouter(t, cfg)

	router.Publish(context.Background(), logging.Event{Type: "combat.damage", Severity: logging.SeverityInfo})

	events := waitForEvents(t, memory, 1)
	if events[0].Extra["match"] != "test-match" {
		t.Fatalf("expected configured field on event, got %v", events[0].Extra)
	}
}

func TestRouterDropsWhenQueueIsFull(t *testing.T) {
	cfg := logging.DefaultConfig()
	cfg.BufferSize = 1

	blocked := make(chan struct{})
	slow := sinkFunc(func(logging.Event) error {
		<-blocked
		return nil
	})
	router := logging.NewRouter(cfg, logging.SystemClock{}, log.New(os.Stderr, "", 0), []logging.NamedSink{
		{Name: "slow", Sink: slow},
	})

	for i := 0; i < 50; i++ {
		router.Publish(context.Background(), logging.Event{Type: "flood", Severity: logging.SeverityInfo})
	}
	close(blocked)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	router.Close(ctx)

	stats := router.Stats()
	if stats.DroppedTotal == 0 {
		t.Fatalf("expected drops under backpressure, stats %+v", stats)
	}
	if stats.EventsTotal == 0 {
		t.Fatalf("expected some events processed, stats %+v", stats)
	}
}

func TestPublishAfterCloseIsIgnored(t *testing.T) {
	cfg := logging.DefaultConfig()
	memory := sinks.NewMemorySink()
	router := logging.NewRouter(cfg, logging.SystemClock{}, log.New(os.Stderr, "", 0), []logging.NamedSink{
		{Name: "memory", Sink: memory},
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := router.Close(ctx); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	router.Publish(context.Background(), logging.Event{Type: "late", Severity: logging.SeverityInfo})
	if len(memory.Events()) != 0 {
		t.Fatalf("expected no events after close, got %d", len(memory.Events()))
	}
}

type sinkFunc func(logging.Event) error

func (f sinkFunc) Write(event logging.Event) error { return f(event) }
func (f sinkFunc) Close(context.Context) error     { return nil }
