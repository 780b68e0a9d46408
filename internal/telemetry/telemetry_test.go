package telemetry

import (
	"bytes"
	"log"
	"testing"

	"barrage/server/logging"
)

func TestWrapLoggerForwards(t *testing.T) {
	var buf bytes.Buffer
	wrapped := WrapLogger(log.New(&buf, "", 0))
	wrapped.Printf("wind %0.2f", 1.5)
	if got := buf.String(); got != "wind 1.50\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestNilLoggerFuncIsSafe(t *testing.T) {
	var f LoggerFunc
	f.Printf("ignored")
}

func TestWrapMetricsCounts(t *testing.T) {
	metrics := logging.NewMetrics()
	wrapped := WrapMetrics(metrics)
	wrapped.Add("shots_fired", 2)
	wrapped.Add("shots_fired", 1)
	wrapped.Store("active_projectiles", 4)

	snapshot := wrapped.Snapshot()
	if snapshot["shots_fired"] != 3 {
		t.Fatalf("expected 3 shots, got %d", snapshot["shots_fired"])
	}
	if snapshot["active_projectiles"] != 4 {
		t.Fatalf("expected stored gauge 4, got %d", snapshot["active_projectiles"])
	}
}

func TestNopMetricsSnapshotIsEmpty(t *testing.T) {
	m := NopMetrics()
	m.Add("anything", 1)
	if len(m.Snapshot()) != 0 {
		t.Fatalf("expected empty snapshot")
	}
}
