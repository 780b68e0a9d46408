package sinks

import (
	"bytes"
	"strings"
	"testing"

	"barrage/server/logging"
)

func TestConsoleSinkPlainOutput(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf, logging.ConsoleConfig{})

	if err := sink.Write(logging.Event{
		Type:     "combat.explosion",
		Tick:     12,
		Actor:    logging.ProjectileRef("proj-3"),
		Severity: logging.SeverityInfo,
	}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	line := buf.String()
	if !strings.Contains(line, "[combat.explosion] tick=12 actor=projectile:proj-3 severity=info") {
		t.Fatalf("unexpected console line: %q", line)
	}
	if strings.Contains(line, "\x1b[") {
		t.Fatalf("expected no color codes without UseColor, got %q", line)
	}
}

func TestConsoleSinkColorsSeverity(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf, logging.ConsoleConfig{UseColor: true})

	if err := sink.Write(logging.Event{
		Type:     "combat.tank_destroyed",
		Actor:    logging.TankRef("tank-1"),
		Severity: logging.SeverityWarn,
	}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	line := buf.String()
	if !strings.Contains(line, "severity=\x1b[33mwarn\x1b[0m") {
		t.Fatalf("expected the severity colored, got %q", line)
	}
}
