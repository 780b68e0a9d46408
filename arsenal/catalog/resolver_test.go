package catalog

import (
	"strings"
	"testing"

	"barrage/server/arsenal/contract"
)

func TestResolverServesBuiltinsWithoutSources(t *testing.T) {
	r, err := newResolver(contract.DefaultRegistry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	def, ok := r.Weapon("missile")
	if !ok {
		t.Fatalf("expected built-in missile")
	}
	if def.Kind != contract.KindStandard {
		t.Fatalf("expected standard kind, got %v", def.Kind)
	}

	ids := r.IDs()
	if len(ids) != len(contract.DefaultRegistry()) {
		t.Fatalf("expected %d weapons, got %d", len(contract.DefaultRegistry()), len(ids))
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Fatalf("ids not sorted: %v", ids)
		}
	}
}

func TestOverlayOverridesBuiltin(t *testing.T) {
	overlay := memorySource{
		name: "overlay.json",
		data: []byte(`[{"id":"missile","name":"Heavy Missile","kind":"standard","damage":35,"blastRadius":30}]`),
	}
	r, err := newResolver(contract.DefaultRegistry(), overlay)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	def, ok := r.Weapon("missile")
	if !ok || def.Damage != 35 {
		t.Fatalf("expected overlay to override missile damage, got %+v", def)
	}
}

func TestLaterSourcesWin(t *testing.T) {
	first := memorySource{name: "a.json", data: []byte(`[{"id":"custom","kind":"standard","damage":10,"blastRadius":10}]`)}
	second := memorySource{name: "b.json", data: []byte(`[{"id":"custom","kind":"standard","damage":50,"blastRadius":10}]`)}

	r, err := newResolver(contract.DefaultRegistry(), first, second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	def, _ := r.Weapon("custom")
	if def.Damage != 50 {
		t.Fatalf("expected the later source to win, got damage %d", def.Damage)
	}
}

func TestRejectsUnknownKind(t *testing.T) {
	overlay := memorySource{name: "bad.json", data: []byte(`[{"id":"mystery","kind":"laser","damage":10,"blastRadius":10}]`)}
	if _, err := newResolver(contract.DefaultRegistry(), overlay); err == nil {
		t.Fatalf("expected unknown kind to be rejected")
	}
}

func TestRejectsDuplicateIDsWithinSource(t *testing.T) {
	overlay := memorySource{
		name: "dup.json",
		data: []byte(`[{"id":"twin","kind":"standard","damage":1,"blastRadius":1},{"id":"twin","kind":"standard","damage":2,"blastRadius":1}]`),
	}
	_, err := newResolver(contract.DefaultRegistry(), overlay)
	if err == nil || !strings.Contains(err.Error(), "duplicate id") {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
}

func TestRejectsMisplacedModeBlock(t *testing.T) {
	overlay := memorySource{
		name: "bad.json",
		data: []byte(`[{"id":"odd","kind":"standard","damage":1,"blastRadius":1,"roll":{"timeoutMillis":1000}}]`),
	}
	if _, err := newResolver(contract.DefaultRegistry(), overlay); err == nil {
		t.Fatalf("expected misplaced roll block to be rejected")
	}
}

func TestMissingFileIsSkipped(t *testing.T) {
	r, err := Load(contract.DefaultRegistry(), "does/not/exist.json")
	if err != nil {
		t.Fatalf("expected missing file to be skipped, got %v", err)
	}
	if _, ok := r.Weapon("missile"); !ok {
		t.Fatalf("expected built-ins to survive a missing overlay")
	}
}
