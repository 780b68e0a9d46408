package contract

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDefaultRegistryValidates(t *testing.T) {
	reg := DefaultRegistry()
	if err := reg.Validate(); err != nil {
		t.Fatalf("expected default registry to validate, got %v", err)
	}
	index := reg.Index()
	if len(index) != len(reg) {
		t.Fatalf("expected %d indexed weapons, got %d", len(reg), len(index))
	}
}

func TestValidateRejectsDuplicateIDs(t *testing.T) {
	reg := Registry{
		{ID: "missile", Kind: KindStandard},
		{ID: "missile", Kind: KindStandard},
	}
	if err := reg.Validate(); err == nil {
		t.Fatalf("expected duplicate id to fail validation")
	}
}

func TestValidateRejectsMisplacedSpecBlocks(t *testing.T) {
	cases := []struct {
		name string
		def  Definition
	}{
		{"split on standard", Definition{ID: "a", Kind: KindStandard, Split: &SplitSpec{Count: 2}}},
		{"roll on digging", Definition{ID: "b", Kind: KindDigging, Roll: &RollSpec{TimeoutMillis: 100}}},
		{"tunnel on rolling", Definition{ID: "c", Kind: KindRolling, Tunnel: &TunnelSpec{Distance: 10}}},
	}
	for _, tc := range cases {
		if err := (Registry{tc.def}).Validate(); err == nil {
			t.Fatalf("%s: expected validation failure", tc.name)
		}
	}
}

func TestDefinitionDefaults(t *testing.T) {
	var def Definition
	if got := def.RollTimeout(); got != DefaultRollTimeout {
		t.Fatalf("expected default roll timeout, got %v", got)
	}
	if got := def.HitMultiplier(); got != DefaultDirectHitMultiplier {
		t.Fatalf("expected default hit multiplier, got %v", got)
	}
	count, angle := def.SplitParams()
	if count != DefaultSplitCount || angle != DefaultSplitAngleDeg {
		t.Fatalf("expected default split params, got %d/%v", count, angle)
	}
	distance, radius := def.TunnelParams()
	if distance != DefaultTunnelDistance || radius != DefaultTunnelRadius {
		t.Fatalf("expected default tunnel params, got %v/%v", distance, radius)
	}
	if got := def.Op(); got != TerrainOpCrater {
		t.Fatalf("expected crater op by default, got %q", got)
	}
}

func TestDefinitionOverrides(t *testing.T) {
	def := Definition{
		Kind:                KindRolling,
		DirectHitMultiplier: 2.0,
		Roll:                &RollSpec{TimeoutMillis: 4500},
	}
	if got := def.RollTimeout(); got != 4500*time.Millisecond {
		t.Fatalf("expected 4.5s roll timeout, got %v", got)
	}
	if got := def.HitMultiplier(); got != 2.0 {
		t.Fatalf("expected override multiplier, got %v", got)
	}
}

func TestKindJSONRoundTrip(t *testing.T) {
	for kind, name := range map[Kind]string{
		KindStandard:  "standard",
		KindSplitting: "splitting",
		KindRolling:   "rolling",
		KindDigging:   "digging",
		KindNuclear:   "nuclear",
	} {
		data, err := json.Marshal(kind)
		if err != nil {
			t.Fatalf("marshal %v: %v", kind, err)
		}
		if string(data) != `"`+name+`"` {
			t.Fatalf("expected %q, got %s", name, data)
		}
		var decoded Kind
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if decoded != kind {
			t.Fatalf("round trip mismatch: %v != %v", decoded, kind)
		}
	}

	var decoded Kind
	if err := json.Unmarshal([]byte(`"cluster"`), &decoded); err == nil {
		t.Fatalf("expected unknown kind to be rejected")
	}
}

func TestFallbackIsStandard(t *testing.T) {
	def := Fallback()
	if def.Kind != KindStandard {
		t.Fatalf("expected fallback to be standard, got %v", def.Kind)
	}
	if def.Damage <= 0 || def.BlastRadius <= 0 {
		t.Fatalf("expected fallback to carry usable stats, got %+v", def)
	}
}
