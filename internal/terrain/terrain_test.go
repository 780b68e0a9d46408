package terrain

import (
	"testing"

	"barrage/server/arsenal/contract"
)

func TestCheckCollisionAgainstFlatSurface(t *testing.T) {
	terrain := New(200, 100, 60)

	if terrain.CheckCollision(50, 30) {
		t.Fatalf("expected open air above the surface")
	}
	if !terrain.CheckCollision(50, 60) {
		t.Fatalf("expected the surface itself to be solid")
	}
	if !terrain.CheckCollision(50, 90) {
		t.Fatalf("expected ground below the surface to be solid")
	}
	if terrain.CheckCollision(-5, 90) || terrain.CheckCollision(500, 90) {
		t.Fatalf("expected horizontal out-of-bounds to be non-solid")
	}
}

func TestCraterLowersSurface(t *testing.T) {
	terrain := New(200, 100, 60)
	terrain.Deform(100, 60, 10, contract.TerrainOpCrater)

	if got := terrain.HeightAt(100); got != 70 {
		t.Fatalf("expected crater depth 10 at the epicenter, got surface %v", got)
	}
	if got := terrain.HeightAt(109); got <= 60 {
		t.Fatalf("expected shallow crater near the rim, got surface %v", got)
	}
	if got := terrain.HeightAt(130); got != 60 {
		t.Fatalf("expected untouched ground outside the radius, got %v", got)
	}
}

func TestDirtDepositsMound(t *testing.T) {
	terrain := New(200, 100, 60)
	terrain.Deform(100, 60, 10, contract.TerrainOpDirt)

	if got := terrain.HeightAt(100); got != 50 {
		t.Fatalf("expected a 10px mound at the epicenter, got surface %v", got)
	}
	if got := terrain.HeightAt(130); got != 60 {
		t.Fatalf("expected untouched ground outside the radius, got %v", got)
	}
}

func TestBurnLeavesSurfaceUntouched(t *testing.T) {
	terrain := New(200, 100, 60)
	terrain.Deform(100, 60, 15, contract.TerrainOpBurn)

	for _, x := range []float64{90, 100, 110} {
		if got := terrain.HeightAt(x); got != 60 {
			t.Fatalf("expected burn to leave surface at 60, got %v at x=%v", got, x)
		}
	}
	if patches := terrain.DrainPatches(); len(patches) != 0 {
		t.Fatalf("expected no patches from a burn, got %d", len(patches))
	}
}

func TestTunnelOnlyCarvesPiercedColumns(t *testing.T) {
	terrain := New(200, 100, 60)
	// Circle centered well below the surface does not break through.
	terrain.Deform(100, 90, 5, contract.TerrainOpTunnel)
	if got := terrain.HeightAt(100); got != 60 {
		t.Fatalf("expected buried tunnel to leave the surface, got %v", got)
	}

	// A carve circle straddling the surface opens a trench.
	terrain.Deform(100, 62, 5, contract.TerrainOpTunnel)
	if got := terrain.HeightAt(100); got <= 60 {
		t.Fatalf("expected tunnel to open the surface, got %v", got)
	}
}

func TestDrainPatchesReportsDeformedColumns(t *testing.T) {
	terrain := New(200, 100, 60)
	terrain.Deform(100, 60, 3, contract.TerrainOpCrater)

	patches := terrain.DrainPatches()
	if len(patches) == 0 {
		t.Fatalf("expected patches after a crater")
	}
	for _, patch := range patches {
		if patch.Surface <= 60 {
			t.Fatalf("expected lowered surface in patch, got %+v", patch)
		}
	}
	if again := terrain.DrainPatches(); len(again) != 0 {
		t.Fatalf("expected drain to clear the dirty set, got %d", len(again))
	}
}

func TestGenerateStaysInsideBand(t *testing.T) {
	terrain := Generate(1200, 700, 42)
	lower := 700 * minSurfaceFraction
	upper := 700 * maxSurfaceFraction
	for col := 0; col < terrain.Width(); col++ {
		surface := terrain.HeightAt(float64(col))
		if surface < lower || surface > upper {
			t.Fatalf("column %d: surface %v outside band [%v, %v]", col, surface, lower, upper)
		}
	}
}

func TestGenerateIsSeedStable(t *testing.T) {
	a := Generate(400, 300, 99)
	b := Generate(400, 300, 99)
	for col := 0; col < a.Width(); col++ {
		if a.HeightAt(float64(col)) != b.HeightAt(float64(col)) {
			t.Fatalf("column %d: same seed produced different terrain", col)
		}
	}
}

func TestNilTerrainIsInert(t *testing.T) {
	var terrain *Terrain
	if terrain.CheckCollision(10, 10) {
		t.Fatalf("expected nil terrain to report no collision")
	}
	terrain.Deform(10, 10, 5, contract.TerrainOpCrater)
	if got := terrain.HeightAt(10); got != 0 {
		t.Fatalf("expected zero height from nil terrain, got %v", got)
	}
}
