package terrain

import (
	"math"

	"barrage/server/arsenal/contract"
)

// Terrain is a destructible column height map. Each column stores the
// surface elevation as a screen-space y value (larger y = lower ground).
// Everything at or below the surface is solid.
type Terrain struct {
	width   int
	height  int
	surface []float64

	dirty map[int]struct{}
}

// New builds a terrain with every column at the given surface elevation.
func New(width, height int, surfaceY float64) *Terrain {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	t := &Terrain{
		width:   width,
		height:  height,
		surface: make([]float64, width),
		dirty:   make(map[int]struct{}),
	}
	surfaceY = clamp(surfaceY, 0, float64(height))
	for i := range t.surface {
		t.surface[i] = surfaceY
	}
	return t
}

// Width returns the playfield width in pixels (columns).
func (t *Terrain) Width() int {
	if t == nil {
		return 0
	}
	return t.width
}

// Height returns the playfield height in pixels.
func (t *Terrain) Height() int {
	if t == nil {
		return 0
	}
	return t.height
}

// HeightAt returns the surface elevation for the column containing x.
// Coordinates outside the playfield clamp to the nearest column so slope
// sampling near the edges stays defined.
func (t *Terrain) HeightAt(x float64) float64 {
	if t == nil || len(t.surface) == 0 {
		return 0
	}
	return t.surface[t.column(x)]
}

// CheckCollision reports whether the point is inside solid ground. Points
// outside the horizontal bounds are not solid; the boundary rules own those.
func (t *Terrain) CheckCollision(x, y float64) bool {
	if t == nil || len(t.surface) == 0 {
		return false
	}
	if x < 0 || x >= float64(t.width) {
		return false
	}
	return y >= t.surface[int(x)]
}

// Deform applies a weapon's terrain operation centered on (x, y) with the
// given radius. Craters remove ground, dirt deposits it, tunnels open a
// passage where the carve circle reaches the surface, and burn leaves the
// shape untouched.
func (t *Terrain) Deform(x, y, radius float64, op contract.TerrainOp) {
	if t == nil || radius <= 0 || len(t.surface) == 0 {
		return
	}
	if op == contract.TerrainOpBurn {
		return
	}

	min := int(math.Floor(x - radius))
	max := int(math.Ceil(x + radius))
	if min < 0 {
		min = 0
	}
	if max >= t.width {
		max = t.width - 1
	}

	for col := min; col <= max; col++ {
		dx := float64(col) - x
		chord := radius*radius - dx*dx
		if chord < 0 {
			continue
		}
		half := math.Sqrt(chord)
		floor := y + half
		roof := y - half

		before := t.surface[col]
		switch op {
		case contract.TerrainOpDirt:
			// Deposit a mound: raise the surface toward the top of
			// the deposit circle.
			if roof < t.surface[col] {
				t.surface[col] = clamp(roof, 0, float64(t.height))
			}
		case contract.TerrainOpTunnel:
			// A tunnel only carves columns where the circle pierces
			// the surface; fully buried passes leave the height map
			// alone (a column map cannot represent a closed tube).
			if roof <= t.surface[col] && t.surface[col] <= floor {
				t.surface[col] = clamp(floor, 0, float64(t.height))
			}
		default:
			// Crater: open the ground down to the bottom of the
			// blast circle.
			if floor > t.surface[col] {
				t.surface[col] = clamp(floor, 0, float64(t.height))
			}
		}
		if t.surface[col] != before {
			t.dirty[col] = struct{}{}
		}
	}
}

// SnapTo returns y of the surface at x, for settling rollers and tanks.
func (t *Terrain) SnapTo(x float64) float64 {
	return t.HeightAt(x)
}

// ColumnPatch reports a changed column for incremental client updates.
type ColumnPatch struct {
	X       int     `json:"x"`
	Surface float64 `json:"surface"`
}

// DrainPatches returns the columns deformed since the previous drain and
// clears the dirty set. Order is unspecified; clients apply patches by key.
func (t *Terrain) DrainPatches() []ColumnPatch {
	if t == nil || len(t.dirty) == 0 {
		return nil
	}
	patches := make([]ColumnPatch, 0, len(t.dirty))
	for col := range t.dirty {
		patches = append(patches, ColumnPatch{X: col, Surface: t.surface[col]})
	}
	t.dirty = make(map[int]struct{})
	return patches
}

// Snapshot copies the full surface profile, for join payloads.
func (t *Terrain) Snapshot() []float64 {
	if t == nil {
		return nil
	}
	out := make([]float64, len(t.surface))
	copy(out, t.surface)
	return out
}

func (t *Terrain) column(x float64) int {
	col := int(x)
	if col < 0 {
		col = 0
	}
	if col >= t.width {
		col = t.width - 1
	}
	return col
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
