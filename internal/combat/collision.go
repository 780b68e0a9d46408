package combat

import (
	"math"

	"barrage/server/internal/tank"
)

// DirectHitRadius is the distance from a tank's center within which a
// collision qualifies for the direct-hit damage multiplier.
const DirectHitRadius = 5.0

// TerrainCollider is the height-map surface the detector tests against.
type TerrainCollider interface {
	CheckCollision(x, y float64) bool
}

// TerrainHit reports whether the point is inside solid ground. A nil
// terrain means "no terrain", which never collides — this keeps dry-run
// trajectory previews working without a world.
func TerrainHit(terrain TerrainCollider, x, y float64) bool {
	if terrain == nil {
		return false
	}
	return terrain.CheckCollision(x, y)
}

// TankHitResult names the tank struck by a projectile point and whether the
// strike counts as a direct hit.
type TankHitResult struct {
	Tank      *tank.Tank
	DirectHit bool
}

// TankHit tests a point against the tanks' hull boxes. Destroyed tanks are
// skipped. When multiple hulls overlap the point, the first tank in the
// slice wins; callers control the tie-break by controlling the order. A nil
// or empty slice returns nil.
func TankHit(x, y float64, tanks []*tank.Tank) *TankHitResult {
	for _, candidate := range tanks {
		if candidate.Destroyed() {
			continue
		}
		if !candidate.Bounds().Contains(x, y) {
			continue
		}
		cx, cy := candidate.Center()
		direct := math.Hypot(x-cx, y-cy) <= DirectHitRadius
		return &TankHitResult{Tank: candidate, DirectHit: direct}
	}
	return nil
}

// rectEdgeDistance measures from a point to the nearest edge of a hull box;
// zero when the point is inside. Splash falloff uses this rather than the
// center distance so a hull overlapping the epicenter takes full damage.
func rectEdgeDistance(x, y float64, bounds tank.Rect) float64 {
	closestX := clamp(x, bounds.X, bounds.X+bounds.Width)
	closestY := clamp(y, bounds.Y, bounds.Y+bounds.Height)
	return math.Hypot(x-closestX, y-closestY)
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
