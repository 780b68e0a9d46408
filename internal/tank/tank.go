package tank

// Default hull dimensions in pixels. Every tank uses the same hitbox; the
// sprite may differ but collisions do not.
const (
	DefaultWidth  = 36.0
	DefaultHeight = 20.0

	DefaultMaxHealth = 100
)

// Rect is an axis-aligned bounding box in world pixels.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains reports whether the point lies inside the rectangle. Edges are
// inclusive so a projectile grazing the hull still counts.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// Tank is one player's vehicle. X is the hull center and Y the track base,
// so a tank at (x, y) sits on terrain with surface y.
type Tank struct {
	ID        string  `json:"id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Health    int     `json:"health"`
	MaxHealth int     `json:"maxHealth"`
	Money     int     `json:"money"`
}

// New creates a tank at the given base position with full health.
func New(id string, x, y float64) *Tank {
	return &Tank{
		ID:        id,
		X:         x,
		Y:         y,
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		Health:    DefaultMaxHealth,
		MaxHealth: DefaultMaxHealth,
	}
}

// Bounds returns the hull hitbox.
func (t *Tank) Bounds() Rect {
	if t == nil {
		return Rect{}
	}
	width := t.Width
	if width <= 0 {
		width = DefaultWidth
	}
	height := t.Height
	if height <= 0 {
		height = DefaultHeight
	}
	return Rect{
		X:      t.X - width/2,
		Y:      t.Y - height,
		Width:  width,
		Height: height,
	}
}

// Center returns the geometric center of the hull.
func (t *Tank) Center() (x, y float64) {
	if t == nil {
		return 0, 0
	}
	bounds := t.Bounds()
	return bounds.X + bounds.Width/2, bounds.Y + bounds.Height/2
}

// Destroyed reports whether the tank is out of the round.
func (t *Tank) Destroyed() bool {
	return t == nil || t.Health <= 0
}

// ApplyDamage subtracts health, clamping at zero. It returns true when this
// call destroyed the tank.
func (t *Tank) ApplyDamage(amount int) bool {
	if t == nil || amount <= 0 || t.Health <= 0 {
		return false
	}
	t.Health -= amount
	if t.Health <= 0 {
		t.Health = 0
		return true
	}
	return false
}

// AddMoney credits damage rewards. Negative deltas (purchases) clamp at zero.
func (t *Tank) AddMoney(delta int) {
	if t == nil {
		return
	}
	t.Money += delta
	if t.Money < 0 {
		t.Money = 0
	}
}
