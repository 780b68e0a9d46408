package tank

import "testing"

func TestBoundsAnchoredOnBase(t *testing.T) {
	tk := New("tank-1", 100, 200)
	bounds := tk.Bounds()
	if bounds.X != 100-DefaultWidth/2 {
		t.Fatalf("expected bounds centered on x, got %+v", bounds)
	}
	if bounds.Y != 200-DefaultHeight {
		t.Fatalf("expected bounds to rise from the base, got %+v", bounds)
	}
	cx, cy := tk.Center()
	if cx != 100 || cy != 200-DefaultHeight/2 {
		t.Fatalf("expected center (100, %v), got (%v, %v)", 200-DefaultHeight/2, cx, cy)
	}
}

func TestRectContainsInclusiveEdges(t *testing.T) {
	rect := Rect{X: 10, Y: 20, Width: 30, Height: 10}
	if !rect.Contains(10, 20) || !rect.Contains(40, 30) {
		t.Fatalf("expected edges to count as contained")
	}
	if rect.Contains(9.9, 25) || rect.Contains(25, 30.1) {
		t.Fatalf("expected points outside the rect to be rejected")
	}
}

func TestApplyDamageClampsAndReportsDestruction(t *testing.T) {
	tk := New("tank-1", 0, 0)
	if destroyed := tk.ApplyDamage(40); destroyed {
		t.Fatalf("expected tank to survive 40 damage")
	}
	if tk.Health != 60 {
		t.Fatalf("expected 60 health, got %d", tk.Health)
	}
	if destroyed := tk.ApplyDamage(75); !destroyed {
		t.Fatalf("expected lethal damage to report destruction")
	}
	if tk.Health != 0 {
		t.Fatalf("expected health clamped at 0, got %d", tk.Health)
	}
	if destroyed := tk.ApplyDamage(10); destroyed {
		t.Fatalf("expected no double destruction report")
	}
}

func TestMoneyNeverGoesNegative(t *testing.T) {
	tk := New("tank-1", 0, 0)
	tk.AddMoney(100)
	tk.AddMoney(-250)
	if tk.Money != 0 {
		t.Fatalf("expected money clamped at 0, got %d", tk.Money)
	}
}

func TestNilTankIsInert(t *testing.T) {
	var tk *Tank
	if !tk.Destroyed() {
		t.Fatalf("expected nil tank to read as destroyed")
	}
	if tk.ApplyDamage(10) {
		t.Fatalf("expected nil tank to absorb no damage")
	}
	tk.AddMoney(10)
}
