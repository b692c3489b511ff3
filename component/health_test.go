package component

import "testing"

func TestHealthInvulnerabilityWindow(t *testing.T) {
	h := NewHealth(3)
	if !h.ApplyDamage(1, 0.5) {
		t.Fatalf("first hit should apply")
	}
	if h.ApplyDamage(1, 0.5) {
		t.Fatalf("hit during invulnerability should be ignored")
	}
	h.Tick(0.3)
	if h.ApplyDamage(1, 0.5) {
		t.Fatalf("window not over yet")
	}
	h.Tick(0.3)
	if !h.ApplyDamage(1, 0.5) {
		t.Fatalf("hit after window should apply")
	}
	if h.Current != 1 {
		t.Fatalf("current = %d, want 1", h.Current)
	}
}

func TestHealthDeathAndReset(t *testing.T) {
	h := NewHealth(2)
	h.ApplyDamage(5, 0)
	if h.IsAlive() || !h.Dead || h.Current != 0 {
		t.Fatalf("expected dead at 0, got %+v", h)
	}
	if h.ApplyDamage(1, 0) {
		t.Fatalf("dead entities take no damage")
	}
	h.Reset()
	if !h.IsAlive() || h.Current != 2 {
		t.Fatalf("reset should revive, got %+v", h)
	}
}
