package component

// Health is a reusable health component for any entity that can take damage.
// Invuln counts down in seconds.
type Health struct {
	Max     int
	Current int
	Invuln  float64
	Dead    bool
}

// NewHealth creates a Health component with max/current initialized.
func NewHealth(max int) Health {
	if max <= 0 {
		max = 1
	}
	return Health{Max: max, Current: max}
}

// IsAlive reports whether the entity is alive.
func (h *Health) IsAlive() bool {
	return h != nil && !h.Dead && h.Current > 0
}

// ApplyDamage applies damage unless invulnerable and starts an invulnerability
// window of invuln seconds. Returns true if damage was applied.
func (h *Health) ApplyDamage(amount int, invuln float64) bool {
	if h == nil || h.Dead || h.Invuln > 0 || amount <= 0 {
		return false
	}
	h.Current -= amount
	if h.Current <= 0 {
		h.Current = 0
		h.Dead = true
		return true
	}
	if invuln > 0 {
		h.Invuln = invuln
	}
	return true
}

// Tick advances the invulnerability timer.
func (h *Health) Tick(dt float64) {
	if h == nil || h.Invuln <= 0 {
		return
	}
	h.Invuln -= dt
	if h.Invuln < 0 {
		h.Invuln = 0
	}
}

// Reset revives the entity at full health.
func (h *Health) Reset() {
	if h == nil {
		return
	}
	h.Current = h.Max
	h.Invuln = 0
	h.Dead = false
}
