package game

import (
	"github.com/vovakirdan/oddgravity/internal/config"
)

// Combo tracks the pickup/pass chain. Every hit inside the window grows the
// chain; letting the window lapse resets it. The multiplier grows one step
// per two hits and is capped.
type Combo struct {
	cfg       config.ComboConfig
	count     int
	lastHitMs float64
	active    bool
}

// NewCombo creates a combo tracker.
func NewCombo(cfg config.ComboConfig) *Combo {
	return &Combo{cfg: cfg}
}

// Reset clears the chain.
func (c *Combo) Reset() {
	c.count = 0
	c.active = false
	c.lastHitMs = 0
}

// Hit registers a chain event at the given simulation time.
func (c *Combo) Hit(nowMs float64) {
	c.count++
	c.active = true
	c.lastHitMs = nowMs
}

// Update expires the chain once the window has lapsed.
func (c *Combo) Update(nowMs float64) {
	if c.active && nowMs-c.lastHitMs > c.cfg.WindowMs {
		c.count = 0
		c.active = false
	}
}

// Count returns the current chain length.
func (c *Combo) Count() int {
	return c.count
}

// Multiplier returns the current score/coin multiplier: 1 + count/2,
// capped at the configured maximum.
func (c *Combo) Multiplier() int {
	m := 1 + c.count/2
	if m > c.cfg.MaxMultiplier {
		m = c.cfg.MaxMultiplier
	}
	return m
}
