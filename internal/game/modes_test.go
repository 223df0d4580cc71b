package game

import (
	"testing"

	"github.com/vovakirdan/oddgravity/internal/config"
	"github.com/vovakirdan/oddgravity/internal/core"
)

func TestModeByName(t *testing.T) {
	if m := ModeByName("Bouncy"); !m.Bouncy {
		t.Error("Bouncy preset should carry its flag")
	}
	if m := ModeByName("Inverted"); m.StartGravity != -1 {
		t.Errorf("Inverted should start with upward gravity, got %f", m.StartGravity)
	}
	if m := ModeByName("no-such-mode"); m.Name != "Classic" {
		t.Errorf("Unknown mode should fall back to Classic, got %q", m.Name)
	}
}

func TestModeNames(t *testing.T) {
	names := ModeNames()
	if len(names) != 7 {
		t.Fatalf("Expected 7 presets, got %d", len(names))
	}
	if names[0] != "Classic" {
		t.Errorf("Classic should lead the table, got %q", names[0])
	}
	seen := make(map[string]bool)
	for _, n := range names {
		if seen[n] {
			t.Errorf("Duplicate preset name %q", n)
		}
		seen[n] = true
	}
}

func TestRulesBaselineFallback(t *testing.T) {
	cfg := config.DefaultGameConfig()
	g := New(cfg, DefaultRules(1, "Classic"))

	if g.rules.FlipEveryMs != cfg.Physics.BaseFlipMs {
		t.Errorf("Zero flip baseline should fall back to config, got %f", g.rules.FlipEveryMs)
	}
	if g.rules.ObstacleSpeed != cfg.Physics.BaseSpeed {
		t.Errorf("Zero speed baseline should fall back to config, got %f", g.rules.ObstacleSpeed)
	}
	if g.rules.FreezeMs != cfg.Physics.BaseFreezeMs {
		t.Errorf("Zero freeze baseline should fall back to config, got %f", g.rules.FreezeMs)
	}
}

func TestRulesExplicitBaseline(t *testing.T) {
	cfg := config.DefaultGameConfig()
	rules := Rules{Seed: 1, Mode: ModeByName("Classic"), FlipEveryMs: 3000, ObstacleSpeed: 2.5, FreezeMs: 500}
	g := New(cfg, rules)
	g.Reset(core.RuntimeConfig{TickRate: 60, Seed: 1})

	if g.rules.FlipEveryMs != 3000 || g.rules.ObstacleSpeed != 2.5 || g.rules.FreezeMs != 500 {
		t.Errorf("Explicit baselines should survive, got %+v", g.rules)
	}
}

func TestInvertedStartGravity(t *testing.T) {
	g := newTestGame(1, "Inverted")

	if g.gravityDir != -1 {
		t.Errorf("Inverted run should start pulling up, got %f", g.gravityDir)
	}

	g.Step(flapFrame())
	if g.velY <= 0 {
		t.Errorf("Flap against upward gravity should kick down, got %f", g.velY)
	}
}
