package progression

import (
	"testing"

	"github.com/vovakirdan/oddgravity/internal/game"
	"github.com/vovakirdan/oddgravity/internal/persist"
)

func TestAchievementFirstFlight(t *testing.T) {
	tr := NewTracker(persist.NewMemory())

	var stats Stats
	sum := &game.RunSummary{Score: 1, Mode: "Classic"}
	stats.Fold(sum)

	unlocked := tr.Evaluate(&stats, sum, day1)
	if len(unlocked) == 0 {
		t.Fatal("First run should unlock a badge")
	}
	if unlocked[0].ID != "first_flight" {
		t.Errorf("First badge = %q, expected first_flight", unlocked[0].ID)
	}
}

func TestAchievementUnlocksOnce(t *testing.T) {
	tr := NewTracker(persist.NewMemory())

	var stats Stats
	sum := &game.RunSummary{Score: 30, Mode: "Classic"}
	stats.Fold(sum)

	tr.Evaluate(&stats, sum, day1)
	if !tr.IsUnlocked("score_25") {
		t.Fatal("score_25 should unlock")
	}

	again := tr.Evaluate(&stats, sum, day1)
	for _, a := range again {
		if a.ID == "score_25" {
			t.Error("Badge unlocked twice")
		}
	}
}

func TestAchievementThresholds(t *testing.T) {
	tr := NewTracker(persist.NewMemory())

	var stats Stats
	low := &game.RunSummary{Score: 10, Mode: "Classic"}
	stats.Fold(low)
	tr.Evaluate(&stats, low, day1)

	if tr.IsUnlocked("score_100") {
		t.Error("score_100 should stay locked at score 10")
	}

	high := &game.RunSummary{Score: 120, MaxCombo: 11, ShieldUsed: true, Mode: "Classic"}
	stats.Fold(high)
	tr.Evaluate(&stats, high, day1)

	for _, id := range []string{"score_25", "score_50", "score_100", "combo_10", "shield_clutch"} {
		if !tr.IsUnlocked(id) {
			t.Errorf("Badge %q should be unlocked", id)
		}
	}
}

func TestAchievementCoverageBadges(t *testing.T) {
	tr := NewTracker(persist.NewMemory())

	var stats Stats
	kinds := []string{"shield", "shrink", "slowmo", "ghost", "magnet", "gravity_lock"}
	var last *game.RunSummary
	for _, mode := range game.ModeNames() {
		sum := &game.RunSummary{Score: 1, Mode: mode, PowerupKinds: kinds}
		stats.Fold(sum)
		last = sum
	}

	tr.Evaluate(&stats, last, day1)
	if !tr.IsUnlocked("powerup_collector") {
		t.Error("Full powerup coverage should unlock its badge")
	}
	if !tr.IsUnlocked("mode_tourist") {
		t.Error("Full mode coverage should unlock its badge")
	}
}

func TestAchievementPersistence(t *testing.T) {
	store := persist.NewMemory()
	tr := NewTracker(store)

	var stats Stats
	sum := &game.RunSummary{Score: 1, Mode: "Classic"}
	stats.Fold(sum)
	tr.Evaluate(&stats, sum, day1)

	tr2 := NewTracker(store)
	if !tr2.IsUnlocked("first_flight") {
		t.Error("Unlocks should survive a reload")
	}
	if tr2.UnlockedCount() != tr.UnlockedCount() {
		t.Errorf("Reloaded count %d != %d", tr2.UnlockedCount(), tr.UnlockedCount())
	}
}
