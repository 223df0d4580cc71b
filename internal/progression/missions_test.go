package progression

import (
	"testing"
	"time"

	"github.com/vovakirdan/oddgravity/internal/game"
	"github.com/vovakirdan/oddgravity/internal/persist"
)

var (
	day1 = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	day2 = time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
)

func TestMissionBoardShape(t *testing.T) {
	m := NewMissions(persist.NewMemory(), day1)

	board := m.List()
	if len(board) != 4 {
		t.Fatalf("Board should hold 4 missions, got %d", len(board))
	}

	tiers := make(map[MissionTier]int)
	for _, mi := range board {
		tiers[mi.Tier]++
		if mi.Target <= 0 || mi.Reward <= 0 {
			t.Errorf("Mission %q has degenerate target/reward %d/%d", mi.ID, mi.Target, mi.Reward)
		}
		if mi.Done || mi.Progress != 0 {
			t.Errorf("Fresh mission %q should start untouched", mi.ID)
		}
	}
	if tiers[TierEasy] != 1 || tiers[TierMedium] != 2 || tiers[TierHard] != 1 {
		t.Errorf("Tier split = %v, expected 1 easy / 2 medium / 1 hard", tiers)
	}
}

func TestMissionBoardStableWithinDate(t *testing.T) {
	store := persist.NewMemory()

	m1 := NewMissions(store, day1)
	board1 := m1.List()

	// Same date, fresh load: identical board
	m2 := NewMissions(store, day1)
	board2 := m2.List()

	if len(board1) != len(board2) {
		t.Fatalf("Board sizes differ: %d vs %d", len(board1), len(board2))
	}
	for i := range board1 {
		if board1[i].ID != board2[i].ID || board1[i].Target != board2[i].Target || board1[i].Mode != board2[i].Mode {
			t.Errorf("Mission %d differs across loads: %+v vs %+v", i, board1[i], board2[i])
		}
	}

	// Regeneration from the bare seed is also identical
	fresh := NewMissions(persist.NewMemory(), day1)
	for i, mi := range fresh.List() {
		if mi.ID != board1[i].ID || mi.Target != board1[i].Target {
			t.Errorf("Seeded regeneration differs at %d: %+v vs %+v", i, mi, board1[i])
		}
	}
}

func TestMissionRegenerationOnDateChange(t *testing.T) {
	store := persist.NewMemory()
	m := NewMissions(store, day1)

	// Bank some progress, then roll the date
	m.Apply(&game.RunSummary{Score: 10, Coins: 10, ObstaclesPassed: 10, Flaps: 50, Mode: "Classic"})

	if !m.EnsureDate(day2) {
		t.Fatal("Date rollover should regenerate the board")
	}
	if m.Date() != DateKey(day2) {
		t.Errorf("Board date = %q, expected %q", m.Date(), DateKey(day2))
	}
	for _, mi := range m.List() {
		if mi.Progress != 0 || mi.Done {
			t.Errorf("Rollover should reset mission %q, progress=%d done=%v", mi.ID, mi.Progress, mi.Done)
		}
	}

	if m.EnsureDate(day2) {
		t.Error("Same date should not regenerate twice")
	}
}

func TestMissionCompletion(t *testing.T) {
	m := NewMissions(persist.NewMemory(), day1)

	// A monster run completes every unrestricted per-run mission
	sum := &game.RunSummary{
		Score: 1000, Coins: 1000, MaxCombo: 50, DurationMs: 600000,
		ObstaclesPassed: 1000, CreaturesDodged: 100, NearMisses: 50,
		Flaps: 1000, PowerupsTaken: 20, Mode: "Classic",
	}
	completed := m.Apply(sum)

	for _, mi := range completed {
		if !mi.Done {
			t.Errorf("Completed mission %q not marked done", mi.ID)
		}
		if mi.Progress != mi.Target {
			t.Errorf("Completed mission %q progress %d != target %d", mi.ID, mi.Progress, mi.Target)
		}
	}

	// A second identical run cannot re-complete anything
	if again := m.Apply(sum); len(again) != 0 {
		t.Errorf("Missions completed twice: %v", again)
	}
}

func TestMissionModeRestriction(t *testing.T) {
	m := NewMissions(persist.NewMemory(), day1)

	// Pin a restricted mission so the test does not depend on the draw
	m.data.List = []Mission{{
		ID: "score_run_med", Tier: TierMedium, Metric: MetricScore,
		Target: 10, Reward: 80, Mode: "Bouncy",
	}}

	m.Apply(&game.RunSummary{Score: 100, Mode: "Classic"})
	if m.List()[0].Progress != 0 {
		t.Error("Wrong-mode run should not advance a restricted mission")
	}

	completed := m.Apply(&game.RunSummary{Score: 100, Mode: "Bouncy"})
	if len(completed) != 1 {
		t.Fatalf("Matching-mode run should complete the mission, got %d", len(completed))
	}
}

func TestMissionCumulativeVsBestRun(t *testing.T) {
	m := NewMissions(persist.NewMemory(), day1)
	m.data.List = []Mission{
		{ID: "coins_day_easy", Tier: TierEasy, Metric: MetricCoins, Target: 25, Reward: 40},
		{ID: "score_run_med", Tier: TierMedium, Metric: MetricScore, Target: 30, Reward: 80},
	}

	m.Apply(&game.RunSummary{Score: 20, Coins: 10, Mode: "Classic"})
	m.Apply(&game.RunSummary{Score: 15, Coins: 10, Mode: "Classic"})

	board := m.List()
	if board[0].Progress != 20 {
		t.Errorf("Cumulative metric progress = %d, expected 20", board[0].Progress)
	}
	if board[1].Progress != 20 {
		t.Errorf("Per-run metric should keep the best run, got %d", board[1].Progress)
	}
}
