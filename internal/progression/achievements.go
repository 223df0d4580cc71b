package progression

import (
	"time"

	"github.com/vovakirdan/oddgravity/internal/game"
	"github.com/vovakirdan/oddgravity/internal/persist"
)

const achievementsKey = "achievements"

// Achievement is a one-time badge. The check runs after every game-over
// against the updated lifetime stats and the run that just ended; it must
// be a pure predicate.
type Achievement struct {
	ID          string
	Name        string
	Description string
	check       func(s *Stats, sum *game.RunSummary) bool
}

// achievements is the fixed badge list. Read-only after init.
var achievements = []Achievement{
	{
		ID: "first_flight", Name: "First Flight",
		Description: "Finish your first run",
		check:       func(s *Stats, _ *game.RunSummary) bool { return s.Games >= 1 },
	},
	{
		ID: "score_25", Name: "Warming Up",
		Description: "Score 25 in one run",
		check:       func(s *Stats, _ *game.RunSummary) bool { return s.BestScore >= 25 },
	},
	{
		ID: "score_50", Name: "In the Groove",
		Description: "Score 50 in one run",
		check:       func(s *Stats, _ *game.RunSummary) bool { return s.BestScore >= 50 },
	},
	{
		ID: "score_100", Name: "Centurion",
		Description: "Score 100 in one run",
		check:       func(s *Stats, _ *game.RunSummary) bool { return s.BestScore >= 100 },
	},
	{
		ID: "combo_10", Name: "Chain Reaction",
		Description: "Reach a 10x chain",
		check:       func(s *Stats, _ *game.RunSummary) bool { return s.BestCombo >= 10 },
	},
	{
		ID: "coins_500", Name: "Hoarder",
		Description: "Collect 500 coins lifetime",
		check:       func(s *Stats, _ *game.RunSummary) bool { return s.TotalCoins >= 500 },
	},
	{
		ID: "near_miss_25", Name: "Thread the Needle",
		Description: "Rack up 25 near misses lifetime",
		check:       func(s *Stats, _ *game.RunSummary) bool { return s.TotalNearMisses >= 25 },
	},
	{
		ID: "dodge_100", Name: "Untouchable",
		Description: "Dodge 100 creatures lifetime",
		check:       func(s *Stats, _ *game.RunSummary) bool { return s.TotalDodges >= 100 },
	},
	{
		ID: "survive_120", Name: "Marathon",
		Description: "Survive two minutes in one run",
		check:       func(s *Stats, _ *game.RunSummary) bool { return s.LongestRunMs >= 120000 },
	},
	{
		ID: "shield_clutch", Name: "Saved by the Bell",
		Description: "Burn a shield and still score 30",
		check: func(_ *Stats, sum *game.RunSummary) bool {
			return sum.ShieldUsed && sum.Score >= 30
		},
	},
	{
		ID: "powerup_collector", Name: "Full Loadout",
		Description: "Collect every powerup kind",
		check:       func(s *Stats, _ *game.RunSummary) bool { return len(s.PowerupsSeen) >= 6 },
	},
	{
		ID: "mode_tourist", Name: "Tourist",
		Description: "Finish a run in every mode",
		check:       func(s *Stats, _ *game.RunSummary) bool { return len(s.ModesPlayed) >= len(game.ModeNames()) },
	},
	{
		ID: "games_50", Name: "Regular",
		Description: "Finish 50 runs",
		check:       func(s *Stats, _ *game.RunSummary) bool { return s.Games >= 50 },
	},
}

// Achievements returns the badge list.
func Achievements() []Achievement {
	out := make([]Achievement, len(achievements))
	copy(out, achievements)
	return out
}

// Tracker persists which badges are unlocked.
type Tracker struct {
	store persist.Store
	data  trackerData
}

type trackerData struct {
	Unlocked map[string]string `json:"unlocked"` // ID -> RFC3339 unlock time
}

// NewTracker loads the unlock set, recovering to empty on a bad blob.
func NewTracker(store persist.Store) *Tracker {
	t := &Tracker{store: store}
	if ok, err := store.Load(achievementsKey, &t.data); !ok || err != nil {
		t.data = trackerData{}
	}
	if t.data.Unlocked == nil {
		t.data.Unlocked = make(map[string]string)
	}
	return t
}

// Evaluate runs every locked badge's predicate and returns the newly
// unlocked ones.
func (t *Tracker) Evaluate(stats *Stats, sum *game.RunSummary, now time.Time) []Achievement {
	var unlocked []Achievement
	for _, a := range achievements {
		if _, done := t.data.Unlocked[a.ID]; done {
			continue
		}
		if a.check(stats, sum) {
			t.data.Unlocked[a.ID] = now.UTC().Format(time.RFC3339)
			unlocked = append(unlocked, a)
		}
	}
	if len(unlocked) > 0 {
		_ = t.store.Save(achievementsKey, &t.data)
	}
	return unlocked
}

// IsUnlocked reports whether a badge is earned.
func (t *Tracker) IsUnlocked(id string) bool {
	_, ok := t.data.Unlocked[id]
	return ok
}

// UnlockedCount returns how many badges are earned.
func (t *Tracker) UnlockedCount() int {
	return len(t.data.Unlocked)
}
