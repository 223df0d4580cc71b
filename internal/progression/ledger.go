// Package progression tracks everything that outlives a single run: the
// coin/XP/level ledger with its cosmetic shop, daily missions, achievements,
// and lifetime stats. All state serializes as JSON blobs through the
// persist port; a corrupt or missing blob recovers to defaults.
package progression

import (
	"errors"
	"math"

	"github.com/vovakirdan/oddgravity/internal/game"
	"github.com/vovakirdan/oddgravity/internal/persist"
)

// XP curve and level cap.
const (
	baseXP   = 100
	xpGrowth = 1.5
	maxLevel = 50
)

const ledgerKey = "progression"

// Shop guard sentinels.
var (
	ErrInsufficientFunds = errors.New("progression: insufficient funds")
	ErrAlreadyOwned      = errors.New("progression: item already owned")
	ErrUnknownItem       = errors.New("progression: unknown item")
	ErrNotOwned          = errors.New("progression: item not owned")
)

// Ledger is the persisted player profile: wallet, XP, level, cosmetics,
// and lifetime stats.
type Ledger struct {
	store persist.Store
	data  ledgerData
}

type ledgerData struct {
	Coins int `json:"coins"`
	XP    int `json:"xp"` // Progress inside the current level
	Level int `json:"level"`

	Owned         map[string]bool `json:"owned"`
	EquippedSkin  string          `json:"equippedSkin"`
	EquippedTrail string          `json:"equippedTrail"`

	Stats Stats `json:"stats"`
}

// LevelReward is granted once when the given level is reached.
type LevelReward struct {
	Level    int
	Coins    int
	Cosmetic string // Item ID auto-unlocked, empty for none
}

// levelRewards fire at every fifth level. Read-only after init.
var levelRewards = []LevelReward{
	{Level: 5, Coins: 100, Cosmetic: "skin_comet"},
	{Level: 10, Coins: 200, Cosmetic: "trail_sparks"},
	{Level: 15, Coins: 300, Cosmetic: "skin_ember"},
	{Level: 20, Coins: 400, Cosmetic: "trail_aurora"},
	{Level: 25, Coins: 500, Cosmetic: "skin_prism"},
	{Level: 30, Coins: 600, Cosmetic: "trail_ion"},
	{Level: 35, Coins: 700, Cosmetic: "skin_eclipse"},
	{Level: 40, Coins: 800, Cosmetic: "trail_nova"},
	{Level: 45, Coins: 900, Cosmetic: "skin_void"},
	{Level: 50, Coins: 1000, Cosmetic: "trail_singularity"},
}

// RunReward reports what a finished run earned.
type RunReward struct {
	XP           int
	Coins        int
	LevelsGained int
	NewLevel     int
	Rewards      []LevelReward
}

// NewLedger loads the profile from the store, falling back to a fresh
// profile when nothing is saved or the blob cannot be decoded.
func NewLedger(store persist.Store) *Ledger {
	l := &Ledger{store: store}
	if ok, err := store.Load(ledgerKey, &l.data); !ok || err != nil {
		l.data = defaultLedgerData()
	}
	l.normalize()
	return l
}

func defaultLedgerData() ledgerData {
	return ledgerData{
		Level:         1,
		Owned:         map[string]bool{"skin_classic": true, "trail_none": true},
		EquippedSkin:  "skin_classic",
		EquippedTrail: "trail_none",
	}
}

// normalize repairs fields a hand-edited or partial blob may lack.
func (l *Ledger) normalize() {
	if l.data.Level < 1 {
		l.data.Level = 1
	}
	if l.data.Level > maxLevel {
		l.data.Level = maxLevel
	}
	if l.data.Owned == nil {
		l.data.Owned = map[string]bool{"skin_classic": true, "trail_none": true}
	}
	if l.data.EquippedSkin == "" {
		l.data.EquippedSkin = "skin_classic"
	}
	if l.data.EquippedTrail == "" {
		l.data.EquippedTrail = "trail_none"
	}
	l.data.Stats.normalize()
}

// XPForLevel returns the XP threshold to advance from level-1 to level.
func XPForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return int(math.Floor(baseXP * math.Pow(xpGrowth, float64(level-2))))
}

// MaxLevel returns the level cap.
func MaxLevel() int {
	return maxLevel
}

// runXP scores a finished run for experience.
func runXP(sum *game.RunSummary, completedMissions int) int {
	return 10*sum.Score +
		2*sum.Coins +
		5*sum.ObstaclesPassed +
		15*sum.PowerupsTaken +
		50*completedMissions
}

// AddRun folds a finished run into the ledger: banks its coins, grants XP
// (with the daily-mission bonus), applies level-ups with their rewards, and
// saves. completedMissions is how many daily missions this run completed.
func (l *Ledger) AddRun(sum *game.RunSummary, completedMissions int) (RunReward, error) {
	reward := RunReward{
		XP:    runXP(sum, completedMissions),
		Coins: sum.Coins,
	}

	l.data.Coins += sum.Coins
	l.data.XP += reward.XP
	l.data.Stats.Fold(sum)

	// Level-ups loop until the next threshold is out of reach
	for l.data.Level < maxLevel && l.data.XP >= XPForLevel(l.data.Level+1) {
		l.data.XP -= XPForLevel(l.data.Level + 1)
		l.data.Level++
		reward.LevelsGained++

		for _, lr := range levelRewards {
			if lr.Level != l.data.Level {
				continue
			}
			l.data.Coins += lr.Coins
			reward.Coins += lr.Coins
			if lr.Cosmetic != "" {
				l.data.Owned[lr.Cosmetic] = true
			}
			reward.Rewards = append(reward.Rewards, lr)
		}
	}
	if l.data.Level == maxLevel {
		// Cap reached: surplus XP no longer accumulates
		if ceil := XPForLevel(maxLevel); l.data.XP > ceil {
			l.data.XP = ceil
		}
	}

	reward.NewLevel = l.data.Level
	return reward, l.save()
}

// AddCoins credits the wallet, e.g. for mission payouts.
func (l *Ledger) AddCoins(n int) error {
	if n <= 0 {
		return nil
	}
	l.data.Coins += n
	return l.save()
}

// SpendCoins debits the wallet.
func (l *Ledger) SpendCoins(n int) error {
	if n > l.data.Coins {
		return ErrInsufficientFunds
	}
	l.data.Coins -= n
	return l.save()
}

// Coins returns the wallet balance.
func (l *Ledger) Coins() int { return l.data.Coins }

// Level returns the current level (1-based, capped).
func (l *Ledger) Level() int { return l.data.Level }

// XP returns progress inside the current level.
func (l *Ledger) XP() int { return l.data.XP }

// XPToNext returns the XP still needed for the next level, or 0 at the cap.
func (l *Ledger) XPToNext() int {
	if l.data.Level >= maxLevel {
		return 0
	}
	if left := XPForLevel(l.data.Level+1) - l.data.XP; left > 0 {
		return left
	}
	return 0
}

// Stats returns the lifetime stats.
func (l *Ledger) Stats() Stats { return l.data.Stats }

func (l *Ledger) save() error {
	return l.store.Save(ledgerKey, &l.data)
}
