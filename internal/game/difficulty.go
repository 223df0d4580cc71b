package game

import (
	"github.com/vovakirdan/oddgravity/internal/config"
	"github.com/vovakirdan/oddgravity/internal/core"
)

// Difficulty computes the scalar difficulty value and all tunables derived
// from it. The value combines a per-level staircase with a smooth within-level
// ramp driven by both progress and elapsed time.
type Difficulty struct {
	cfg config.DifficultyConfig
}

// NewDifficulty creates a difficulty model from config.
func NewDifficulty(cfg config.DifficultyConfig) *Difficulty {
	return &Difficulty{cfg: cfg}
}

// Value returns the difficulty scalar in [0, 1].
// levelIndex is 0-based completed levels, passesInLevel the obstacle passes
// inside the current level, elapsedSec the run time.
func (d *Difficulty) Value(levelIndex, passesInLevel int, elapsedSec float64) float64 {
	levelPart := d.cfg.LevelStep * float64(levelIndex)

	scoreProgress := float64(passesInLevel) / float64(core.Max(d.cfg.LevelSize, 1))
	timeProgress := 0.0
	if elapsedSec > d.cfg.GraceSec && d.cfg.TimeRampSec > 0 {
		timeProgress = (elapsedSec - d.cfg.GraceSec) / d.cfg.TimeRampSec
	}

	mix := core.ClampF(d.cfg.ScoreWeight*scoreProgress+d.cfg.TimeWeight*timeProgress, 0, 1)
	within := d.cfg.WithinLevel * core.EaseOutQuad(mix)

	return core.ClampF(levelPart+within, 0, 1)
}

// Gap returns the gap height for difficulty v, with the active world's bonus
// applied to the easy end of the range.
func (d *Difficulty) Gap(v, worldBonus, minGap, maxGap float64) float64 {
	gap := core.Lerp(280+worldBonus, 120, v)
	return core.ClampF(gap, minGap, maxGap)
}

// Speed returns the scroll speed in world units per second.
func (d *Difficulty) Speed(v, base float64) float64 {
	return base * 60 * core.Lerp(d.cfg.SpeedScaleMin, d.cfg.SpeedScaleMax, v)
}

// FlipMs returns the gravity flip interval for difficulty v.
func (d *Difficulty) FlipMs(v, base float64) float64 {
	return base * core.Lerp(d.cfg.FlipScaleSlow, d.cfg.FlipScaleFast, v)
}

// FreezeMs returns the hazard freeze window for difficulty v.
func (d *Difficulty) FreezeMs(v, base float64) float64 {
	return base * core.Lerp(d.cfg.FreezeScaleMax, d.cfg.FreezeScaleMin, v)
}

// Fudge returns the collision forgiveness margin for difficulty v.
// Hitboxes shrink by this much, so near scrapes at low difficulty survive.
// Stays positive even at maximum difficulty.
func (d *Difficulty) Fudge(v float64) float64 {
	return core.Lerp(d.cfg.FudgeMax, d.cfg.FudgeMin, v)
}

// ColumnWidth returns the obstacle column width for difficulty v.
func (d *Difficulty) ColumnWidth(v, colMul float64) float64 {
	return core.ClampF(core.Lerp(26, 50, v)*colMul, 22, 56)
}

// SpawnDist returns the horizontal distance to the next obstacle.
// The first walls of each level get extra breathing room.
func (d *Difficulty) SpawnDist(v float64, wallInLevel int) float64 {
	dist := core.Lerp(240, 200, v)
	switch {
	case wallInLevel < 6:
		dist += 90
	case wallInLevel < 10:
		dist += 50
	}
	return dist
}

// LevelSize returns the number of obstacle passes per level.
func (d *Difficulty) LevelSize() int {
	return core.Max(d.cfg.LevelSize, 1)
}
