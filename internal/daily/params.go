// Package daily produces the shared daily challenge: deterministic run
// parameters derived from the UTC date, an HTTP client that prefers the
// server's answer but falls back to the local generator, and a score
// submitter that queues failed submissions for a later flush.
package daily

import (
	"time"

	"github.com/vovakirdan/oddgravity/internal/game"
)

// Params are the daily challenge's run parameters. Every player on the
// same UTC date gets the same values whether they are online or not.
type Params struct {
	Seed               int64   `json:"seed"`
	ModeName           string  `json:"modeName"`
	GravityFlipEveryMs float64 `json:"gravityFlipEveryMs"`
	ObstacleSpeed      float64 `json:"obstacleSpeed"`
	FreezeDurationMs   float64 `json:"freezeDurationMs"`
}

// mulberry32 is a tiny 32-bit PRNG. It is used instead of math/rand so the
// stream matches the backend generator bit for bit.
func mulberry32(seed uint32) func() float64 {
	state := seed
	return func() float64 {
		state += 0x6D2B79F5
		z := state
		z = (z ^ (z >> 15)) * (z | 1)
		z ^= z + (z^(z>>7))*(z|61)
		return float64(z^(z>>14)) / 4294967296
	}
}

// dateKey folds a time into its UTC yyyymmdd number.
func dateKey(t time.Time) uint32 {
	d := t.UTC()
	return uint32(d.Year()*10000 + int(d.Month())*100 + d.Day())
}

// FromDate generates the challenge for the given date. Draw order is part
// of the format: mode, flip interval, speed, freeze.
func FromDate(t time.Time) Params {
	key := dateKey(t)
	next := mulberry32(key)

	modes := game.ModeNames()
	mode := modes[int(next()*float64(len(modes)))%len(modes)]

	return Params{
		Seed:               int64(key),
		ModeName:           mode,
		GravityFlipEveryMs: 2500 + next()*1000,
		ObstacleSpeed:      2 + next()*2,
		FreezeDurationMs:   450 + next()*200,
	}
}

// Rules merges the daily parameters with their mode preset into run rules.
func (p Params) Rules() game.Rules {
	return game.ApplyMode(p.Seed, p.GravityFlipEveryMs, p.ObstacleSpeed,
		p.FreezeDurationMs, game.ModeByName(p.ModeName))
}
