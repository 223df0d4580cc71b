package config

import (
	_ "embed"
)

//go:embed defaults/game.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the default gameplay configuration.
// Values mirror defaults/game.yaml and act as a last-resort fallback.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Physics: PhysicsConfig{
			Gravity:      520,
			FlapImpulse:  220,
			MaxFallSpeed: 560,
			PlayerRadius: 12,
			BaseSpeed:    3.0,
			BaseFlipMs:   2800,
			BaseFreezeMs: 550,
		},
		Obstacles: ObstaclesConfig{
			KeepCount:    10,
			InitialCount: 9,
			MinGap:       120,
			MaxGap:       340,
			EdgeMargin:   80,
		},
		Collectibles: CollectiblesConfig{
			SpawnChance:      0.4,
			ClusterMax:       5,
			ClusterSpread:    30,
			CollectRadius:    30,
			MagnetRadius:     150,
			MagnetSpeed:      400,
			NearMissDistance: 50,
			NearMissBonus:    2,
		},
		Powerups: PowerupsConfig{
			MinIntervalMs:  8000,
			BaseChance:     0.08,
			ScoreChanceCap: 0.1,
			CollectRadius:  40,
			DriftFactor:    0.7,
		},
		Combo: ComboConfig{
			WindowMs:      1500,
			MaxMultiplier: 10,
		},
		Difficulty: DifficultyConfig{
			LevelSize:      12,
			LevelStep:      0.07,
			WithinLevel:    0.15,
			GraceSec:       3,
			TimeRampSec:    45,
			ScoreWeight:    0.6,
			TimeWeight:     0.4,
			FudgeMax:       22,
			FudgeMin:       3,
			SpeedScaleMin:  0.60,
			SpeedScaleMax:  1.12,
			FlipScaleSlow:  1.35,
			FlipScaleFast:  0.90,
			FreezeScaleMax: 1.25,
			FreezeScaleMin: 0.90,
		},
	}
}
