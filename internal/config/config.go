// Package config provides YAML-based configuration loading for the game.
package config

// GameConfig contains all gameplay tunables.
type GameConfig struct {
	Physics      PhysicsConfig      `yaml:"physics"`
	Obstacles    ObstaclesConfig    `yaml:"obstacles"`
	Collectibles CollectiblesConfig `yaml:"collectibles"`
	Powerups     PowerupsConfig     `yaml:"powerups"`
	Combo        ComboConfig        `yaml:"combo"`
	Difficulty   DifficultyConfig   `yaml:"difficulty"`
}

// PhysicsConfig defines the player physics parameters.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`        // World units per second squared
	FlapImpulse  float64 `yaml:"flap_impulse"`   // Velocity kick against gravity
	MaxFallSpeed float64 `yaml:"max_fall_speed"` // Terminal velocity
	PlayerRadius float64 `yaml:"player_radius"`
	BaseSpeed    float64 `yaml:"base_speed"`     // Obstacle scroll speed baseline
	BaseFlipMs   float64 `yaml:"base_flip_ms"`   // Gravity flip interval baseline
	BaseFreezeMs float64 `yaml:"base_freeze_ms"` // Hazard freeze window per flap
}

// ObstaclesConfig defines gap obstacle parameters.
type ObstaclesConfig struct {
	KeepCount    int     `yaml:"keep_count"`    // Rolling window size
	InitialCount int     `yaml:"initial_count"` // Obstacles seeded at run start
	MinGap       float64 `yaml:"min_gap"`
	MaxGap       float64 `yaml:"max_gap"`
	EdgeMargin   float64 `yaml:"edge_margin"` // Gap center kept this far from top/bottom
}

// CollectiblesConfig defines coin spawning and pickup parameters.
type CollectiblesConfig struct {
	SpawnChance      float64 `yaml:"spawn_chance"`       // Per new obstacle
	ClusterMax       int     `yaml:"cluster_max"`        // 1..ClusterMax coins per cluster
	ClusterSpread    float64 `yaml:"cluster_spread"`     // Spacing inside a cluster
	CollectRadius    float64 `yaml:"collect_radius"`     // Added to player radius
	MagnetRadius     float64 `yaml:"magnet_radius"`      // Pull range while magnet is active
	MagnetSpeed      float64 `yaml:"magnet_speed"`       // Max pull speed
	NearMissDistance float64 `yaml:"near_miss_distance"` // Clearance below this counts as near miss
	NearMissBonus    int     `yaml:"near_miss_bonus"`    // Coins granted per near miss
}

// PowerupsConfig defines powerup spawning parameters.
// Effect durations are fixed per kind and live in the game package.
type PowerupsConfig struct {
	MinIntervalMs  float64 `yaml:"min_interval_ms"` // Cooldown between spawns
	BaseChance     float64 `yaml:"base_chance"`     // Spawn roll per check
	ScoreChanceCap float64 `yaml:"score_chance_cap"`
	CollectRadius  float64 `yaml:"collect_radius"`
	DriftFactor    float64 `yaml:"drift_factor"` // Fraction of obstacle speed
}

// ComboConfig defines the combo chain parameters.
type ComboConfig struct {
	WindowMs      float64 `yaml:"window_ms"`
	MaxMultiplier int     `yaml:"max_multiplier"`
}

// DifficultyConfig defines the difficulty curve.
type DifficultyConfig struct {
	LevelSize      int     `yaml:"level_size"`       // Obstacle passes per level
	LevelStep      float64 `yaml:"level_step"`       // Difficulty added per completed level
	WithinLevel    float64 `yaml:"within_level"`     // Difficulty span inside a level
	GraceSec       float64 `yaml:"grace_sec"`        // Ramp delay at run start
	TimeRampSec    float64 `yaml:"time_ramp_sec"`    // Seconds to max time contribution
	ScoreWeight    float64 `yaml:"score_weight"`     // Within-level mix: score share
	TimeWeight     float64 `yaml:"time_weight"`      // Within-level mix: time share
	FudgeMax       float64 `yaml:"fudge_max"`        // Collision forgiveness at d=0
	FudgeMin       float64 `yaml:"fudge_min"`        // Collision forgiveness at d=1
	SpeedScaleMin  float64 `yaml:"speed_scale_min"`  // Speed multiplier at d=0
	SpeedScaleMax  float64 `yaml:"speed_scale_max"`  // Speed multiplier at d=1
	FlipScaleSlow  float64 `yaml:"flip_scale_slow"`  // Flip interval multiplier at d=0
	FlipScaleFast  float64 `yaml:"flip_scale_fast"`  // Flip interval multiplier at d=1
	FreezeScaleMax float64 `yaml:"freeze_scale_max"` // Freeze window multiplier at d=0
	FreezeScaleMin float64 `yaml:"freeze_scale_min"` // Freeze window multiplier at d=1
}
