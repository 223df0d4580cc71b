package game

// World is a cosmetic and tuning theme that rotates as levels advance.
type World struct {
	Name     string
	GapBonus float64 // Added to the gap baseline (positive = easier)
	ColMul   float64 // Column width multiplier
	Theme    string  // Render theme tag
}

// worlds rotate in order, one per level.
var worlds = []World{
	{Name: "Clouds", GapBonus: 20, ColMul: 1.0, Theme: "clouds"},
	{Name: "Caverns", GapBonus: 0, ColMul: 1.15, Theme: "caverns"},
	{Name: "Circuit", GapBonus: -10, ColMul: 0.9, Theme: "circuit"},
	{Name: "Nebula", GapBonus: 10, ColMul: 1.05, Theme: "nebula"},
}

// WorldForLevel returns the world active at the given 1-based level.
func WorldForLevel(level int) World {
	if level < 1 {
		level = 1
	}
	return worlds[(level-1)%len(worlds)]
}

// Worlds returns the rotation table.
func Worlds() []World {
	out := make([]World, len(worlds))
	copy(out, worlds)
	return out
}
