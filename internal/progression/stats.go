package progression

import "github.com/vovakirdan/oddgravity/internal/game"

// Stats are lifetime totals folded from every finished run. Achievements
// and the stats command read them; nothing else mutates them.
type Stats struct {
	Games           int     `json:"games"`
	TotalScore      int     `json:"totalScore"`
	BestScore       int     `json:"bestScore"`
	TotalCoins      int     `json:"totalCoins"`
	TotalObstacles  int     `json:"totalObstacles"`
	TotalDodges     int     `json:"totalDodges"`
	TotalNearMisses int     `json:"totalNearMisses"`
	TotalFlaps      int     `json:"totalFlaps"`
	TotalPowerups   int     `json:"totalPowerups"`
	TotalTimeMs     float64 `json:"totalTimeMs"`
	BestCombo       int     `json:"bestCombo"`
	BestLevel       int     `json:"bestLevel"`
	LongestRunMs    float64 `json:"longestRunMs"`
	ShieldSaves     int     `json:"shieldSaves"`

	BestPerMode  map[string]int  `json:"bestPerMode"`
	PowerupsSeen map[string]bool `json:"powerupsSeen"`
	ModesPlayed  map[string]bool `json:"modesPlayed"`
}

func (s *Stats) normalize() {
	if s.BestPerMode == nil {
		s.BestPerMode = make(map[string]int)
	}
	if s.PowerupsSeen == nil {
		s.PowerupsSeen = make(map[string]bool)
	}
	if s.ModesPlayed == nil {
		s.ModesPlayed = make(map[string]bool)
	}
}

// Fold accumulates one finished run.
func (s *Stats) Fold(sum *game.RunSummary) {
	s.normalize()

	s.Games++
	s.TotalScore += sum.Score
	s.TotalCoins += sum.Coins
	s.TotalObstacles += sum.ObstaclesPassed
	s.TotalDodges += sum.CreaturesDodged
	s.TotalNearMisses += sum.NearMisses
	s.TotalFlaps += sum.Flaps
	s.TotalPowerups += sum.PowerupsTaken
	s.TotalTimeMs += sum.DurationMs

	if sum.Score > s.BestScore {
		s.BestScore = sum.Score
	}
	if sum.MaxCombo > s.BestCombo {
		s.BestCombo = sum.MaxCombo
	}
	if sum.Level > s.BestLevel {
		s.BestLevel = sum.Level
	}
	if sum.DurationMs > s.LongestRunMs {
		s.LongestRunMs = sum.DurationMs
	}
	if sum.ShieldUsed {
		s.ShieldSaves++
	}

	if sum.Score > s.BestPerMode[sum.Mode] {
		s.BestPerMode[sum.Mode] = sum.Score
	}
	s.ModesPlayed[sum.Mode] = true
	for _, kind := range sum.PowerupKinds {
		s.PowerupsSeen[kind] = true
	}
}
