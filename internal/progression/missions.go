package progression

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/oddgravity/internal/game"
	"github.com/vovakirdan/oddgravity/internal/persist"
)

const missionsKey = "missions"

// MissionTier buckets templates by difficulty.
type MissionTier int

const (
	TierEasy MissionTier = iota
	TierMedium
	TierHard
)

// String returns the tier name.
func (t MissionTier) String() string {
	switch t {
	case TierEasy:
		return "easy"
	case TierMedium:
		return "medium"
	case TierHard:
		return "hard"
	default:
		return "unknown"
	}
}

// Mission metrics. Per-run metrics track the best single run; cumulative
// metrics add up across the day's runs.
const (
	MetricScore     = "score"      // Per-run
	MetricCombo     = "combo"      // Per-run
	MetricDuration  = "duration_s" // Per-run
	MetricCoins     = "coins"      // Cumulative
	MetricObstacles = "obstacles"  // Cumulative
	MetricNearMiss  = "near_misses"
	MetricPowerups  = "powerups"
	MetricDodges    = "dodges"
	MetricFlaps     = "flaps"
)

// Mission is one daily objective.
type Mission struct {
	ID          string      `json:"id"`
	Description string      `json:"description"`
	Tier        MissionTier `json:"tier"`
	Metric      string      `json:"metric"`
	Target      int         `json:"target"`
	Reward      int         `json:"reward"` // Coins on completion
	Mode        string      `json:"mode"`   // Required mode, empty = any
	Progress    int         `json:"progress"`
	Done        bool        `json:"done"`
}

// missionTemplate is a generation blueprint. The description carries a %d
// slot for the target.
type missionTemplate struct {
	id         string
	describe   string
	tier       MissionTier
	metric     string
	target     int
	reward     int
	cumulative bool
}

var missionTemplates = []missionTemplate{
	// Easy
	{id: "score_run_easy", describe: "Score %d in a single run", tier: TierEasy, metric: MetricScore, target: 15, reward: 40},
	{id: "coins_day_easy", describe: "Collect %d coins today", tier: TierEasy, metric: MetricCoins, target: 25, reward: 40, cumulative: true},
	{id: "passes_day_easy", describe: "Clear %d obstacles today", tier: TierEasy, metric: MetricObstacles, target: 30, reward: 40, cumulative: true},
	{id: "flaps_day_easy", describe: "Flap %d times today", tier: TierEasy, metric: MetricFlaps, target: 150, reward: 40, cumulative: true},

	// Medium
	{id: "score_run_med", describe: "Score %d in a single run", tier: TierMedium, metric: MetricScore, target: 35, reward: 80},
	{id: "combo_run_med", describe: "Reach a %dx chain in one run", tier: TierMedium, metric: MetricCombo, target: 8, reward: 80},
	{id: "nearmiss_day_med", describe: "Thread %d near misses today", tier: TierMedium, metric: MetricNearMiss, target: 3, reward: 80, cumulative: true},
	{id: "powerups_day_med", describe: "Grab %d powerups today", tier: TierMedium, metric: MetricPowerups, target: 4, reward: 80, cumulative: true},
	{id: "dodges_day_med", describe: "Dodge %d creatures today", tier: TierMedium, metric: MetricDodges, target: 10, reward: 80, cumulative: true},

	// Hard
	{id: "score_run_hard", describe: "Score %d in a single run", tier: TierHard, metric: MetricScore, target: 60, reward: 150},
	{id: "combo_run_hard", describe: "Reach a %dx chain in one run", tier: TierHard, metric: MetricCombo, target: 12, reward: 150},
	{id: "coins_day_hard", describe: "Bank %d coins today", tier: TierHard, metric: MetricCoins, target: 200, reward: 150, cumulative: true},
	{id: "survive_run_hard", describe: "Survive %d seconds in one run", tier: TierHard, metric: MetricDuration, target: 120, reward: 150},
}

// Mode-restricted variant scaling: the constraint eases the target and
// raises the payout.
const (
	restrictedChance    = 0.3
	restrictedTargetMul = 0.8
	restrictedRewardMul = 1.5
)

// Missions manages the daily mission board.
type Missions struct {
	store persist.Store
	data  missionsData
}

type missionsData struct {
	Date string    `json:"date"` // yyyymmdd the board was generated for
	List []Mission `json:"list"`
}

// NewMissions loads the board and regenerates it if the date has rolled
// over since the last session.
func NewMissions(store persist.Store, now time.Time) *Missions {
	m := &Missions{store: store}
	if ok, err := store.Load(missionsKey, &m.data); !ok || err != nil {
		m.data = missionsData{}
	}
	m.EnsureDate(now)
	return m
}

// DateKey formats a time as the daily yyyymmdd key, in UTC.
func DateKey(now time.Time) string {
	return now.UTC().Format("20060102")
}

// EnsureDate regenerates the board when the date rolls over. Progress and
// completions reset with the new board. Returns true if it regenerated.
func (m *Missions) EnsureDate(now time.Time) bool {
	key := DateKey(now)
	if m.data.Date == key && len(m.data.List) > 0 {
		return false
	}
	m.data.Date = key
	m.data.List = generate(key)
	m.save()
	return true
}

// generate draws the day's board from the date seed: one easy, two medium,
// one hard, each a distinct template, with a chance for medium and hard
// missions to carry a mode restriction.
func generate(dateKey string) []Mission {
	var seed int64
	fmt.Sscanf(dateKey, "%d", &seed)
	rng := rand.New(rand.NewSource(seed))

	var board []Mission
	pick := func(tier MissionTier, n int) {
		var pool []missionTemplate
		for _, t := range missionTemplates {
			if t.tier == tier {
				pool = append(pool, t)
			}
		}
		rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

		for i := 0; i < n && i < len(pool); i++ {
			board = append(board, build(pool[i], rng))
		}
	}

	pick(TierEasy, 1)
	pick(TierMedium, 2)
	pick(TierHard, 1)
	return board
}

// build instantiates a template, rolling the mode-restriction variant for
// medium and hard tiers.
func build(t missionTemplate, rng *rand.Rand) Mission {
	m := Mission{
		ID:     t.id,
		Tier:   t.tier,
		Metric: t.metric,
		Target: t.target,
		Reward: t.reward,
	}

	if t.tier >= TierMedium && rng.Float64() < restrictedChance {
		names := game.ModeNames()
		m.Mode = names[rng.Intn(len(names))]
		m.Target = int(float64(m.Target) * restrictedTargetMul)
		if m.Target < 1 {
			m.Target = 1
		}
		m.Reward = int(float64(m.Reward) * restrictedRewardMul)
	}

	m.Description = fmt.Sprintf(t.describe, m.Target)
	if m.Mode != "" {
		m.Description += fmt.Sprintf(" (%s mode)", m.Mode)
	}
	return m
}

// Apply folds a finished run into the board and returns missions that just
// completed. Mode-restricted missions only advance on runs in that mode.
func (m *Missions) Apply(sum *game.RunSummary) []Mission {
	var completed []Mission

	for i := range m.data.List {
		mi := &m.data.List[i]
		if mi.Done {
			continue
		}
		if mi.Mode != "" && mi.Mode != sum.Mode {
			continue
		}

		value := metricValue(mi.Metric, sum)
		if cumulative(mi.Metric) {
			mi.Progress += value
		} else if value > mi.Progress {
			mi.Progress = value
		}

		if mi.Progress >= mi.Target {
			mi.Progress = mi.Target
			mi.Done = true
			completed = append(completed, *mi)
		}
	}

	m.save()
	return completed
}

// metricValue extracts a mission metric from a run.
func metricValue(metric string, sum *game.RunSummary) int {
	switch metric {
	case MetricScore:
		return sum.Score
	case MetricCombo:
		return sum.MaxCombo
	case MetricDuration:
		return int(sum.DurationMs / 1000)
	case MetricCoins:
		return sum.Coins
	case MetricObstacles:
		return sum.ObstaclesPassed
	case MetricNearMiss:
		return sum.NearMisses
	case MetricPowerups:
		return sum.PowerupsTaken
	case MetricDodges:
		return sum.CreaturesDodged
	case MetricFlaps:
		return sum.Flaps
	default:
		return 0
	}
}

// cumulative reports whether a metric adds up across the day's runs.
func cumulative(metric string) bool {
	switch metric {
	case MetricScore, MetricCombo, MetricDuration:
		return false
	default:
		return true
	}
}

// List returns the current board.
func (m *Missions) List() []Mission {
	out := make([]Mission, len(m.data.List))
	copy(out, m.data.List)
	return out
}

// Date returns the yyyymmdd key the board was generated for.
func (m *Missions) Date() string {
	return m.data.Date
}

func (m *Missions) save() {
	// Mission state is best-effort: a failed save costs one day's progress
	_ = m.store.Save(missionsKey, &m.data)
}
