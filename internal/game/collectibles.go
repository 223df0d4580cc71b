package game

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/oddgravity/internal/config"
	"github.com/vovakirdan/oddgravity/internal/core"
)

// CoinKind is a collectible tier.
type CoinKind int

const (
	CoinCopper CoinKind = iota // Common, worth 1
	CoinSilver                 // Worth 3
	CoinStar                   // Worth 5
	CoinGem                    // Rare, worth 10
)

// Value returns the coin's base value before combo multiplication.
func (k CoinKind) Value() int {
	switch k {
	case CoinCopper:
		return 1
	case CoinSilver:
		return 3
	case CoinStar:
		return 5
	case CoinGem:
		return 10
	default:
		return 1
	}
}

// String returns the tier name.
func (k CoinKind) String() string {
	switch k {
	case CoinCopper:
		return "coin"
	case CoinSilver:
		return "silver"
	case CoinStar:
		return "star"
	case CoinGem:
		return "gem"
	default:
		return "coin"
	}
}

// coinRarities drives the tier draw. Order matters: cumulative roll.
var coinRarities = []struct {
	kind   CoinKind
	chance float64
}{
	{CoinCopper, 0.7},
	{CoinSilver, 0.2},
	{CoinGem, 0.08},
	{CoinStar, 0.02},
}

// clusterShape arranges a coin cluster.
type clusterShape int

const (
	shapeLine clusterShape = iota
	shapeVertical
	shapeArc
	shapeDiamond
	shapeCount
)

// Coin is a single uncollected collectible.
type Coin struct {
	Kind CoinKind
	X, Y float64
}

// CoinField manages collectible spawning, drift, magnetism, and pickup.
type CoinField struct {
	coins []*Coin
	rng   *rand.Rand
	cfg   config.CollectiblesConfig
}

// NewCoinField creates a coin field. Call Reset before use.
func NewCoinField(cfg config.CollectiblesConfig) *CoinField {
	return &CoinField{coins: make([]*Coin, 0, 16), cfg: cfg}
}

// Reset clears all coins.
func (f *CoinField) Reset(rng *rand.Rand) {
	f.coins = f.coins[:0]
	f.rng = rng
}

// TrySpawnCluster rolls the spawn chance for a freshly created obstacle and,
// on success, places a shaped cluster inside its gap.
func (f *CoinField) TrySpawnCluster(o *Obstacle) bool {
	if f.rng.Float64() >= f.cfg.SpawnChance {
		return false
	}

	count := 1 + f.rng.Intn(core.Max(f.cfg.ClusterMax, 1))
	shape := clusterShape(f.rng.Intn(int(shapeCount)))
	spread := f.cfg.ClusterSpread
	cx := o.X + o.Width/2
	cy := o.GapY

	for i := 0; i < count; i++ {
		coin := &Coin{Kind: f.rollKind()}
		t := float64(i) - float64(count-1)/2

		switch shape {
		case shapeLine:
			coin.X = cx + t*spread
			coin.Y = cy
		case shapeVertical:
			coin.X = cx
			coin.Y = cy + t*spread
		case shapeArc:
			coin.X = cx + t*spread
			coin.Y = cy - math.Abs(t)*spread*0.5
		case shapeDiamond:
			coin.X = cx + t*spread
			coin.Y = cy + math.Abs(t)*spread*0.5
			if i%2 == 1 {
				coin.Y = cy - math.Abs(t)*spread*0.5
			}
		}

		coin.Y = core.ClampF(coin.Y, 40, WorldH-40)
		f.coins = append(f.coins, coin)
	}
	return true
}

// rollKind draws a coin tier by rarity.
func (f *CoinField) rollKind() CoinKind {
	roll := f.rng.Float64()
	acc := 0.0
	for _, r := range coinRarities {
		acc += r.chance
		if roll < acc {
			return r.kind
		}
	}
	return CoinCopper
}

// Update drifts coins left with the world, pulls them toward an active
// magnet, collects overlapping ones, and culls off-screen ones.
// Returns the kinds collected this frame, in pickup order.
func (f *CoinField) Update(dtMs, speed float64, player core.Circle, magnet bool) []CoinKind {
	dx := speed * dtMs / 1000
	var collected []CoinKind

	alive := f.coins[:0]
	for _, c := range f.coins {
		c.X -= dx

		if magnet {
			d := core.Vec2{X: player.X - c.X, Y: player.Y - c.Y}
			dist := d.Len()
			if dist > 0.001 && dist < f.cfg.MagnetRadius {
				// Pull speed scales up as the coin gets closer
				pull := f.cfg.MagnetSpeed * (1 - dist/f.cfg.MagnetRadius)
				step := d.Scale(pull / dist * dtMs / 1000)
				c.X += step.X
				c.Y += step.Y
			}
		}

		reach := core.Circle{X: player.X, Y: player.Y, R: player.R + f.cfg.CollectRadius}
		if reach.ContainsPoint(c.X, c.Y) {
			collected = append(collected, c.Kind)
			continue
		}

		if c.X > -20 {
			alive = append(alive, c)
		}
	}
	f.coins = alive

	return collected
}

// Coins returns the live coin slice.
func (f *CoinField) Coins() []*Coin {
	return f.coins
}
