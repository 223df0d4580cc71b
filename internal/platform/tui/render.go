package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/oddgravity/internal/core"
	"github.com/vovakirdan/oddgravity/internal/game"
)

// HUD rows reserved at the top of the screen.
const hudRows = 2

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// themeColumnColors picks the obstacle column color per world theme.
var themeColumnColors = map[string]core.Color{
	"clouds":  core.ColorWhite,
	"caverns": core.ColorGray,
	"circuit": core.ColorGreen,
	"nebula":  core.ColorMagenta,
}

// creatureGlyphs maps creature kinds to their render rune and color.
var creatureGlyphs = map[game.CreatureKind]struct {
	r rune
	c core.Color
}{
	game.CreatureBubble:      {'O', core.ColorCyan},
	game.CreatureFish:        {'>', core.ColorBlue},
	game.CreaturePterodactyl: {'W', core.ColorOrange},
	game.CreatureShark:       {'S', core.ColorBrightBlue},
	game.CreatureAsteroid:    {'@', core.ColorGray},
	game.CreatureGhost:       {'G', core.ColorGray},
	game.CreatureDragon:      {'D', core.ColorBrightRed},
	game.CreatureLightning:   {'+', core.ColorBrightYellow},
	game.CreatureUFO:         {'U', core.ColorBrightGreen},
}

// coinGlyphs maps collectible kinds to their render rune and color.
var coinGlyphs = map[game.CoinKind]struct {
	r rune
	c core.Color
}{
	game.CoinCopper: {'o', core.ColorYellow},
	game.CoinSilver: {'o', core.ColorBrightWhite},
	game.CoinGem:    {'^', core.ColorBrightCyan},
	game.CoinStar:   {'*', core.ColorBrightYellow},
}

// pickupGlyphs maps powerup kinds to their render rune.
var pickupGlyphs = map[game.PowerupKind]rune{
	game.PowerShield:      'H',
	game.PowerMagnet:      'M',
	game.PowerSlowmo:      'T',
	game.PowerShrink:      's',
	game.PowerGhost:       'g',
	game.PowerGravityLock: 'L',
}

// frame maps world coordinates onto a screen and draws one snapshot.
type frame struct {
	screen *core.Screen
	snap   game.Snapshot
	sx, sy float64 // world-to-cell scale
	playH  int     // rows below the HUD
}

// DrawFrame renders a snapshot into the screen buffer.
func DrawFrame(s *core.Screen, snap game.Snapshot) {
	s.Clear()
	playH := s.Height() - hudRows
	if playH < 4 || s.Width() < 16 {
		s.DrawText(0, 0, "terminal too small")
		return
	}

	f := &frame{
		screen: s,
		snap:   snap,
		sx:     float64(s.Width()) / game.WorldW,
		sy:     float64(playH) / game.WorldH,
		playH:  playH,
	}

	f.drawObstacles()
	f.drawCollectibles()
	f.drawPickups()
	f.drawCreatures()
	f.drawPlayer()
	f.drawHUD()
	f.drawOverlay()
}

// cell projects a world coordinate to a screen cell.
func (f *frame) cell(wx, wy float64) (int, int) {
	return int(wx * f.sx), hudRows + int(wy*f.sy)
}

func (f *frame) drawObstacles() {
	col := themeColumnColors[f.snap.WorldTheme]
	for _, o := range f.snap.Obstacles {
		x0, _ := f.cell(o.X, 0)
		x1, _ := f.cell(o.X+o.Width, 0)
		if x1 <= x0 {
			x1 = x0 + 1
		}
		_, gapTop := f.cell(0, o.GapY-o.Gap/2)
		_, gapBot := f.cell(0, o.GapY+o.Gap/2)

		fill := '#'
		if o.Passed {
			fill = ':'
		}
		for x := x0; x < x1; x++ {
			for y := hudRows; y < gapTop; y++ {
				f.screen.SetCell(x, y, fill, col)
			}
			for y := gapBot; y < hudRows+f.playH; y++ {
				f.screen.SetCell(x, y, fill, col)
			}
		}
		if o.Landmark != game.LandmarkColumn {
			f.drawLandmark(o, x0, gapTop, gapBot)
		}
	}
}

// drawLandmark decorates a column's gap edges so special columns read
// differently even on tiny terminals.
func (f *frame) drawLandmark(o game.ObstacleView, x, gapTop, gapBot int) {
	var r rune
	var c core.Color
	switch o.Landmark {
	case game.LandmarkSpire:
		r, c = 'A', core.ColorBrightRed
	case game.LandmarkArch:
		r, c = 'n', core.ColorYellow
	case game.LandmarkCrystal:
		r, c = '^', core.ColorBrightCyan
	case game.LandmarkRuin:
		r, c = '=', core.ColorGray
	default:
		return
	}
	if gapTop > hudRows {
		f.screen.SetCell(x, gapTop-1, r, c)
	}
	if gapBot < hudRows+f.playH {
		f.screen.SetCell(x, gapBot, r, c)
	}
}

func (f *frame) drawCollectibles() {
	for _, c := range f.snap.Collectibles {
		g, ok := coinGlyphs[c.Kind]
		if !ok {
			continue
		}
		x, y := f.cell(c.X, c.Y)
		f.screen.SetCell(x, y, g.r, g.c)
	}
}

func (f *frame) drawPickups() {
	for _, p := range f.snap.Pickups {
		r, ok := pickupGlyphs[p.Kind]
		if !ok {
			r = '?'
		}
		x, y := f.cell(p.X, p.Y)
		f.screen.SetCell(x, y, '[', core.ColorBrightMagenta)
		f.screen.SetCell(x+1, y, r, core.ColorBrightMagenta)
		f.screen.SetCell(x+2, y, ']', core.ColorBrightMagenta)
	}
}

func (f *frame) drawCreatures() {
	for _, c := range f.snap.Creatures {
		g, ok := creatureGlyphs[c.Kind]
		if !ok {
			continue
		}
		color := g.c
		if c.Alpha < 0.5 {
			color = core.ColorGray // phased out, harmless
		}
		x, y := f.cell(c.X, c.Y)

		switch c.Kind {
		case game.CreatureLightning:
			if c.Active {
				for row := hudRows; row < hudRows+f.playH; row++ {
					f.screen.SetCell(x, row, '|', core.ColorBrightYellow)
				}
			} else {
				f.screen.SetCell(x, y, g.r, core.ColorGray)
			}
		case game.CreatureDragon:
			f.screen.SetCell(x, y, g.r, color)
			if c.Active {
				fx0, _ := f.cell(c.X-70, 0)
				for fx := fx0; fx < x; fx++ {
					f.screen.SetCell(fx, y, '~', core.ColorBrightRed)
				}
			}
		case game.CreatureShark:
			// Elongated body
			f.screen.SetCell(x-1, y, '=', color)
			f.screen.SetCell(x, y, g.r, color)
			f.screen.SetCell(x+1, y, '=', color)
		case game.CreatureUFO:
			f.screen.SetCell(x, y, g.r, color)
			if c.Active {
				_, by := f.cell(c.X, c.Y+40)
				for row := y + 1; row <= by; row++ {
					f.screen.SetCell(x, row, '!', core.ColorBrightGreen)
				}
			}
		default:
			f.screen.SetCell(x, y, g.r, color)
		}
	}
}

func (f *frame) drawPlayer() {
	x, y := f.cell(game.PlayerX, f.snap.PlayerY)

	r := 'v'
	if f.snap.GravityDir < 0 {
		r = '^'
	}
	color := core.ColorBrightYellow
	if f.snap.ShieldArmed {
		color = core.ColorBrightCyan
		f.screen.SetCell(x-1, y, '(', core.ColorCyan)
		f.screen.SetCell(x+1, y, ')', core.ColorCyan)
	}
	if _, ghost := f.snap.Effects[game.PowerGhost.String()]; ghost {
		color = core.ColorGray
	}
	f.screen.SetCell(x, y, r, color)
}

func (f *frame) drawHUD() {
	w := f.screen.Width()

	left := fmt.Sprintf(" SCORE %d  COINS %d  LVL %d", f.snap.Score, f.snap.Coins, f.snap.Level)
	if f.snap.ComboCount > 1 {
		left += fmt.Sprintf("  COMBO x%d", f.snap.ComboMultiplier)
	}
	right := fmt.Sprintf("%s / %s ", f.snap.Mode, f.snap.WorldTheme)
	f.screen.DrawTextColored(0, 0, left, core.ColorBrightWhite)
	if len(right) < w {
		f.screen.DrawTextColored(w-len(right), 0, right, core.ColorGray)
	}

	// Second row: flip countdown, freeze, active effects
	status := ""
	switch {
	case f.snap.FrozenMs > 0:
		status = fmt.Sprintf(" FREEZE %.1fs", f.snap.FrozenMs/1000)
	case f.snap.MsToFlip > 0:
		status = fmt.Sprintf(" FLIP in %.1fs", f.snap.MsToFlip/1000)
	default:
		status = " FLIP --"
	}
	names := make([]string, 0, len(f.snap.Effects))
	for name := range f.snap.Effects {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		status += fmt.Sprintf("  [%s %.0fs]", strings.ToUpper(name), f.snap.Effects[name]/1000)
	}
	color := core.ColorGray
	if f.snap.MsToFlip > 0 && f.snap.MsToFlip < 1000 {
		color = core.ColorBrightRed // imminent flip
	}
	f.screen.DrawTextColored(0, 1, status, color)

	diffBar := fmt.Sprintf("DIFF %3.0f%% ", f.snap.Difficulty*100)
	if len(diffBar) < w {
		f.screen.DrawTextColored(w-len(diffBar), 1, diffBar, core.ColorGray)
	}
}

func (f *frame) drawOverlay() {
	mid := hudRows + f.playH/2

	switch f.snap.Phase {
	case core.PhaseReady:
		f.screen.DrawTextCentered(mid-1, "ODD GRAVITY")
		f.screen.DrawTextCentered(mid+1, "press SPACE to start")
	case core.PhasePaused:
		f.screen.DrawTextCentered(mid, "PAUSED - press P to resume")
	case core.PhaseGameOver:
		f.screen.DrawTextCentered(mid-2, "GAME OVER")
		f.screen.DrawTextCentered(mid, fmt.Sprintf("score %d  coins %d", f.snap.Score, f.snap.Coins))
		f.screen.DrawTextCentered(mid+2, "R restart / Q quit")
	}
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
