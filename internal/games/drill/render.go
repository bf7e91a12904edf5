package drill

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/drilldown/internal/core"
	"github.com/vovakirdan/drilldown/internal/world"
)

// Layout
const (
	CellW     = 2  // Screen columns per tile
	HUDWidth  = 24 // Columns reserved right of the shaft
	hudMargin = 2
)

type glyph struct {
	text  string
	color core.Color
}

var tileGlyphs = map[world.Tile]glyph{
	world.Empty:        {"  ", core.ColorDefault},
	world.Dirt:         {"░░", core.ColorBrown},
	world.Rock:         {"▓▓", core.ColorGray},
	world.HardRock:     {"██", core.ColorDarkGray},
	world.ItemHeal:     {"♥ ", core.ColorRed},
	world.ItemBomb:     {"● ", core.ColorYellow},
	world.ItemAmethyst: {"◆ ", core.ColorPurple},
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	cols := g.world.Cols()
	fieldW := cols*CellW + 2
	rows := g.world.VisibleRows()
	if rows > dst.Height()-2 {
		rows = dst.Height() - 2
	}
	if rows < 1 || dst.Width() < fieldW {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small")
		return
	}

	fieldX := (dst.Width() - fieldW - HUDWidth) / 2
	if fieldX < 0 {
		fieldX = 0
	}
	fieldY := 0
	dst.DrawBox(core.NewRect(fieldX, fieldY, fieldW, rows+2))

	g.drawTiles(dst, fieldX+1, fieldY+1, rows)
	g.drawParticles(dst, fieldX+1, fieldY+1, rows)
	g.drawMoles(dst, fieldX+1, fieldY+1, rows)
	g.drawPlayer(dst, fieldX+1, fieldY+1, rows)

	hudX := fieldX + fieldW + hudMargin
	if hudX+HUDWidth-hudMargin > dst.Width() {
		g.drawCompactHUD(dst, fieldX+1, fieldY)
	} else {
		g.drawHUD(dst, hudX, fieldY+1)
	}

	if g.fever.Active {
		banner := " FEVER!! "
		dst.DrawTextColored(fieldX+(fieldW-len(banner))/2, fieldY+2, banner, core.ColorBrightYellow)
	}

	if g.showHelp && !g.gameOver {
		g.drawHelp(dst)
	}
	if g.paused {
		g.drawCenteredMessage(dst, []string{"PAUSED", "", "Press P to resume"})
	}
	if g.gameOver {
		g.drawGameOver(dst)
	}
}

// screenPos maps world pixels to a shaft cell, or ok=false when off view.
func (g *Game) screenPos(x, y float64, rows int) (sx, sy int, ok bool) {
	tile := g.world.TileSize()
	col := int(math.Floor(x / tile))
	row := int(math.Floor((y - g.topRow()*tile) / tile))
	if col < 0 || col >= g.world.Cols() || row < 0 || row >= rows {
		return 0, 0, false
	}
	return col * CellW, row, true
}

// topRow is the world row drawn at the top of the shaft.
func (g *Game) topRow() float64 {
	return math.Floor(g.scrollY / g.world.TileSize())
}

func (g *Game) drawTiles(dst *core.Screen, ox, oy, rows int) {
	top := int(g.topRow())
	for r := 0; r < rows; r++ {
		for c := 0; c < g.world.Cols(); c++ {
			gl := tileGlyphs[g.world.Cell(c, top+r)]
			dst.DrawTextColored(ox+c*CellW, oy+r, gl.text, gl.color)
		}
	}
}

func (g *Game) drawParticles(dst *core.Screen, ox, oy, rows int) {
	for _, p := range g.particles.Items() {
		sx, sy, ok := g.screenPos(p.X, p.Y, rows)
		if !ok {
			continue
		}
		if dst.Get(ox+sx, oy+sy) == ' ' {
			dst.SetColored(ox+sx, oy+sy, '·', p.Tag.Color())
		}
	}
}

func (g *Game) drawMoles(dst *core.Screen, ox, oy, rows int) {
	for _, m := range g.moles.Moles() {
		cx, cy := m.Bounds().Center()
		sx, sy, ok := g.screenPos(cx, cy, rows)
		if !ok {
			continue
		}
		face := "<ᴥ"
		if m.VX > 0 {
			face = "ᴥ>"
		}
		dst.DrawTextColored(ox+sx, oy+sy, face, core.ColorMagenta)
	}
}

func (g *Game) drawPlayer(dst *core.Screen, ox, oy, rows int) {
	p := g.player
	if p.Dead {
		return
	}
	cx, cy := p.Center()
	sx, sy, ok := g.screenPos(cx, cy, rows)
	if !ok {
		return
	}
	color := core.ColorBrightCyan
	if p.Fever {
		color = core.ColorBrightYellow
	}
	dst.DrawTextColored(ox+sx, oy+sy, "▼▼", color)
}

func (g *Game) hudLines() []glyph {
	p := g.player
	hearts := strings.Repeat("♥", p.HP) + strings.Repeat("♡", core.Max(0, p.MaxHP-p.HP))

	bombs := fmt.Sprintf("Bombs %d/%d", p.Bombs, p.MaxBombs)
	if p.BombCooldown() > 0 {
		bombs += " …"
	}

	lines := []glyph{
		{g.Title(), core.ColorBrightWhite},
		{"", core.ColorDefault},
		{fmt.Sprintf("Depth %dm", g.score), core.ColorWhite},
		{hearts, core.ColorRed},
		{bombs, core.ColorYellow},
		{fmt.Sprintf("Gems  %d", p.Money), core.ColorPurple},
	}
	if econ := g.svc.Economy; econ != nil {
		lines = append(lines, glyph{fmt.Sprintf("Bank  %d", econ.Money()), core.ColorGreen})
	}
	if g.fever.Active {
		secs := float64(g.fever.Remaining) / float64(g.tickRate())
		lines = append(lines, glyph{fmt.Sprintf("FEVER %.1fs", secs), core.ColorBrightYellow})
	} else {
		next := g.fever.LastDepth + g.fever.Interval
		lines = append(lines, glyph{fmt.Sprintf("Fever at %dm", next), core.ColorOrange})
	}
	if g.stats.MagnetDetect > 0 {
		lines = append(lines, glyph{fmt.Sprintf("Magnet %d near", g.magnetSeen), core.ColorCyan})
	}
	if g.kills > 0 {
		lines = append(lines, glyph{fmt.Sprintf("Moles %d", g.kills), core.ColorMagenta})
	}
	if g.mode == ModeDaily {
		lines = append(lines, glyph{"Daily " + g.now().UTC().Format("2006-01-02"), core.ColorGray})
	}
	lines = append(lines, glyph{"", core.ColorDefault}, glyph{"0/? help", core.ColorGray})
	return lines
}

func (g *Game) drawHUD(dst *core.Screen, x, y int) {
	for i, l := range g.hudLines() {
		dst.DrawTextColored(x, y+i, l.text, l.color)
	}
}

// drawCompactHUD squeezes depth, HP and bombs into the top border.
func (g *Game) drawCompactHUD(dst *core.Screen, x, y int) {
	p := g.player
	text := fmt.Sprintf(" %dm ♥%d ●%d ◆%d ", g.score, p.HP, p.Bombs, p.Money)
	dst.DrawTextColored(x, y, text, core.ColorBrightWhite)
}

func (g *Game) drawHelp(dst *core.Screen) {
	g.drawCenteredMessage(dst, []string{
		"CONTROLS",
		"",
		"←/→  steer",
		"↓    boost",
		"SPC  bomb",
		"P    pause",
		"0/?  hide help",
		"Q    quit",
	})
}

func (g *Game) drawGameOver(dst *core.Screen) {
	lines := []string{"GAME OVER", ""}
	if res, ok := g.Result(); ok {
		lines = append(lines,
			fmt.Sprintf("Depth %dm", res.Score),
			fmt.Sprintf("Gems %d + depth bonus %d", res.Money, res.Bonus),
		)
	}
	if len(g.highScores) > 0 {
		lines = append(lines, "", "High scores")
		for i, s := range g.highScores {
			lines = append(lines, fmt.Sprintf("%d. %dm", i+1, s))
		}
	}
	lines = append(lines, "", "R restart  U shop  Q quit")
	g.drawCenteredMessage(dst, lines)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, lines []string) {
	w := dst.Width()
	h := dst.Height()

	maxLen := 0
	for _, l := range lines {
		maxLen = core.Max(maxLen, len([]rune(l)))
	}
	boxW := maxLen + 4
	boxH := len(lines) + 2
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	for i, l := range lines {
		x := boxX + (boxW-len([]rune(l)))/2
		dst.DrawText(x, boxY+1+i, l)
	}
}

func (g *Game) tickRate() int {
	if g.runtime.TickRate > 0 {
		return g.runtime.TickRate
	}
	return 60
}
