package main

import (
	"strings"
	"testing"

	"github.com/decker502/highway/pkg/config"
	"github.com/decker502/highway/pkg/game"
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
)

// gridCanvas 内存中的字符网格
type gridCanvas struct {
	w, h  int
	cells [][]rune
}

func newGridCanvas(w, h int) *gridCanvas {
	c := &gridCanvas{w: w, h: h, cells: make([][]rune, h)}
	for y := range c.cells {
		c.cells[y] = []rune(strings.Repeat(" ", w))
	}
	return c
}

func (c *gridCanvas) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y][x] = primary
}

func (c *gridCanvas) Size() (int, int) { return c.w, c.h }

func (c *gridCanvas) row(y int) string { return string(c.cells[y]) }

// count 统计 HUD 以下区域中字符 r 的个数
func (c *gridCanvas) count(r rune) int {
	n := 0
	for _, line := range c.cells[hudRows:] {
		for _, cell := range line {
			if cell == r {
				n++
			}
		}
	}
	return n
}

func newTestTerminal(w, h int) (*terminal, *gridCanvas) {
	canvas := newGridCanvas(w, h)
	return newTerminal(canvas, config.DefaultTuning()), canvas
}

func TestTerminalLayout(t *testing.T) {
	term, _ := newTestTerminal(41, 32)

	if got := term.column(0, 41); got != 20 {
		t.Errorf("column(0) = %d, want center 20", got)
	}
	if got := term.column(-term.halfWidth, 41); got != 0 {
		t.Errorf("left edge column = %d, want 0", got)
	}
	if got := term.column(term.halfWidth, 41); got != 40 {
		t.Errorf("right edge column = %d, want 40", got)
	}

	far, ok := term.row(term.far, 32)
	if !ok || far != hudRows {
		t.Errorf("row(far) = %d,%v, want %d,true", far, ok, hudRows)
	}
	near, ok := term.row(term.near, 32)
	if !ok || near != 31 {
		t.Errorf("row(near) = %d,%v, want 31,true", near, ok)
	}
	if _, ok := term.row(term.far-1, 32); ok {
		t.Error("entities beyond the spawn depth should not be visible")
	}
	if _, ok := term.row(term.near+1, 32); ok {
		t.Error("entities behind the camera should not be visible")
	}
}

func TestTerminalRender(t *testing.T) {
	term, canvas := newTestTerminal(60, 30)
	term.UpdateStats(game.Stats{Score: 120, HighScore: 900, Health: 3, MaxHealth: 3})

	view := &game.View{Entities: []game.ViewEntity{
		{Kind: game.KindGround, Pos: mgl64.Vec3{0, 0, -10}, Size: mgl64.Vec3{10, 0, 20}},
		{Kind: game.KindObstacle, Pos: mgl64.Vec3{-2, 0.5, -40}, Size: mgl64.Vec3{1, 1, 1}},
		{Kind: game.KindPowerUp, Label: "shield", Pos: mgl64.Vec3{2, 1, -20}, Size: mgl64.Vec3{0.5, 0.5, 0.5}},
		{Kind: game.KindPlayer, Pos: mgl64.Vec3{0, 0.5, 0}, Size: mgl64.Vec3{0.5, 1, 0.5}},
	}}
	term.Render(view)

	if !strings.Contains(canvas.row(0), "Score 120") {
		t.Errorf("HUD row should show the score, got %q", canvas.row(0))
	}
	if canvas.count('@') == 0 {
		t.Error("player should be drawn")
	}
	if canvas.count('#') == 0 {
		t.Error("obstacle should be drawn")
	}
	if canvas.count('S') == 0 {
		t.Error("shield power-up should use its own rune")
	}
	if canvas.count('|') < 2*(30-hudRows) {
		t.Error("road edges should span every playfield row")
	}
}

func TestTerminalShieldedPlayerAndBanner(t *testing.T) {
	term, canvas := newTestTerminal(60, 20)
	term.ShowBossBanner(true)
	term.UpdateStats(game.Stats{BossRemaining: 9.2})
	term.Render(&game.View{Entities: []game.ViewEntity{
		{Kind: game.KindPlayer, Shielded: true, Pos: mgl64.Vec3{0, 0.5, 0}, Size: mgl64.Vec3{0.5, 1, 0.5}},
	}})

	if canvas.count('O') == 0 || canvas.count('@') != 0 {
		t.Error("shielded player should be drawn with the shield rune")
	}
	if !strings.Contains(canvas.row(1), "BOSS! survive 10") {
		t.Errorf("banner row should show the boss countdown, got %q", canvas.row(1))
	}
}

func TestTerminalGameOverPanel(t *testing.T) {
	term, canvas := newTestTerminal(60, 20)
	term.ShowBossBanner(true)
	term.ShowGameOver(game.Summary{Reason: "crash", Score: 500, NewHighScore: true})
	if term.banner {
		t.Error("game over should hide the boss banner")
	}
	term.Render(&game.View{})

	var text string
	for y := 0; y < 20; y++ {
		text += canvas.row(y) + "\n"
	}
	for _, want := range []string{"GAME OVER (crash)", "NEW HIGH SCORE!", "r: restart"} {
		if !strings.Contains(text, want) {
			t.Errorf("summary panel should contain %q", want)
		}
	}

	term.reset()
	if term.summary != nil {
		t.Error("reset should clear the summary panel")
	}
}
