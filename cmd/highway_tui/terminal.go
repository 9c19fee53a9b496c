package main

import (
	"fmt"
	"math"

	"github.com/decker502/highway/pkg/config"
	"github.com/decker502/highway/pkg/game"
	"github.com/gdamore/tcell/v2"
)

// cellWriter 终端画布，tcell.Screen 实现了该接口
type cellWriter interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (int, int)
}

// hudRows 顶部 HUD 占用的行数
const hudRows = 2

var (
	styleDefault = tcell.StyleDefault
	styleRoad    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleBanner  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkRed)
	stylePanel   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleShield  = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
)

// kindRunes 每类实体的字符
var kindRunes = map[game.EntityKind]rune{
	game.KindPlayer:     '@',
	game.KindObstacle:   '#',
	game.KindPowerUp:    '$',
	game.KindBoss:       'B',
	game.KindProjectile: '*',
	game.KindEffect:     '.',
}

// powerUpRunes 道具按类型区分字符
var powerUpRunes = map[string]rune{
	"shield":     'S',
	"currency":   '$',
	"reposition": '+',
}

// terminal 俯视视角的终端界面，实现 game.Display 与 game.Renderer
//
// 屏幕纵向是行进方向（上方为远处），横向是路面宽度。
type terminal struct {
	canvas cellWriter

	halfWidth float64 // 横向可见范围 [-halfWidth, halfWidth]
	far, near float64 // 纵向可见范围

	stats   game.Stats
	banner  bool
	summary *game.Summary
	demo    bool
}

func newTerminal(canvas cellWriter, cfg *config.TuningConfig) *terminal {
	half := math.Max(cfg.Player.LateralLimit, math.Max(cfg.Obstacle.LateralRange, cfg.PowerUp.LateralRange)) + 2
	return &terminal{
		canvas:    canvas,
		halfWidth: half,
		far:       math.Min(cfg.Obstacle.SpawnDepth, cfg.PowerUp.SpawnDepth),
		near:      4,
	}
}

func (t *terminal) UpdateStats(stats game.Stats) { t.stats = stats }
func (t *terminal) ShowBossBanner(active bool)   { t.banner = active }

func (t *terminal) ShowGameOver(summary game.Summary) {
	t.summary = &summary
	t.banner = false
}

// reset 重新开始时清除横幅与结算面板
func (t *terminal) reset() {
	t.banner = false
	t.summary = nil
}

// column 世界 X 到屏幕列
func (t *terminal) column(x float64, width int) int {
	ratio := (x + t.halfWidth) / (2 * t.halfWidth)
	return int(math.Round(ratio * float64(width-1)))
}

// row 世界 Z 到屏幕行，返回 false 表示不在可见范围内
func (t *terminal) row(z float64, height int) (int, bool) {
	if z < t.far || z > t.near {
		return 0, false
	}
	rows := height - hudRows
	if rows <= 0 {
		return 0, false
	}
	ratio := (z - t.far) / (t.near - t.far)
	return hudRows + int(math.Round(ratio*float64(rows-1))), true
}

// Render 绘制一帧；调用方负责 Clear 与 Show
func (t *terminal) Render(view *game.View) {
	width, height := t.canvas.Size()
	if width <= 0 || height <= hudRows {
		return
	}

	t.drawRoad(width, height)
	if view != nil {
		for _, e := range view.Entities {
			if e.Kind == game.KindGround {
				continue
			}
			t.drawEntity(e, width, height)
		}
	}
	t.drawHUD(width)
	if t.summary != nil {
		t.drawSummary(width, height)
	}
}

func (t *terminal) drawRoad(width, height int) {
	left := t.column(-t.halfWidth+1, width)
	right := t.column(t.halfWidth-1, width)
	for y := hudRows; y < height; y++ {
		t.canvas.SetContent(left, y, '|', nil, styleRoad)
		t.canvas.SetContent(right, y, '|', nil, styleRoad)
	}
}

func (t *terminal) drawEntity(e game.ViewEntity, width, height int) {
	ch := kindRunes[e.Kind]
	if e.Kind == game.KindPowerUp {
		if r, ok := powerUpRunes[e.Label]; ok {
			ch = r
		}
	}
	style := styleDefault
	if e.Color != "" {
		style = style.Foreground(tcell.GetColor(e.Color))
	}
	if e.Kind == game.KindPlayer && e.Shielded {
		ch, style = 'O', styleShield
	}

	x0 := t.column(e.Pos.X()-e.Size.X()/2, width)
	x1 := t.column(e.Pos.X()+e.Size.X()/2, width)
	rowFar, okFar := t.row(e.Pos.Z()-e.Size.Z()/2, height)
	rowNear, okNear := t.row(e.Pos.Z()+e.Size.Z()/2, height)
	if !okFar && !okNear {
		return
	}
	if !okFar {
		rowFar = hudRows
	}
	if !okNear {
		rowNear = height - 1
	}

	for y := rowFar; y <= rowNear; y++ {
		for x := x0; x <= x1; x++ {
			if x >= 0 && x < width {
				t.canvas.SetContent(x, y, ch, nil, style)
			}
		}
	}
}

func (t *terminal) drawHUD(width int) {
	s := t.stats
	line := fmt.Sprintf("Score %d  Best %d  Dist %.0f  Speed %.1f  HP %d/%d  Coins %d",
		s.Score, s.HighScore, s.Distance, s.Speed, s.Health, s.MaxHealth, s.Coins)
	drawText(t.canvas, 0, 0, width, styleDefault, line)

	status := fmt.Sprintf("Shield x%d  Reposition x%d", s.ShieldCharges, s.RepositionCharges)
	if s.ShieldActive {
		status = fmt.Sprintf("SHIELD %.1fs  Reposition x%d", s.ShieldRemaining, s.RepositionCharges)
	}
	style := styleDefault
	if t.banner {
		status = fmt.Sprintf("BOSS! survive %.0f  %s", math.Ceil(s.BossRemaining), status)
		style = styleBanner
	}
	if s.Paused {
		status += "  [PAUSED]"
	}
	if t.demo {
		status += "  [DEMO]"
	}
	drawText(t.canvas, 0, 1, width, style, status)
}

func (t *terminal) drawSummary(width, height int) {
	s := *t.summary
	lines := []string{
		fmt.Sprintf(" GAME OVER (%s) ", s.Reason),
		fmt.Sprintf(" Score %d  Distance %.0f ", s.Score, s.Distance),
		fmt.Sprintf(" High score %d ", s.HighScore),
		" r: restart  q: quit ",
	}
	if s.NewHighScore {
		lines[2] = " NEW HIGH SCORE! "
	}
	top := height/2 - len(lines)/2
	for i, line := range lines {
		x := (width - len(line)) / 2
		if x < 0 {
			x = 0
		}
		drawText(t.canvas, x, top+i, width, stylePanel, line)
	}
}

// drawText 从 (x, y) 开始写一行文字，超出 width 的部分截断
func drawText(canvas cellWriter, x, y, width int, style tcell.Style, text string) {
	for _, r := range text {
		if x >= width {
			return
		}
		canvas.SetContent(x, y, r, nil, style)
		x++
	}
}
