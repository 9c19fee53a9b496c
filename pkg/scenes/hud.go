package scenes

import (
	"fmt"
	"image/color"
	"math"

	"github.com/decker502/highway/pkg/config"
	"github.com/decker502/highway/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// HUD 实现 game.Display：保存游戏循环推送的数值，在 Draw 时绘制
type HUD struct {
	stats      game.Stats
	bossBanner bool
	summary    *game.Summary
}

// NewHUD 创建 HUD
func NewHUD() *HUD {
	return &HUD{}
}

// UpdateStats 统计数据变化时调用
func (h *HUD) UpdateStats(stats game.Stats) {
	h.stats = stats
}

// ShowBossBanner 进入或离开 Boss 战
func (h *HUD) ShowBossBanner(active bool) {
	h.bossBanner = active
}

// ShowGameOver 显示结算面板
func (h *HUD) ShowGameOver(summary game.Summary) {
	h.summary = &summary
	h.bossBanner = false
}

// Reset 重新开始时清除横幅与结算面板
func (h *HUD) Reset() {
	h.stats = game.Stats{}
	h.bossBanner = false
	h.summary = nil
}

// Stats 返回最近一次推送的数值
func (h *HUD) Stats() game.Stats {
	return h.stats
}

// BannerVisible Boss 横幅是否显示
func (h *HUD) BannerVisible() bool {
	return h.bossBanner
}

// Summary 返回结算信息，尚未结束时返回 false
func (h *HUD) Summary() (game.Summary, bool) {
	if h.summary == nil {
		return game.Summary{}, false
	}
	return *h.summary, true
}

// statLines 左上角的数值文字
func (h *HUD) statLines() []string {
	s := h.stats
	lines := []string{
		fmt.Sprintf("Score %d   Best %d", s.Score, s.HighScore),
		fmt.Sprintf("Distance %.0f   Speed %.1f", s.Distance, s.Speed),
		fmt.Sprintf("Coins %d", s.Coins),
	}

	shield := fmt.Sprintf("Shield x%d", s.ShieldCharges)
	if s.ShieldActive {
		shield = fmt.Sprintf("Shield ON %.1fs", s.ShieldRemaining)
	}
	lines = append(lines, fmt.Sprintf("%s   Reposition x%d", shield, s.RepositionCharges))

	if s.Mode == game.ModeBoss {
		lines = append(lines, fmt.Sprintf("Boss %.0f", math.Ceil(s.BossRemaining)))
	}
	if s.Paused {
		lines = append(lines, "PAUSED (P to resume)")
	}
	return lines
}

// summaryLines 结算面板文字
func summaryLines(summary game.Summary) []string {
	reason := "Crashed"
	if summary.Reason == game.ReasonHealth {
		reason = "Out of health"
	}
	lines := []string{
		"GAME OVER - " + reason,
		fmt.Sprintf("Score %d", summary.Score),
		fmt.Sprintf("Distance %.0f   Coins %d", summary.Distance, summary.Coins),
	}
	if summary.NewHighScore {
		lines = append(lines, "NEW HIGH SCORE!")
	} else {
		lines = append(lines, fmt.Sprintf("High score %d", summary.HighScore))
	}
	if summary.BossCleared {
		lines = append(lines, "Boss cleared")
	}
	return append(lines, "R: restart   M: menu")
}

// Draw 绘制 HUD
func (h *HUD) Draw(screen *ebiten.Image) {
	x := config.HUDMargin
	y := config.HUDMargin
	for i, line := range h.statLines() {
		ebitenutil.DebugPrintAt(screen, line, x, y+i*config.HUDLineHeight)
	}
	h.drawHealthBar(screen)

	if h.bossBanner {
		w := float32(config.GameWindowWidth)
		vector.DrawFilledRect(screen, 0, 90, w, config.BannerHeight, color.RGBA{160, 20, 20, 200}, false)
		ebitenutil.DebugPrintAt(screen, "!! BOSS INCOMING - SURVIVE !!", config.GameWindowWidth/2-90, 90+12)
	}

	if h.summary != nil {
		drawPanel(screen, summaryLines(*h.summary))
	}
}

func (h *HUD) drawHealthBar(screen *ebiten.Image) {
	if h.stats.MaxHealth <= 0 {
		return
	}
	x := float32(config.GameWindowWidth) - config.HealthBarWidth - config.HUDMargin
	y := float32(config.HUDMargin)
	ratio := float32(h.stats.Health) / float32(h.stats.MaxHealth)
	if ratio < 0 {
		ratio = 0
	}

	fill := color.RGBA{60, 200, 90, 255}
	if ratio < 0.3 {
		fill = color.RGBA{220, 60, 50, 255}
	}
	vector.DrawFilledRect(screen, x, y, config.HealthBarWidth, config.HealthBarHeight, color.RGBA{30, 30, 30, 200}, false)
	vector.DrawFilledRect(screen, x, y, config.HealthBarWidth*ratio, config.HealthBarHeight, fill, false)
	vector.StrokeRect(screen, x, y, config.HealthBarWidth, config.HealthBarHeight, 1, color.White, false)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("HP %d/%d", h.stats.Health, h.stats.MaxHealth),
		int(x), int(y+config.HealthBarHeight)+2)
}

// drawPanel 屏幕中央的半透明面板
func drawPanel(screen *ebiten.Image, lines []string) {
	const width, padding = 300, 16
	height := float32(len(lines)*config.HUDLineHeight + 2*padding)
	x := float32(config.GameWindowWidth-width) / 2
	y := (float32(config.GameWindowHeight) - height) / 2

	vector.DrawFilledRect(screen, x, y, width, height, color.RGBA{0, 0, 0, 180}, false)
	vector.StrokeRect(screen, x, y, width, height, 2, color.White, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, int(x)+padding, int(y)+padding+i*config.HUDLineHeight)
	}
}
