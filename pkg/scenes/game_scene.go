package scenes

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"math"

	"github.com/decker502/highway/pkg/config"
	"github.com/decker502/highway/pkg/game"
	"github.com/decker502/highway/pkg/runner"
	"github.com/decker502/highway/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// touchButton 右下角的触摸动作按钮
type touchButton struct {
	label  string
	x, y   float64 // 圆心
	radius float64
	apply  func(in *game.InputState)
}

var touchButtons = []touchButton{
	{label: "JUMP", x: config.GameWindowWidth - 70, y: config.GameWindowHeight - 70, radius: 40,
		apply: func(in *game.InputState) { in.Jump = true }},
	{label: "SHLD", x: config.GameWindowWidth - 170, y: config.GameWindowHeight - 60, radius: 32,
		apply: func(in *game.InputState) { in.Shield = true }},
	{label: "MOVE", x: config.GameWindowWidth - 70, y: config.GameWindowHeight - 170, radius: 32,
		apply: func(in *game.InputState) { in.Reposition = true }},
}

// touchButtonAt 返回包含屏幕坐标的按钮下标，没有时返回 -1
func touchButtonAt(x, y int) int {
	for i, b := range touchButtons {
		if math.Hypot(float64(x)-b.x, float64(y)-b.y) <= b.radius {
			return i
		}
	}
	return -1
}

// GameScene 一局跑酷
//
// 场景只负责输入采集与绘制：键盘、触摸摇杆转换为 InputState 交给游戏循环，
// 游戏循环通过 Display（HUD）与 Renderer（本场景）把结果推回来。
type GameScene struct {
	sceneManager *game.SceneManager
	runner       *runner.Runner
	hud          *HUD
	world        *WorldRenderer
	settings     *game.SettingsManager // 可为 nil

	keys          KeySource
	pointer       PointerSource
	touchControls bool
	touchDetect   func() bool
	joystick      *utils.Joystick

	view *game.View
}

// NewGameScene 创建跑酷场景并立即开始一局
//
// 参数：
//   - loader: 模型加载器（通常是 *game.ResourceManager）
//   - sm: 场景管理器，用于返回主菜单
//   - highScores: 最高分存储
//   - settings: 偏好设置，可为 nil
//   - tuning: 本局使用的调参档案
func NewGameScene(loader game.ModelLoader, sm *game.SceneManager, highScores *game.HighScoreStore, settings *game.SettingsManager, tuning *config.TuningConfig) (*GameScene, error) {
	s := &GameScene{
		sceneManager: sm,
		hud:          NewHUD(),
		world:        NewWorldRenderer(utils.DefaultCamera(config.GameWindowWidth, config.GameWindowHeight)),
		settings:     settings,
		keys:         ebitenKeys{},
		pointer:      defaultPointer,
	}

	deadZone := game.DefaultSettings().JoystickDeadZone
	if settings != nil {
		deadZone = settings.GetSettings().JoystickDeadZone
		s.world.ShowDebug = settings.GetSettings().ShowDebug
	}
	area := image.Rect(0, config.GameWindowHeight-config.JoystickAreaHeight, config.JoystickAreaWidth, config.GameWindowHeight)
	s.joystick = utils.NewJoystick(area, config.JoystickRadius, deadZone)
	s.touchControls = utils.IsMobile()
	s.touchDetect = utils.IsTouchDevice

	r, err := runner.New(tuning, runner.Deps{
		Loader:     loader,
		Display:    s.hud,
		Renderer:   s,
		HighScores: highScores,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create game loop: %w", err)
	}
	s.runner = r
	r.Start()

	log.Printf("[GameScene] Run started (speed %.0f→%.0f)", tuning.Speed.Initial, tuning.Speed.Max)
	return s, nil
}

// Render 实现 game.Renderer，保存最新的渲染快照
func (s *GameScene) Render(view *game.View) {
	s.view = view
}

// Runner 返回游戏循环
func (s *GameScene) Runner() *runner.Runner {
	return s.runner
}

// HUD 返回显示层
func (s *GameScene) HUD() *HUD {
	return s.hud
}

// Update 采集输入、处理控制键并推进一个 tick
func (s *GameScene) Update(deltaTime float64) {
	// 桌面触摸屏：第一次触摸后显示触摸控件
	if !s.touchControls && s.touchDetect != nil && s.touchDetect() {
		log.Printf("[GameScene] Touch input detected, enabling touch controls")
		s.touchControls = true
	}
	s.handleCommand(readCommand(s.keys))

	in := keyboardInput(s.keys)
	s.applyTouch(&in)
	s.runner.Tick(deltaTime, in)
}

func (s *GameScene) handleCommand(cmd sessionCommand) {
	switch cmd {
	case commandPause:
		s.runner.TogglePause()
	case commandRestart:
		log.Printf("[GameScene] Restart")
		s.hud.Reset()
		s.runner.Restart()
	case commandEndBoss:
		if !s.runner.ForceEndBoss() {
			log.Printf("[GameScene] Warning: no boss encounter to end")
		}
	case commandMenu:
		if err := s.runner.Abandon(); err != nil {
			log.Printf("[GameScene] Warning: %v", err)
		}
		s.sceneManager.ReturnToMenu()
	case commandDebug:
		s.world.ShowDebug = !s.world.ShowDebug
		if s.settings != nil {
			s.settings.SetShowDebug(s.world.ShowDebug)
			if err := s.settings.Save(); err != nil {
				log.Printf("[GameScene] Warning: Failed to save debug setting: %v", err)
			}
		}
	}
}

// applyTouch 合并触摸摇杆与动作按钮
// 点击任意位置也能在结算后重新开始
func (s *GameScene) applyTouch(in *game.InputState) {
	if !s.touchControls {
		return
	}
	s.joystick.Update()
	in.LateralAxis = s.joystick.Axis()

	pressed, x, y := s.pointer()
	if !pressed {
		return
	}
	if _, over := s.runner.Summary(); over && !s.runner.Session().Active {
		s.handleCommand(commandRestart)
		return
	}
	if i := touchButtonAt(x, y); i >= 0 {
		touchButtons[i].apply(in)
	}
}

// Draw 绘制路面、实体、HUD 与触摸控件
func (s *GameScene) Draw(screen *ebiten.Image) {
	s.world.Draw(screen, s.view)
	s.hud.Draw(screen)
	if s.touchControls {
		s.drawTouchControls(screen)
	}
}

func (s *GameScene) drawTouchControls(screen *ebiten.Image) {
	overlay := color.RGBA{255, 255, 255, 60}

	drag := s.joystick.Drag()
	cx := float32(config.JoystickAreaWidth / 2)
	cy := float32(config.GameWindowHeight - config.JoystickAreaHeight/2)
	if drag.IsActive() {
		info := drag.GetInfo()
		cx, cy = float32(info.StartX), float32(info.StartY)
	}
	vector.StrokeCircle(screen, cx, cy, config.JoystickRadius, 2, overlay, true)
	knob := cx + float32(s.joystick.Axis()*config.JoystickRadius)
	vector.DrawFilledCircle(screen, knob, cy, config.JoystickKnobRadius, overlay, true)

	for _, b := range touchButtons {
		vector.DrawFilledCircle(screen, float32(b.x), float32(b.y), float32(b.radius), overlay, true)
		ebitenutil.DebugPrintAt(screen, b.label, int(b.x)-12, int(b.y)-8)
	}
}

// SaveOnExit 实现 game.Saveable：关闭窗口时把进行中的得分计入最高分
func (s *GameScene) SaveOnExit() bool {
	if err := s.runner.Abandon(); err != nil {
		log.Printf("[GameScene] Warning: %v", err)
		return false
	}
	return true
}
