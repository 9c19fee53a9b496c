// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/highway/pkg/config"
	"github.com/decker502/highway/pkg/embedded"
	"github.com/decker502/highway/pkg/game"
	"github.com/decker502/highway/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Profile 指定调参档案（如 "demov2"），为空则使用设置中保存的档案或文件默认档案
	Profile string
	// TuningPath 从磁盘读取调参文件，为空则使用嵌入的 data/tuning.yaml
	TuningPath string
	// SkipLoadingScene 跳过加载场景和主菜单，直接开始一局
	SkipLoadingScene bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	if !embedded.IsInitialized() {
		return nil, fmt.Errorf("embedded data not initialized")
	}

	tuningFile, err := LoadTuningFile(cfg.TuningPath)
	if err != nil {
		return nil, fmt.Errorf("调参文件加载失败: %w", err)
	}
	log.Printf("[App] 调参档案: %v (默认 %s)", tuningFile.ProfileNames(), tuningFile.DefaultProfile)

	// 创建资源管理器
	resourceManager := game.NewResourceManager(embedded.FS())

	// 命令行指定的档案优先，并记入设置
	gameState := game.GetGameState()
	settingsManager := gameState.GetSettingsManager()
	if cfg.Profile != "" {
		if _, err := tuningFile.Profile(cfg.Profile); err != nil {
			return nil, fmt.Errorf("调参档案无效: %w", err)
		}
		settingsManager.SetProfile(cfg.Profile)
	}
	if settingsManager.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(profile string) game.Scene {
		tuning := ResolveProfile(tuningFile, profile)
		scene, err := scenes.NewGameScene(resourceManager, sceneManager, gameState.GetHighScoreStore(), settingsManager, tuning)
		if err != nil {
			log.Printf("[App] 错误: 无法创建跑酷场景: %v", err)
			return nil
		}
		return scene
	})

	menu := scenes.NewMainMenuScene(sceneManager, gameState.GetHighScoreStore(), settingsManager, tuningFile.ProfileNames(), tuningFile.DefaultProfile)
	sceneManager.SetMenuScene(menu)

	// 根据配置决定启动场景
	if cfg.SkipLoadingScene {
		log.Printf("[App] SkipLoadingScene enabled, starting run with profile %q", menu.SelectedProfile())
		sceneManager.StartRun(menu.SelectedProfile())
	} else {
		modelNames, err := embedded.ModelNames()
		if err != nil {
			log.Printf("[App] Warning: %v (models will load on demand)", err)
		}
		loadingScene := scenes.NewLoadingScene(resourceManager, sceneManager, menu, modelNames)
		sceneManager.SwitchTo(loadingScene)
	}

	return &App{
		sceneManager: sceneManager,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			// 退出全屏
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
		a.saveFullscreen(ebiten.IsFullscreen())
	}

	a.sceneManager.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

func (a *App) saveFullscreen(enabled bool) {
	settingsManager := game.GetGameState().GetSettingsManager()
	if settingsManager == nil {
		return
	}
	settingsManager.SetFullscreen(enabled)
	if err := settingsManager.Save(); err != nil {
		log.Printf("[App] Warning: Failed to save fullscreen setting: %v", err)
	}
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	// 使用线性滤波绘制游戏画面，提高缩放质量
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// GetSceneManager 返回场景管理器
// 用于在游戏关闭时保存最高分
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}
