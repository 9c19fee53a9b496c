package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/decker502/highway/pkg/app"
	"github.com/decker502/highway/pkg/config"
	"github.com/decker502/highway/pkg/embedded"
	"github.com/decker502/highway/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	// 命令行参数
	verbose    = flag.Bool("verbose", false, "显示详细日志")
	profile    = flag.String("profile", "", "调参档案名（如 highway、demov2、classic）")
	tuningPath = flag.String("tuning", "", "从磁盘读取调参文件，便于调参时无需重新编译")
	skipMenu   = flag.Bool("skip-menu", false, "跳过加载界面和主菜单，直接开始一局")
)

// Game wraps the app so that closing the window saves the running score first.
type Game struct {
	*app.App
}

// Update handles the window close request before delegating to the app.
func (g *Game) Update() error {
	if ebiten.IsWindowBeingClosed() {
		if saveable, ok := g.GetSceneManager().GetCurrentScene().(game.Saveable); ok {
			if !saveable.SaveOnExit() {
				log.Printf("[main] Warning: failed to save on exit")
			}
		}
		return ebiten.Termination
	}
	return g.App.Update()
}

func main() {
	flag.Parse()

	// 初始化嵌入数据（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:          *verbose,
		Profile:          *profile,
		TuningPath:       *tuningPath,
		SkipLoadingScene: *skipMenu,
	})
	if err != nil {
		// 非 verbose 模式下日志已被丢弃，直接写到 stderr
		fmt.Fprintf(os.Stderr, "游戏初始化失败: %v\n", err)
		os.Exit(1)
	}

	// Set window properties
	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle(config.GameWindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	// Start the game loop
	if err := ebiten.RunGame(&Game{App: gameApp}); err != nil {
		log.Fatal(err)
	}
}
