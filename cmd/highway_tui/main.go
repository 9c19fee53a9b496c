// highway_tui 终端版公路跑酷，与窗口版共用同一个游戏核心和最高分记录
//
// 用法：
//
//	go run ./cmd/highway_tui -profile classic
//	go run ./cmd/highway_tui -demo   # 自动驾驶演示
//
// 操作：←/→ 或 A/D 移动，空格/W 跳跃，Z 护盾，X 位移，
// P 暂停，R 重开，B 结束 Boss，M 切换演示，Q 退出。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/decker502/highway/pkg/app"
	"github.com/decker502/highway/pkg/embedded"
	"github.com/decker502/highway/pkg/game"
	"github.com/decker502/highway/pkg/runner"
	"github.com/gdamore/tcell/v2"
)

const frameInterval = time.Second / 30

var (
	// 命令行参数
	profile    = flag.String("profile", "", "调参档案名，为空使用默认档案")
	tuningPath = flag.String("tuning", "", "调参文件路径，为空读取 <data>/data/tuning.yaml")
	dataRoot   = flag.String("data", ".", "包含 data/ 目录的仓库根目录")
	demo       = flag.Bool("demo", false, "自动驾驶演示")
	logPath    = flag.String("log", "", "日志写入该文件（终端界面下无法直接显示日志）")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "highway_tui: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			return fmt.Errorf("failed to create log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	embedded.Init(os.DirFS(*dataRoot))
	file, err := app.LoadTuningFile(*tuningPath)
	if err != nil {
		log.Printf("[TUI] Warning: %v", err)
	}
	name := *profile
	if name == "" && file != nil {
		name = file.DefaultProfile
	}
	cfg := app.ResolveProfile(file, name)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()

	term := newTerminal(screen, cfg)
	term.demo = *demo

	r, err := runner.New(cfg, runner.Deps{
		Loader:     game.NewResourceManager(embedded.FS()),
		Display:    term,
		Renderer:   term,
		HighScores: game.GetGameState().GetHighScoreStore(),
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := r.Abandon(); err != nil {
			log.Printf("[TUI] Warning: %v", err)
		}
	}()
	pilot := runner.NewAutopilot(r)

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()
	defer close(quit)

	r.Start()
	keys := &keyTracker{}
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				switch keys.Handle(ev, time.Now()) {
				case actQuit:
					return nil
				case actPause:
					r.TogglePause()
				case actRestart:
					term.reset()
					r.Restart()
				case actEndBoss:
					r.ForceEndBoss()
				case actDemo:
					term.demo = !term.demo
				}
			}

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			in := keys.Input(now)
			if term.demo {
				in = pilot.Input(r.View())
			}
			screen.Clear()
			r.Tick(dt, in)
			screen.Show()
		}
	}
}
