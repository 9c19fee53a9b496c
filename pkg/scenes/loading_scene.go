package scenes

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"sync/atomic"

	"github.com/decker502/highway/pkg/config"
	"github.com/decker502/highway/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ModelPreloader 并行预加载模型描述，*game.ResourceManager 实现了该接口
type ModelPreloader interface {
	Preload(ctx context.Context, names []string, progress func(done, total int)) error
}

// LoadingScene represents the loading screen shown when the game starts.
// It preloads every model descriptor on a worker goroutine and shows a progress bar;
// once loading finishes it switches to the main menu.
type LoadingScene struct {
	preloader    ModelPreloader
	sceneManager *game.SceneManager
	next         game.Scene
	names        []string

	started  bool
	finished atomic.Int32 // 已完成的模型数，由工作协程写入
	done     atomic.Bool
	loadErr  atomic.Value // error

	elapsedAfterDone float64
}

// NewLoadingScene creates a new loading scene.
// next is the scene shown after loading, usually the main menu.
func NewLoadingScene(preloader ModelPreloader, sm *game.SceneManager, next game.Scene, names []string) *LoadingScene {
	return &LoadingScene{
		preloader:    preloader,
		sceneManager: sm,
		next:         next,
		names:        names,
	}
}

// Update starts the preload on the first frame and switches scenes once it completes.
func (s *LoadingScene) Update(deltaTime float64) {
	if !s.started {
		s.start()
	}
	if !s.done.Load() {
		return
	}

	s.elapsedAfterDone += deltaTime
	if s.elapsedAfterDone < config.LoadingFinishDelay {
		return
	}
	if s.sceneManager == nil || s.next == nil {
		return
	}

	log.Printf("[LoadingScene] Loading complete, switching to main menu")
	s.sceneManager.SetMenuScene(s.next)
	if entering, ok := s.next.(game.Enterable); ok {
		entering.OnEnter()
	}
	s.sceneManager.SwitchTo(s.next)
}

func (s *LoadingScene) start() {
	s.started = true
	if len(s.names) == 0 || s.preloader == nil {
		s.done.Store(true)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	log.Printf("[LoadingScene] Preloading %d models", len(s.names))

	go func() {
		defer cancel()
		err := s.preloader.Preload(ctx, s.names, func(done, total int) {
			// 回调来自多个工作协程，只保留最大值
			for {
				cur := s.finished.Load()
				if int32(done) <= cur || s.finished.CompareAndSwap(cur, int32(done)) {
					break
				}
			}
		})
		if err != nil {
			// 预加载失败不阻止进入游戏：未加载的模型会在需要时再次请求
			log.Printf("[LoadingScene] Warning: preload failed: %v", err)
			s.loadErr.Store(err)
		}
		s.done.Store(true)
	}()
}

// Progress returns the loading progress in [0, 1].
func (s *LoadingScene) Progress() float64 {
	if s.done.Load() || len(s.names) == 0 {
		return 1
	}
	return float64(s.finished.Load()) / float64(len(s.names))
}

// Err returns the preload error, if any.
func (s *LoadingScene) Err() error {
	if err, ok := s.loadErr.Load().(error); ok {
		return err
	}
	return nil
}

// Draw renders the title, the progress bar and a status line.
func (s *LoadingScene) Draw(screen *ebiten.Image) {
	screen.Fill(skyColor)

	w := float32(config.GameWindowWidth)
	h := float32(config.GameWindowHeight)
	barX := (w - config.LoadingBarWidth) / 2
	barY := h/2 + 20

	ebitenutil.DebugPrintAt(screen, "HIGHWAY RUNNER", int(barX), int(barY)-60)

	vector.DrawFilledRect(screen, barX, barY, config.LoadingBarWidth, config.LoadingBarHeight, color.RGBA{40, 40, 48, 255}, false)
	vector.DrawFilledRect(screen, barX, barY, float32(s.Progress())*config.LoadingBarWidth, config.LoadingBarHeight, laneColor, false)
	vector.StrokeRect(screen, barX, barY, config.LoadingBarWidth, config.LoadingBarHeight, 1, color.White, false)

	status := fmt.Sprintf("Loading models %d/%d", s.finished.Load(), len(s.names))
	if s.done.Load() {
		status = "Ready"
		if s.Err() != nil {
			status = "Some models failed to load, retrying in game"
		}
	}
	ebitenutil.DebugPrintAt(screen, status, int(barX), int(barY+config.LoadingBarHeight)+8)
}
