package scenes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/decker502/highway/pkg/config"
	"github.com/decker502/highway/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

// recordingPreloader 同步完成预加载并逐个报告进度
type recordingPreloader struct {
	err   error
	names []string
}

func (p *recordingPreloader) Preload(ctx context.Context, names []string, progress func(done, total int)) error {
	p.names = names
	for i := range names {
		progress(i+1, len(names))
	}
	return p.err
}

func waitForScene(t *testing.T, sm *game.SceneManager, scene game.Scene, update func()) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for sm.GetCurrentScene() != scene {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for scene switch")
		}
		update()
		time.Sleep(time.Millisecond)
	}
}

func TestLoadingSceneSwitchesToMenu(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{"全部加载成功", nil, false},
		{"加载失败仍进入菜单", errors.New("boom"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := game.NewSceneManager()
			menu := &stubScene{}
			preloader := &recordingPreloader{err: tt.err}
			loading := NewLoadingScene(preloader, sm, menu, []string{"car", "character"})
			sm.SwitchTo(loading)

			waitForScene(t, sm, menu, func() { sm.Update(frame) })

			if len(preloader.names) != 2 {
				t.Errorf("expected both models to be preloaded, got %v", preloader.names)
			}
			if loading.Progress() != 1 {
				t.Errorf("Progress() = %.2f, want 1", loading.Progress())
			}
			if (loading.Err() != nil) != tt.wantErr {
				t.Errorf("Err() = %v, wantErr %v", loading.Err(), tt.wantErr)
			}
			if !sm.ReturnToMenu() {
				t.Error("loading scene should register the menu scene")
			}
		})
	}
}

func TestLoadingSceneWithoutModels(t *testing.T) {
	sm := game.NewSceneManager()
	menu := &stubScene{}
	loading := NewLoadingScene(nil, sm, menu, nil)
	sm.SwitchTo(loading)

	// 没有模型时立即完成，停留 LoadingFinishDelay 后切换
	frames := int(config.LoadingFinishDelay/frame) + 2
	for i := 0; i < frames; i++ {
		sm.Update(frame)
	}
	if sm.GetCurrentScene() != menu {
		t.Error("loading scene should switch to the menu once the delay elapses")
	}
}

func newTestMenu(profiles []string, defaultProfile string) (*MainMenuScene, *game.SceneManager, *[]string) {
	sm := game.NewSceneManager()
	var started []string
	sm.SetSceneFactory(func(profile string) game.Scene {
		started = append(started, profile)
		return &stubScene{}
	})
	menu := NewMainMenuScene(sm, nil, nil, profiles, defaultProfile)
	menu.pointer = noPointer
	return menu, sm, &started
}

func TestMainMenuProfileSelection(t *testing.T) {
	menu, _, _ := newTestMenu([]string{"classic", "demov2", "highway"}, "highway")
	keys := newFakeKeys()
	menu.keys = keys

	if got := menu.SelectedProfile(); got != "highway" {
		t.Fatalf("initial profile = %q, want highway", got)
	}

	steps := []struct {
		key  ebiten.Key
		want string
	}{
		{ebiten.KeyArrowRight, "classic"}, // 末尾向右回到开头
		{ebiten.KeyArrowRight, "demov2"},
		{ebiten.KeyA, "classic"},
		{ebiten.KeyArrowLeft, "highway"}, // 开头向左回到末尾
	}
	for _, step := range steps {
		keys.tap(step.key)
		menu.Update(frame)
		keys.release()
		if got := menu.SelectedProfile(); got != step.want {
			t.Errorf("after %v selected %q, want %q", step.key, got, step.want)
		}
	}
}

func TestMainMenuStartsRun(t *testing.T) {
	menu, sm, started := newTestMenu([]string{"demov2", "highway"}, "highway")
	keys := newFakeKeys()
	menu.keys = keys
	sm.SwitchTo(menu)

	menu.Update(frame)
	if len(*started) != 0 {
		t.Fatal("menu should not start a run without input")
	}

	keys.tap(ebiten.KeyEnter)
	menu.Update(frame)
	if len(*started) != 1 || (*started)[0] != "highway" {
		t.Errorf("expected run with profile highway, got %v", *started)
	}
	if sm.GetCurrentScene() == menu {
		t.Error("starting a run should switch scenes")
	}
}

func TestMainMenuShowsHighScore(t *testing.T) {
	store := game.NewHighScoreStoreOn(nil)
	menu := NewMainMenuScene(nil, store, nil, nil, "")
	if menu.SelectedProfile() != "" {
		t.Errorf("no profiles should select the default, got %q", menu.SelectedProfile())
	}

	if _, err := store.Commit(4200, "run"); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	menu.OnEnter()
	if menu.lines()[1] != "High score: 4200" {
		t.Errorf("menu should show refreshed high score, got %q", menu.lines()[1])
	}
}

func newTestGameScene(t *testing.T, cfg *config.TuningConfig) (*GameScene, *fakeKeys, *game.HighScoreStore) {
	t.Helper()
	if cfg == nil {
		cfg = config.DefaultTuning()
		cfg.Obstacle.SpawnChance = 0
		cfg.PowerUp.SpawnChance = 0
	}
	store := game.NewHighScoreStoreOn(nil)
	sm := game.NewSceneManager()
	scene, err := NewGameScene(mapLoader{}, sm, store, nil, cfg)
	if err != nil {
		t.Fatalf("NewGameScene failed: %v", err)
	}
	keys := newFakeKeys()
	scene.keys = keys
	scene.pointer = noPointer
	scene.touchDetect = nil
	sm.SwitchTo(scene)
	return scene, keys, store
}

func TestGameSceneRunsAndRenders(t *testing.T) {
	scene, keys, _ := newTestGameScene(t, nil)

	for i := 0; i < 30; i++ {
		scene.Update(frame)
	}
	if scene.view == nil || len(scene.view.Entities) == 0 {
		t.Fatal("game scene should receive a render snapshot every tick")
	}
	if scene.HUD().Stats().Distance <= 0 {
		t.Error("HUD should receive stats while the run progresses")
	}

	// 按住右键，玩家向右移动
	keys.pressed[ebiten.KeyArrowRight] = true
	for i := 0; i < 30; i++ {
		scene.Update(frame)
	}
	keys.release()

	var playerX float64
	for _, e := range scene.view.Entities {
		if e.Kind == game.KindPlayer {
			playerX = e.Pos.X()
		}
	}
	if playerX <= 0 {
		t.Errorf("holding right should move the player right, x=%.2f", playerX)
	}
}

func TestGameSceneCommands(t *testing.T) {
	scene, keys, store := newTestGameScene(t, nil)
	scene.Update(frame)

	keys.tap(ebiten.KeyP)
	scene.Update(frame)
	keys.release()
	if !scene.Runner().Session().Paused {
		t.Fatal("P should pause the run")
	}
	distance := scene.Runner().Session().Distance
	scene.Update(frame)
	if scene.Runner().Session().Distance != distance {
		t.Error("paused run should not advance")
	}

	keys.tap(ebiten.KeyP)
	scene.Update(frame)
	keys.release()
	if scene.Runner().Session().Paused {
		t.Fatal("P again should resume the run")
	}

	oldRun := scene.Runner().Session().RunID
	keys.tap(ebiten.KeyR)
	scene.Update(frame)
	keys.release()
	if scene.Runner().Session().RunID == oldRun {
		t.Error("R should start a new run")
	}

	keys.tap(ebiten.KeyF3)
	scene.Update(frame)
	keys.release()
	if !scene.world.ShowDebug {
		t.Error("F3 should toggle debug drawing")
	}

	scene.Runner().Session().AddBonus(3000)
	if !scene.SaveOnExit() {
		t.Error("SaveOnExit should succeed with an in-memory store")
	}
	if store.HighScore() < 3000 {
		t.Errorf("SaveOnExit should commit the running score, high score=%d", store.HighScore())
	}
	if scene.Runner().Session().Active {
		t.Error("SaveOnExit should end the run")
	}
}

func TestGameSceneMenuCommand(t *testing.T) {
	scene, keys, _ := newTestGameScene(t, nil)
	menu := &stubScene{}
	scene.sceneManager.SetMenuScene(menu)
	scene.Update(frame)

	keys.tap(ebiten.KeyM)
	scene.Update(frame)
	keys.release()

	if scene.sceneManager.GetCurrentScene() != menu {
		t.Error("M should return to the main menu")
	}
	if scene.Runner().Session().Active {
		t.Error("leaving for the menu should end the run")
	}
}
