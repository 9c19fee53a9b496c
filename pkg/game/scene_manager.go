package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 用于按调参档案创建跑酷场景，避免 game 与 scenes 之间的循环依赖
type SceneFactory func(profile string) Scene

// SceneManager manages the game's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory // 场景工厂函数，用于创建新场景
	menuScene    Scene        // 主菜单，ReturnToMenu 时切回
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{
		currentScene: nil,
		sceneFactory: nil,
	}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SetMenuScene 设置主菜单场景
func (sm *SceneManager) SetMenuScene(scene Scene) {
	sm.menuScene = scene
}

// ReturnToMenu 切回主菜单；未设置主菜单时保持当前场景
// 返回是否切换成功
func (sm *SceneManager) ReturnToMenu() bool {
	if sm.menuScene == nil {
		log.Printf("[SceneManager] Warning: ReturnToMenu ignored, no menu scene")
		return false
	}
	if entering, ok := sm.menuScene.(Enterable); ok {
		entering.OnEnter()
	}
	sm.SwitchTo(sm.menuScene)
	return true
}

// SwitchTo changes the active scene to the provided scene.
// The new scene's Update and Draw methods will be called on subsequent game loop iterations.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景
//
// 用于游戏关闭时检查当前场景是否需要保存状态
//
// 返回：
//   - Scene: 当前场景，如果没有活动场景则返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// StartRun 按指定调参档案开始一局新游戏
// profile: 档案名，如 "highway"、"demov2"；空字符串使用默认档案
func (sm *SceneManager) StartRun(profile string) {
	log.Printf("[SceneManager] 开始新一局: profile=%q", profile)

	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] 错误: SceneFactory 未设置")
		return
	}

	// 使用工厂函数创建新场景
	newScene := sm.sceneFactory(profile)
	if newScene != nil {
		sm.SwitchTo(newScene)
		log.Printf("[SceneManager] 成功切换到跑酷场景: profile=%q", profile)
	} else {
		log.Printf("[SceneManager] 错误: 无法创建跑酷场景: profile=%q", profile)
	}
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
// deltaTime is the time elapsed since the last update in seconds.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
