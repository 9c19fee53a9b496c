package scenes

import (
	"fmt"

	"github.com/decker502/highway/pkg/config"
	"github.com/decker502/highway/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

const frame = 1.0 / 60

var testModels = map[string]*config.ModelDescriptor{
	"character": {Name: "character", Size: config.Vec3Config{X: 1, Y: 2, Z: 1}, Scale: 1},
	"car":       {Name: "car", Size: config.Vec3Config{X: 2, Y: 1, Z: 4}, Scale: 1},
	"shield":    {Name: "shield", Size: config.Vec3Config{X: 1, Y: 1, Z: 1}, Scale: 1},
	"bitcoin":   {Name: "bitcoin", Size: config.Vec3Config{X: 1, Y: 1, Z: 1}, Scale: 1},
	"potion":    {Name: "potion", Size: config.Vec3Config{X: 1, Y: 1, Z: 1}, Scale: 1},
	"boss":      {Name: "boss", Size: config.Vec3Config{X: 4, Y: 4, Z: 3}, Scale: 1},
}

// mapLoader 同步返回内置模型
type mapLoader struct{}

func (mapLoader) LoadModel(name string) *game.LoadHandle {
	desc, ok := testModels[name]
	if !ok {
		return game.FailedHandle(name, fmt.Errorf("model %s unavailable", name))
	}
	return game.ResolvedHandle(desc)
}

// fakeKeys 固定的键盘状态，每次 Update 后调用 release 清除单帧按键
type fakeKeys struct {
	pressed map[ebiten.Key]bool
	just    map[ebiten.Key]bool
}

func newFakeKeys() *fakeKeys {
	return &fakeKeys{pressed: map[ebiten.Key]bool{}, just: map[ebiten.Key]bool{}}
}

func (k *fakeKeys) IsPressed(key ebiten.Key) bool     { return k.pressed[key] }
func (k *fakeKeys) IsJustPressed(key ebiten.Key) bool { return k.just[key] }

func (k *fakeKeys) tap(key ebiten.Key) {
	k.just[key] = true
	k.pressed[key] = true
}

func (k *fakeKeys) release() {
	k.just = map[ebiten.Key]bool{}
	k.pressed = map[ebiten.Key]bool{}
}

func noPointer() (bool, int, int) { return false, 0, 0 }

// stubScene 记录 Update 调用
type stubScene struct {
	updates int
}

func (s *stubScene) Update(deltaTime float64) { s.updates++ }
func (s *stubScene) Draw(*ebiten.Image)       {}
