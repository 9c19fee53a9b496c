package scenes

import (
	"github.com/decker502/highway/pkg/game"
	"github.com/decker502/highway/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// KeySource 键盘状态来源
// 场景默认读取 ebiten 的键盘状态，测试中替换为固定按键
type KeySource interface {
	IsPressed(key ebiten.Key) bool
	IsJustPressed(key ebiten.Key) bool
}

// ebitenKeys 读取 ebiten 的键盘状态
type ebitenKeys struct{}

func (ebitenKeys) IsPressed(key ebiten.Key) bool     { return ebiten.IsKeyPressed(key) }
func (ebitenKeys) IsJustPressed(key ebiten.Key) bool { return inpututil.IsKeyJustPressed(key) }

// PointerSource 返回本帧是否刚刚点击或触摸，以及位置
type PointerSource func() (bool, int, int)

// 按键映射
var (
	keysLeft       = []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}
	keysRight      = []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}
	keysJump       = []ebiten.Key{ebiten.KeySpace, ebiten.KeyArrowUp, ebiten.KeyW}
	keysShield     = []ebiten.Key{ebiten.KeyZ, ebiten.KeyJ}
	keysReposition = []ebiten.Key{ebiten.KeyX, ebiten.KeyK}
	keysConfirm    = []ebiten.Key{ebiten.KeyEnter, ebiten.KeyNumpadEnter, ebiten.KeySpace}
)

func anyPressed(keys KeySource, list []ebiten.Key) bool {
	for _, k := range list {
		if keys.IsPressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(keys KeySource, list []ebiten.Key) bool {
	for _, k := range list {
		if keys.IsJustPressed(k) {
			return true
		}
	}
	return false
}

// keyboardInput 把键盘状态转换为一帧的输入快照
// 移动键按住生效，动作键只在按下的那一帧生效
func keyboardInput(keys KeySource) game.InputState {
	return game.InputState{
		MoveLeft:   anyPressed(keys, keysLeft),
		MoveRight:  anyPressed(keys, keysRight),
		Jump:       anyJustPressed(keys, keysJump),
		Shield:     anyJustPressed(keys, keysShield),
		Reposition: anyJustPressed(keys, keysReposition),
	}
}

// defaultPointer 读取 ebiten 的鼠标与触摸状态
func defaultPointer() (bool, int, int) {
	return utils.IsJustTouchedOrClicked()
}

// sessionCommand 游戏场景中的控制键
type sessionCommand int

const (
	commandNone sessionCommand = iota
	commandPause
	commandRestart
	commandEndBoss
	commandMenu
	commandDebug
)

// readCommand 读取本帧按下的控制键，同一帧只处理一个
func readCommand(keys KeySource) sessionCommand {
	switch {
	case keys.IsJustPressed(ebiten.KeyP), keys.IsJustPressed(ebiten.KeyEscape):
		return commandPause
	case keys.IsJustPressed(ebiten.KeyR):
		return commandRestart
	case keys.IsJustPressed(ebiten.KeyB):
		return commandEndBoss
	case keys.IsJustPressed(ebiten.KeyM):
		return commandMenu
	case keys.IsJustPressed(ebiten.KeyF3):
		return commandDebug
	default:
		return commandNone
	}
}
