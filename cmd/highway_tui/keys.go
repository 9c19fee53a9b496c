package main

import (
	"time"

	"github.com/decker502/highway/pkg/game"
	"github.com/gdamore/tcell/v2"
)

// 终端没有"松开按键"事件：方向键在最近一次按下（或自动重复）后的
// holdTimeout 内视为仍被按住
const holdTimeout = 150 * time.Millisecond

// action 终端按键对应的动作
type action int

const (
	actNone action = iota
	actLeft
	actRight
	actJump
	actShield
	actReposition
	actPause
	actRestart
	actEndBoss
	actDemo
	actQuit
)

// actionFor 按键映射，与 ebiten 场景保持一致
func actionFor(ev *tcell.EventKey) action {
	switch ev.Key() {
	case tcell.KeyLeft:
		return actLeft
	case tcell.KeyRight:
		return actRight
	case tcell.KeyUp:
		return actJump
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A':
			return actLeft
		case 'd', 'D':
			return actRight
		case ' ', 'w', 'W':
			return actJump
		case 'z', 'Z', 'j', 'J':
			return actShield
		case 'x', 'X', 'k', 'K':
			return actReposition
		case 'p', 'P':
			return actPause
		case 'r', 'R':
			return actRestart
		case 'b', 'B':
			return actEndBoss
		case 'm', 'M':
			return actDemo
		case 'q', 'Q':
			return actQuit
		}
	}
	return actNone
}

// keyTracker 把终端按键事件转换为每帧的 InputState
type keyTracker struct {
	lastLeft  time.Time
	lastRight time.Time

	jump       bool
	shield     bool
	reposition bool
}

// Handle 记录一个按键事件，返回对应的动作
// 控制类动作（暂停、重开等）由调用方立即处理
func (k *keyTracker) Handle(ev *tcell.EventKey, now time.Time) action {
	act := actionFor(ev)
	switch act {
	case actLeft:
		k.lastLeft = now
		k.lastRight = time.Time{}
	case actRight:
		k.lastRight = now
		k.lastLeft = time.Time{}
	case actJump:
		k.jump = true
	case actShield:
		k.shield = true
	case actReposition:
		k.reposition = true
	}
	return act
}

// Input 返回本帧输入，并清除单次动作
func (k *keyTracker) Input(now time.Time) game.InputState {
	in := game.InputState{
		MoveLeft:   !k.lastLeft.IsZero() && now.Sub(k.lastLeft) < holdTimeout,
		MoveRight:  !k.lastRight.IsZero() && now.Sub(k.lastRight) < holdTimeout,
		Jump:       k.jump,
		Shield:     k.shield,
		Reposition: k.reposition,
	}
	k.jump, k.shield, k.reposition = false, false, false
	return in
}
