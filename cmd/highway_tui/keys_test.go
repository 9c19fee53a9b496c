package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestActionFor(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want action
	}{
		{"左方向键", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), actLeft},
		{"右方向键", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), actRight},
		{"上方向键跳跃", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), actJump},
		{"空格跳跃", runeKey(' '), actJump},
		{"大写 D", runeKey('D'), actRight},
		{"护盾", runeKey('z'), actShield},
		{"位移", runeKey('k'), actReposition},
		{"暂停", runeKey('p'), actPause},
		{"重开", runeKey('r'), actRestart},
		{"结束 Boss", runeKey('b'), actEndBoss},
		{"演示", runeKey('m'), actDemo},
		{"Esc 退出", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), actQuit},
		{"未绑定", runeKey('?'), actNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := actionFor(tt.ev); got != tt.want {
				t.Errorf("actionFor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeyTrackerHoldTimeout(t *testing.T) {
	var k keyTracker
	start := time.Now()

	k.Handle(runeKey('a'), start)
	if in := k.Input(start.Add(50 * time.Millisecond)); !in.MoveLeft || in.MoveRight {
		t.Errorf("left should be held shortly after the key press, got %+v", in)
	}
	if in := k.Input(start.Add(holdTimeout + time.Millisecond)); in.MoveLeft {
		t.Error("left should be released after the hold timeout")
	}

	// 自动重复刷新按住时间
	k.Handle(runeKey('a'), start.Add(100*time.Millisecond))
	if in := k.Input(start.Add(200 * time.Millisecond)); !in.MoveLeft {
		t.Error("key repeat should extend the hold")
	}

	// 反方向立即取消另一侧
	k.Handle(runeKey('d'), start.Add(210*time.Millisecond))
	if in := k.Input(start.Add(220 * time.Millisecond)); in.MoveLeft || !in.MoveRight {
		t.Errorf("pressing right should cancel left, got %+v", in)
	}
}

func TestKeyTrackerOneShotActions(t *testing.T) {
	var k keyTracker
	now := time.Now()
	k.Handle(runeKey(' '), now)
	k.Handle(runeKey('z'), now)
	k.Handle(runeKey('x'), now)

	in := k.Input(now)
	if !in.Jump || !in.Shield || !in.Reposition {
		t.Fatalf("one-shot actions should be reported once, got %+v", in)
	}
	in = k.Input(now)
	if in.Jump || in.Shield || in.Reposition {
		t.Errorf("one-shot actions should clear after being read, got %+v", in)
	}
}
