package systems

import (
	"math"
	"testing"

	"github.com/decker502/highway/pkg/game"
)

func TestPlayerMovementSystem_LateralClamp(t *testing.T) {
	cfg := testTuning()
	em, session := newTestSession(t, cfg)
	system := NewPlayerMovementSystem(em, cfg, session)
	pos := playerPos(t, em, session)

	tests := []struct {
		name  string
		input game.InputState
		dt    float64
		wantX float64
	}{
		{"右键", game.InputState{MoveRight: true}, 0.1, cfg.Player.LateralSpeed * 0.1},
		{"左键回到中间", game.InputState{MoveLeft: true}, 0.1, 0},
		{"摇杆半幅", game.InputState{LateralAxis: -0.5}, 0.1, -cfg.Player.LateralSpeed * 0.05},
		{"长时间按住被限制在边界", game.InputState{MoveRight: true}, 10, cfg.Player.LateralLimit},
		{"反向越界", game.InputState{LateralAxis: -1}, 10, -cfg.Player.LateralLimit},
	}

	for _, tt := range tests {
		system.Update(tt.dt, tt.input)
		if math.Abs(pos.Pos.X()-tt.wantX) > 1e-9 {
			t.Errorf("%s: expected x=%.3f, got %.3f", tt.name, tt.wantX, pos.Pos.X())
		}
	}
}

func TestPlayerMovementSystem_JumpArc(t *testing.T) {
	cfg := testTuning()
	em, session := newTestSession(t, cfg)
	ability := NewAbilitySystem(em, cfg, session, newTestRng())
	system := NewPlayerMovementSystem(em, cfg, session)
	pos := playerPos(t, em, session)

	ability.Jump()

	half := cfg.Player.JumpDuration / 2
	system.Update(half, game.InputState{})
	if math.Abs(pos.Pos.Y()-cfg.Player.JumpHeight) > 1e-9 {
		t.Errorf("Expected apex %.2f at half duration, got %.3f", cfg.Player.JumpHeight, pos.Pos.Y())
	}
	if !Airborne(em, cfg, session.PlayerEntity) {
		t.Error("Player at apex should be airborne")
	}

	system.Update(half, game.InputState{})
	if pos.Pos.Y() != cfg.Player.StartPosition.Y {
		t.Errorf("Expected landing at ground height, got %.3f", pos.Pos.Y())
	}
	if playerComp(t, em, session).Jumping {
		t.Error("Jump should finish after its duration")
	}
	if Airborne(em, cfg, session.PlayerEntity) {
		t.Error("Landed player should not be airborne")
	}
}
