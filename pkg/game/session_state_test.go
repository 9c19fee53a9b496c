package game

import (
	"testing"

	"github.com/decker502/highway/pkg/config"
)

func TestSessionState_Reset(t *testing.T) {
	cfg := config.DefaultTuning()
	s := NewSessionState()
	s.Reset(cfg)

	if !s.Active || s.Paused || s.Over {
		t.Errorf("Fresh session flags wrong: active=%v paused=%v over=%v", s.Active, s.Paused, s.Over)
	}
	if s.Mode != ModeNormal {
		t.Errorf("Expected ModeNormal, got %s", s.Mode)
	}
	if s.RunID == "" {
		t.Error("Reset should assign a RunID")
	}
	if s.Speed != cfg.Speed.Initial || s.Health != cfg.Player.MaxHealth {
		t.Errorf("Unexpected initial speed=%.1f health=%d", s.Speed, s.Health)
	}
	if s.ObstacleTimer.TargetTime != cfg.Obstacle.SpawnInterval {
		t.Errorf("Obstacle timer target %.1f, want %.1f", s.ObstacleTimer.TargetTime, cfg.Obstacle.SpawnInterval)
	}

	// 再次 Reset 清空上一局的计分并换新的 RunID
	firstRun := s.RunID
	s.AddDistance(100, 1)
	s.AddBonus(50)
	s.BossCompleted = true
	s.Reset(cfg)
	if s.Score != 0 || s.Distance != 0 || s.Bonus != 0 || s.BossCompleted {
		t.Errorf("Reset should clear progress, got score=%d distance=%.1f", s.Score, s.Distance)
	}
	if s.RunID == firstRun {
		t.Error("Each reset should produce a new RunID")
	}
}

func TestSessionState_ScoreMonotonic(t *testing.T) {
	s := NewSessionState()
	s.Reset(config.DefaultTuning())

	prev := 0
	steps := []struct {
		distance float64
		bonus    int
	}{
		{0.4, 0},
		{0.4, 0},
		{10, 100},
		{-5, 0},  // 负距离被忽略
		{0, -10}, // 负奖励被忽略
		{2.5, 0},
	}
	for i, step := range steps {
		s.AddDistance(step.distance, 1)
		s.AddBonus(step.bonus)
		if s.Score < prev {
			t.Fatalf("step %d: score decreased from %d to %d", i, prev, s.Score)
		}
		prev = s.Score
	}
	if s.Distance < 13.29 || s.Distance > 13.31 {
		t.Errorf("Expected distance 13.3, got %.3f", s.Distance)
	}
	if s.Score != 113 {
		t.Errorf("Expected score floor(13.3)+100 = 113, got %d", s.Score)
	}
}

func TestSessionState_Teardown(t *testing.T) {
	s := NewSessionState()
	s.Reset(config.DefaultTuning())
	s.ObstacleTimer.CurrentTime = 3
	s.BossFireTimer.IsReady = true
	s.BossPending = true
	s.AddDistance(42, 1)

	s.Teardown()

	if s.Active || s.Running() {
		t.Error("Torn-down session must not be running")
	}
	for _, timer := range s.Timers() {
		if timer.CurrentTime != 0 || timer.IsReady {
			t.Errorf("Timer %s not reset: %+v", timer.Name, timer)
		}
	}
	if s.BossPending {
		t.Error("Pending boss load should be dropped")
	}
	// 结算仍需要分数
	if s.Score != 42 {
		t.Errorf("Teardown should keep score for the summary, got %d", s.Score)
	}
}

func TestSessionState_TeardownBeforeReset(t *testing.T) {
	s := NewSessionState()
	s.Teardown() // 计时器尚未创建，不应 panic
	if s.Running() {
		t.Error("Unstarted session should not run")
	}
}

func TestMode_String(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeNormal, "normal"},
		{ModeBoss, "boss"},
		{Mode(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("Mode(%d).String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestInputState_Axis(t *testing.T) {
	tests := []struct {
		name string
		in   InputState
		want float64
	}{
		{"idle", InputState{}, 0},
		{"left key", InputState{MoveLeft: true}, -1},
		{"right key", InputState{MoveRight: true}, 1},
		{"both keys cancel", InputState{MoveLeft: true, MoveRight: true}, 0},
		{"joystick wins", InputState{MoveLeft: true, LateralAxis: 0.5}, 0.5},
		{"joystick clamped", InputState{LateralAxis: -3}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Axis(); got != tt.want {
				t.Errorf("Axis() = %v, want %v", got, tt.want)
			}
		})
	}
}
