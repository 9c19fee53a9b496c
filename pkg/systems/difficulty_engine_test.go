package systems

import (
	"testing"

	"github.com/decker502/highway/pkg/config"
)

func newTestDifficulty() *DifficultyEngine {
	return NewDifficultyEngine(config.ObstacleConfig{
		DifficultyMilestone: 100,
		DifficultyFactor:    0.5,
		MinSpawnInterval:    1.5,
	})
}

func TestDifficultyEngine_MilestonesCrossed(t *testing.T) {
	d := newTestDifficulty()

	tests := []struct {
		name      string
		distance  float64
		next      float64
		wantSteps int
		wantNext  float64
	}{
		{"未到里程碑", 99, 100, 0, 100},
		{"恰好到达", 100, 100, 1, 200},
		{"一次跨过多个", 450, 100, 4, 500},
		{"已处理过", 150, 200, 0, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps, next := d.MilestonesCrossed(tt.distance, tt.next)
			if steps != tt.wantSteps || next != tt.wantNext {
				t.Errorf("MilestonesCrossed(%.0f, %.0f) = %d, %.0f, want %d, %.0f",
					tt.distance, tt.next, steps, next, tt.wantSteps, tt.wantNext)
			}
		})
	}
}

func TestDifficultyEngine_NextInterval(t *testing.T) {
	d := newTestDifficulty()

	tests := []struct {
		name     string
		interval float64
		steps    int
		want     float64
	}{
		{"不变", 4, 0, 4},
		{"一次", 4, 1, 2},
		{"下限", 4, 3, 1.5},
		{"已在下限", 1.5, 2, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.NextInterval(tt.interval, tt.steps); got != tt.want {
				t.Errorf("NextInterval(%.2f, %d) = %.2f, want %.2f", tt.interval, tt.steps, got, tt.want)
			}
		})
	}
}

func TestDifficultyEngine_Disabled(t *testing.T) {
	d := NewDifficultyEngine(config.ObstacleConfig{})
	if d.Enabled() {
		t.Fatal("zero milestone should disable difficulty scaling")
	}
	if steps, next := d.MilestonesCrossed(1e6, 0); steps != 0 || next != 0 {
		t.Errorf("disabled engine should not cross milestones, got %d, %.0f", steps, next)
	}
}
