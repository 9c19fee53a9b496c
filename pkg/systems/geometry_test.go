package systems

import (
	"math"
	"testing"

	"github.com/decker502/highway/pkg/components"
	"github.com/decker502/highway/pkg/ecs"
	"github.com/go-gl/mathgl/mgl64"
)

func TestAABBIntersects(t *testing.T) {
	unit := mgl64.Vec3{1, 1, 1}
	tests := []struct {
		name string
		a, b Box
		want bool
	}{
		{"重叠", Box{mgl64.Vec3{0, 0, 0}, unit}, Box{mgl64.Vec3{0.5, 0.5, 0.5}, unit}, true},
		{"包含", Box{mgl64.Vec3{0, 0, 0}, mgl64.Vec3{4, 4, 4}}, Box{mgl64.Vec3{0, 0, 0}, unit}, true},
		{"X分离", Box{mgl64.Vec3{0, 0, 0}, unit}, Box{mgl64.Vec3{2, 0, 0}, unit}, false},
		{"仅高度分离", Box{mgl64.Vec3{0, 0, 0}, unit}, Box{mgl64.Vec3{0, 3, 0}, unit}, false},
		{"边界接触不算相交", Box{mgl64.Vec3{0, 0, 0}, unit}, Box{mgl64.Vec3{1, 0, 0}, unit}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AABBIntersects(tt.a, tt.b); got != tt.want {
				t.Errorf("AABBIntersects() = %v, want %v", got, tt.want)
			}
			if got := AABBIntersects(tt.b, tt.a); got != tt.want {
				t.Errorf("AABBIntersects() should be symmetric, got %v", got)
			}
		})
	}
}

func TestFootprintIntersectsIgnoresHeight(t *testing.T) {
	ground := Box{mgl64.Vec3{0, 0.5, 0}, mgl64.Vec3{2, 1, 4}}
	high := Box{mgl64.Vec3{0, 10, 0}, mgl64.Vec3{1, 1, 1}}

	if AABBIntersects(ground, high) {
		t.Fatal("Boxes separated in height should not intersect in 3D")
	}
	if !FootprintIntersects(ground, high) {
		t.Error("Footprints overlapping on the road plane should intersect")
	}

	aside := Box{mgl64.Vec3{5, 0.5, 0}, mgl64.Vec3{1, 1, 1}}
	if FootprintIntersects(ground, aside) {
		t.Error("Laterally separated footprints should not intersect")
	}
}

func TestSegmentPointDistance(t *testing.T) {
	a := mgl64.Vec3{0, 0, -10}
	b := mgl64.Vec3{0, 0, 10}

	tests := []struct {
		name string
		a, b mgl64.Vec3
		p    mgl64.Vec3
		want float64
	}{
		{"垂足在线段内", a, b, mgl64.Vec3{3, 0, 0}, 3},
		{"超出终点", a, b, mgl64.Vec3{0, 0, 14}, 4},
		{"超出起点", a, b, mgl64.Vec3{0, 4, -13}, 5},
		{"退化为点", a, a, mgl64.Vec3{0, 0, -7}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SegmentPointDistance(tt.a, tt.b, tt.p)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("SegmentPointDistance() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWorldBoxAppliesScaleAndOffset(t *testing.T) {
	em := ecs.NewEntityManager()
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{Pos: mgl64.Vec3{1, 0, -5}})
	ecs.AddComponent(em, id, &components.CollisionComponent{
		Size:   mgl64.Vec3{2, 2, 2},
		Offset: mgl64.Vec3{0, 1, 0},
	})
	ecs.AddComponent(em, id, &components.ScaleComponent{Factor: 1.5, Base: 1})

	box, ok := WorldBox(em, id)
	if !ok {
		t.Fatal("WorldBox should succeed for an entity with position and collision")
	}
	if !vecNear(box.Center, mgl64.Vec3{1, 1.5, -5}) {
		t.Errorf("Expected center (1, 1.5, -5), got %v", box.Center)
	}
	if !vecNear(box.Size, mgl64.Vec3{3, 3, 3}) {
		t.Errorf("Expected size (3, 3, 3), got %v", box.Size)
	}

	if _, ok := WorldBox(em, em.CreateEntity()); ok {
		t.Error("WorldBox should fail for an entity without components")
	}
}

func TestAdvanceTimer(t *testing.T) {
	timer := &components.TimerComponent{Name: "test", TargetTime: 1}

	if advanceTimer(timer, 0.6) {
		t.Fatal("Timer should not fire before its target")
	}
	if !advanceTimer(timer, 0.6) {
		t.Fatal("Timer should fire once the target is reached")
	}
	if math.Abs(timer.CurrentTime-0.2) > 1e-9 {
		t.Errorf("Expected remainder 0.2 carried over, got %v", timer.CurrentTime)
	}

	// 长时间卡顿只触发一次
	if !advanceTimer(timer, 5) {
		t.Fatal("Timer should fire after a stall")
	}
	if timer.CurrentTime != 0 {
		t.Errorf("Expected stalled timer to restart from 0, got %v", timer.CurrentTime)
	}

	resetTimer(timer)
	if timer.CurrentTime != 0 || timer.IsReady {
		t.Error("resetTimer should clear progress and ready flag")
	}

	if advanceTimer(nil, 1) {
		t.Error("nil timer should never fire")
	}
	if advanceTimer(&components.TimerComponent{}, 1) {
		t.Error("timer without target should never fire")
	}
}
