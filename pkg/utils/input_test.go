package utils

import (
	"image"
	"math"
	"testing"
)

func TestDragManagerInitialState(t *testing.T) {
	dm := NewDragManager(image.Rectangle{})

	if dm.GetState() != DragStateNone {
		t.Errorf("Expected initial state to be DragStateNone, got %v", dm.GetState())
	}
	if dm.IsActive() {
		t.Error("Expected IsActive to be false initially")
	}
	if dm.GetInfo().TouchID != -1 {
		t.Errorf("Expected TouchID to be -1 initially, got %d", dm.GetInfo().TouchID)
	}
}

func TestDragManagerReset(t *testing.T) {
	dm := NewDragManager(image.Rectangle{})

	dm.info.State = DragStateDragging
	dm.info.StartX = 100
	dm.info.StartY = 200
	dm.info.CurrentX = 150
	dm.info.CurrentY = 250

	dm.Reset()

	if dm.GetState() != DragStateNone {
		t.Errorf("Expected state to be DragStateNone after reset, got %v", dm.GetState())
	}
	info := dm.GetInfo()
	if info.StartX != 0 || info.StartY != 0 || info.CurrentX != 0 || info.CurrentY != 0 {
		t.Errorf("Expected positions to be cleared after reset, got %+v", info)
	}
	if info.TouchID != -1 {
		t.Errorf("Expected TouchID to be -1 after reset, got %d", info.TouchID)
	}
}

func TestDragManagerGetDragDistance(t *testing.T) {
	dm := NewDragManager(image.Rectangle{})

	dm.info.StartX = 100
	dm.info.StartY = 200
	dm.info.CurrentX = 150
	dm.info.CurrentY = 280

	dx, dy := dm.GetDragDistance()
	if dx != 50 || dy != 80 {
		t.Errorf("Expected distance (50, 80), got (%d, %d)", dx, dy)
	}
}

func TestDragManagerAccepts(t *testing.T) {
	area := image.Rect(0, 400, 200, 600)

	tests := []struct {
		name string
		area image.Rectangle
		x, y int
		want bool
	}{
		{"区域内", area, 100, 500, true},
		{"区域外", area, 500, 500, false},
		{"右下边界不包含", area, 200, 600, false},
		{"空区域接收任意位置", image.Rectangle{}, 700, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dm := NewDragManager(tt.area)
			if got := dm.accepts(tt.x, tt.y); got != tt.want {
				t.Errorf("accepts(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestJoystickAxis(t *testing.T) {
	tests := []struct {
		name     string
		dx       float64
		radius   float64
		deadZone float64
		want     float64
	}{
		{"无偏移", 0, 60, 0.15, 0},
		{"死区内", 6, 60, 0.15, 0},
		{"满偏右", 60, 60, 0.15, 1},
		{"超出半径截断", 200, 60, 0.15, 1},
		{"满偏左", -60, 60, 0.15, -1},
		{"无死区时线性", 30, 60, 0, 0.5},
		{"死区外重新映射", 35, 70, 0.5, 0},
		{"半径无效", 30, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JoystickAxis(tt.dx, tt.radius, tt.deadZone)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("JoystickAxis(%.0f, %.0f, %.2f) = %.4f, want %.4f", tt.dx, tt.radius, tt.deadZone, got, tt.want)
			}
		})
	}
}

func TestJoystickAxisFollowsDrag(t *testing.T) {
	js := NewJoystick(image.Rect(0, 0, 200, 200), 50, 0)

	if js.Axis() != 0 {
		t.Errorf("idle joystick should report 0, got %.2f", js.Axis())
	}

	drag := js.Drag()
	drag.info = DragInfo{State: DragStateDragging, StartX: 100, CurrentX: 75, TouchID: -1}
	if got := js.Axis(); math.Abs(got+0.5) > 1e-9 {
		t.Errorf("dragging 25px left of a 50px joystick should give -0.5, got %.2f", got)
	}

	drag.info.State = DragStateEnded
	if js.Axis() != 0 {
		t.Errorf("released joystick should report 0, got %.2f", js.Axis())
	}
}
