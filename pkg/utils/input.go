package utils

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// IsJustTouchedOrClicked 检查是否刚刚发生点击或触摸
// 返回是否点击以及点击位置
func IsJustTouchedOrClicked() (bool, int, int) {
	// 检查触摸
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	// 检查鼠标
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// IsTouchDevice 检测当前是否为触摸设备
// 通过检查是否有活动的触摸来判断
func IsTouchDevice() bool {
	return len(ebiten.AppendTouchIDs(nil)) > 0
}

// ============================================================================
// 拖拽状态管理器 - 用于触摸摇杆
// ============================================================================

// DragState 拖拽状态
type DragState int

const (
	// DragStateNone 无拖拽
	DragStateNone DragState = iota
	// DragStateStarted 拖拽开始（刚按下）
	DragStateStarted
	// DragStateDragging 拖拽中（按住移动）
	DragStateDragging
	// DragStateEnded 拖拽结束（释放）
	DragStateEnded
)

// DragInfo 拖拽信息
type DragInfo struct {
	// State 当前拖拽状态
	State DragState
	// StartX, StartY 拖拽起始位置（屏幕坐标）
	StartX, StartY int
	// CurrentX, CurrentY 当前位置（屏幕坐标）
	CurrentX, CurrentY int
	// TouchID 当前跟踪的触摸ID（-1 表示鼠标）
	TouchID ebiten.TouchID
	// IsTouchInput 是否为触摸输入（区分触摸和鼠标）
	IsTouchInput bool
}

// DragManager 拖拽管理器
// 跟踪单个触摸/鼠标的拖拽状态；只有起点落在 Area 内的拖拽才会被接收
type DragManager struct {
	Area image.Rectangle // 为空时接收任意位置的拖拽

	info DragInfo
}

// NewDragManager 创建拖拽管理器
func NewDragManager(area image.Rectangle) *DragManager {
	return &DragManager{
		Area: area,
		info: DragInfo{State: DragStateNone, TouchID: -1},
	}
}

// Update 更新拖拽状态（每帧调用一次）
func (dm *DragManager) Update() {
	currentTouchIDs := ebiten.AppendTouchIDs(nil)

	switch dm.info.State {
	case DragStateNone:
		dm.checkDragStart()

	case DragStateStarted:
		dm.info.State = DragStateDragging
		dm.updateCurrentPosition(currentTouchIDs)

	case DragStateDragging:
		if dm.checkDragEnd(currentTouchIDs) {
			dm.info.State = DragStateEnded
		} else {
			dm.updateCurrentPosition(currentTouchIDs)
		}

	case DragStateEnded:
		// 结束状态只持续一帧，下一帧重置
		dm.Reset()
	}
}

// accepts 起点是否在接收区域内
func (dm *DragManager) accepts(x, y int) bool {
	if dm.Area.Empty() {
		return true
	}
	return image.Pt(x, y).In(dm.Area)
}

// checkDragStart 检测拖拽开始，优先检测触摸输入
func (dm *DragManager) checkDragStart() {
	for _, touchID := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(touchID)
		if !dm.accepts(x, y) {
			continue
		}
		dm.begin(x, y, touchID, true)
		return
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if dm.accepts(x, y) {
			dm.begin(x, y, -1, false)
		}
	}
}

func (dm *DragManager) begin(x, y int, touchID ebiten.TouchID, touch bool) {
	dm.info = DragInfo{
		State:        DragStateStarted,
		StartX:       x,
		StartY:       y,
		CurrentX:     x,
		CurrentY:     y,
		TouchID:      touchID,
		IsTouchInput: touch,
	}
}

// checkDragEnd 检测拖拽结束
func (dm *DragManager) checkDragEnd(currentTouchIDs []ebiten.TouchID) bool {
	if dm.info.IsTouchInput {
		for _, id := range currentTouchIDs {
			if id == dm.info.TouchID {
				return false // 触摸仍然活跃
			}
		}
		return true
	}
	return !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

// updateCurrentPosition 更新当前位置
func (dm *DragManager) updateCurrentPosition(currentTouchIDs []ebiten.TouchID) {
	if !dm.info.IsTouchInput {
		dm.info.CurrentX, dm.info.CurrentY = ebiten.CursorPosition()
		return
	}
	for _, id := range currentTouchIDs {
		if id == dm.info.TouchID {
			dm.info.CurrentX, dm.info.CurrentY = ebiten.TouchPosition(id)
			return
		}
	}
}

// Reset 重置拖拽状态
func (dm *DragManager) Reset() {
	dm.info = DragInfo{
		State:   DragStateNone,
		TouchID: -1,
	}
}

// GetState 获取当前拖拽状态
func (dm *DragManager) GetState() DragState {
	return dm.info.State
}

// GetInfo 获取完整拖拽信息
func (dm *DragManager) GetInfo() DragInfo {
	return dm.info
}

// IsActive 是否有正在进行的拖拽（刚开始或拖拽中）
func (dm *DragManager) IsActive() bool {
	return dm.info.State == DragStateStarted || dm.info.State == DragStateDragging
}

// GetDragDistance 获取拖拽距离（从起点到当前位置）
func (dm *DragManager) GetDragDistance() (dx, dy int) {
	return dm.info.CurrentX - dm.info.StartX, dm.info.CurrentY - dm.info.StartY
}

// ============================================================================
// 虚拟摇杆
// ============================================================================

// Joystick 屏幕左下角的横向虚拟摇杆
//
// 以拖拽起点为摇杆中心，横向偏移除以 Radius 得到 [-1, 1] 的轴值；
// 偏移比例低于 DeadZone 时视为无输入。
type Joystick struct {
	Radius   float64
	DeadZone float64

	drag *DragManager
}

// NewJoystick 创建虚拟摇杆，area 为可以按下摇杆的区域
func NewJoystick(area image.Rectangle, radius, deadZone float64) *Joystick {
	return &Joystick{
		Radius:   radius,
		DeadZone: deadZone,
		drag:     NewDragManager(area),
	}
}

// Update 更新拖拽状态（每帧调用一次）
func (j *Joystick) Update() {
	j.drag.Update()
}

// Drag 返回底层拖拽管理器
func (j *Joystick) Drag() *DragManager {
	return j.drag
}

// Axis 返回当前横向轴值，没有拖拽时为 0
func (j *Joystick) Axis() float64 {
	if !j.drag.IsActive() {
		return 0
	}
	dx, _ := j.drag.GetDragDistance()
	return JoystickAxis(float64(dx), j.Radius, j.DeadZone)
}

// JoystickAxis 把横向偏移换算为轴值
//
// 偏移超过 radius 时截断为 ±1；死区之外的部分重新映射到 (0, 1]，
// 使刚越过死区时输出从 0 连续增长。
func JoystickAxis(dx, radius, deadZone float64) float64 {
	if radius <= 0 {
		return 0
	}
	ratio := Clamp(dx/radius, -1, 1)
	magnitude := math.Abs(ratio)
	if magnitude <= deadZone {
		return 0
	}
	if deadZone >= 1 {
		return 0
	}
	scaled := (magnitude - deadZone) / (1 - deadZone)
	return math.Copysign(scaled, ratio)
}
