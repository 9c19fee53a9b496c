package systems

import (
	"github.com/decker502/highway/pkg/components"
	"github.com/decker502/highway/pkg/ecs"
	"github.com/go-gl/mathgl/mgl64"
)

// Box 世界坐标中的轴对齐包围盒
type Box struct {
	Center mgl64.Vec3
	Size   mgl64.Vec3
}

// Min 返回最小角
func (b Box) Min() mgl64.Vec3 {
	return b.Center.Sub(b.Size.Mul(0.5))
}

// Max 返回最大角
func (b Box) Max() mgl64.Vec3 {
	return b.Center.Add(b.Size.Mul(0.5))
}

// WorldBox 计算实体在世界坐标中的碰撞盒
// 中心 = 位置 + 偏移×缩放，尺寸 = 碰撞盒尺寸×缩放
func WorldBox(em *ecs.EntityManager, id ecs.EntityID) (Box, bool) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		return Box{}, false
	}
	col, ok := ecs.GetComponent[*components.CollisionComponent](em, id)
	if !ok {
		return Box{}, false
	}

	scale := 1.0
	if sc, ok := ecs.GetComponent[*components.ScaleComponent](em, id); ok && sc.Factor > 0 {
		scale = sc.Factor
	}
	return Box{
		Center: pos.Pos.Add(col.Offset.Mul(scale)),
		Size:   col.Size.Mul(scale),
	}, true
}

// AABBIntersects 检测两个三维包围盒是否相交（接触边界不算相交）
func AABBIntersects(a, b Box) bool {
	aMin, aMax := a.Min(), a.Max()
	bMin, bMax := b.Min(), b.Max()
	for i := 0; i < 3; i++ {
		if aMax[i] <= bMin[i] || bMax[i] <= aMin[i] {
			return false
		}
	}
	return true
}

// FootprintIntersects 只比较路面投影（X 与 Z），忽略高度
// 用于判断玩家是否处在障碍正上方
func FootprintIntersects(a, b Box) bool {
	aMin, aMax := a.Min(), a.Max()
	bMin, bMax := b.Min(), b.Max()
	for _, i := range []int{0, 2} {
		if aMax[i] <= bMin[i] || bMax[i] <= aMin[i] {
			return false
		}
	}
	return true
}

// SegmentPointDistance 返回点 p 到线段 ab 的最短距离
// 子弹每帧移动的距离可能大于命中半径，因此用本帧扫过的线段判定
func SegmentPointDistance(a, b, p mgl64.Vec3) float64 {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return p.Sub(a).Len()
	}
	t := p.Sub(a).Dot(ab) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.Sub(a.Add(ab.Mul(t))).Len()
}

// advanceTimer 推进周期计时器，到达目标时间时返回 true 并扣除一个周期
func advanceTimer(timer *components.TimerComponent, deltaTime float64) bool {
	if timer == nil || timer.TargetTime <= 0 {
		return false
	}
	timer.IsReady = false
	timer.CurrentTime += deltaTime
	if timer.CurrentTime >= timer.TargetTime {
		timer.CurrentTime -= timer.TargetTime
		// 长时间卡顿后不补发多次
		if timer.CurrentTime >= timer.TargetTime {
			timer.CurrentTime = 0
		}
		timer.IsReady = true
	}
	return timer.IsReady
}

// resetTimer 清零计时器
func resetTimer(timer *components.TimerComponent) {
	if timer == nil {
		return
	}
	timer.CurrentTime = 0
	timer.IsReady = false
}
