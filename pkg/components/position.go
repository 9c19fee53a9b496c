package components

import "github.com/go-gl/mathgl/mgl64"

// PositionComponent 存储实体的世界坐标
//
// 坐标系与原型一致：
//   - X: 横向（左负右正）
//   - Y: 高度（地面为 0）
//   - Z: 行进方向（远处为负，实体向 +Z 移动靠近玩家）
type PositionComponent struct {
	Pos mgl64.Vec3
}

// VelocityComponent 存储实体自身的速度（单位/秒）
// 仅用于 Boss 子弹等不随地面滚动的实体
type VelocityComponent struct {
	Vel mgl64.Vec3
}
