package components

import "github.com/go-gl/mathgl/mgl64"

// CollisionComponent 定义实体的碰撞检测边界框（三维 AABB）
// 碰撞盒中心 = 实体位置 + Offset，尺寸随 ScaleComponent 缩放
type CollisionComponent struct {
	Size   mgl64.Vec3 // 碰撞盒尺寸（宽 X, 高 Y, 深 Z），未缩放
	Offset mgl64.Vec3 // 碰撞盒中心相对实体位置的偏移，Y 通常为半高（模型原点在脚底）
}
