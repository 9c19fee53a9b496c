package components

import "github.com/go-gl/mathgl/mgl64"

// ProjectileComponent 标记 Boss 发射的子弹
// 速度存放在 VelocityComponent；碰撞使用固定半径距离检测
type ProjectileComponent struct {
	Origin mgl64.Vec3 // 发射点，用于判断是否超出射程
	Damage int        // 命中玩家时扣除的生命值
	Radius float64    // 命中判定半径
}
