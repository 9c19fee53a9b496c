package entities

import (
	"fmt"

	"github.com/decker502/highway/pkg/components"
	"github.com/decker502/highway/pkg/config"
	"github.com/decker502/highway/pkg/ecs"
	"github.com/go-gl/mathgl/mgl64"
)

// NewBossProjectile 创建 Boss 子弹实体
// 子弹从 Boss 位置发射，以恒定速度飞向发射瞬间玩家所在的位置
//
// 参数:
//   - em: 实体管理器
//   - cfg: 调参档案（子弹速度、伤害、判定半径）
//   - origin: 发射点（Boss 碰撞盒中心）
//   - target: 瞄准点（玩家碰撞盒中心）
//
// 返回:
//   - ecs.EntityID: 创建的子弹实体ID，如果失败返回 0
//   - error: 如果创建失败返回错误信息
func NewBossProjectile(em *ecs.EntityManager, cfg *config.TuningConfig, origin, target mgl64.Vec3) (ecs.EntityID, error) {
	if em == nil {
		return ecs.InvalidEntity, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return ecs.InvalidEntity, fmt.Errorf("tuning is required")
	}

	// 发射点与目标重合时直接朝玩家方向（+Z）飞行
	dir := target.Sub(origin)
	if dir.Len() < 1e-9 {
		dir = mgl64.Vec3{0, 0, 1}
	}
	vel := dir.Normalize().Mul(cfg.Boss.ProjectileSpeed)

	entityID := em.CreateEntity()
	ecs.AddComponent(em, entityID, &components.PositionComponent{Pos: origin})
	ecs.AddComponent(em, entityID, &components.VelocityComponent{Vel: vel})
	ecs.AddComponent(em, entityID, &components.ProjectileComponent{
		Origin: origin,
		Damage: cfg.Boss.ProjectileDamage,
		Radius: cfg.Boss.HitRadius,
	})

	// 碰撞盒仅用于渲染尺寸，命中判定使用 Radius
	d := cfg.Boss.HitRadius
	ecs.AddComponent(em, entityID, &components.CollisionComponent{Size: mgl64.Vec3{d, d, d}})
	return entityID, nil
}
