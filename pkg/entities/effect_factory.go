package entities

import (
	"fmt"

	"github.com/decker502/highway/pkg/components"
	"github.com/decker502/highway/pkg/ecs"
	"github.com/go-gl/mathgl/mgl64"
)

// NewEffect 创建一次性视觉特效实体
// 特效在指定位置显示 lifetime 秒后由 LifetimeSystem 自动清理
//
// 参数:
//   - em: 实体管理器
//   - kind: 特效类型（护盾撞毁碎裂、道具拾取闪光）
//   - pos: 特效中心的世界坐标
//   - lifetime: 持续时间（秒）
//
// 返回:
//   - ecs.EntityID: 创建的特效实体ID，如果失败返回 0
//   - error: 如果创建失败返回错误信息
func NewEffect(em *ecs.EntityManager, kind components.EffectKind, pos mgl64.Vec3, lifetime float64) (ecs.EntityID, error) {
	if em == nil {
		return ecs.InvalidEntity, fmt.Errorf("entity manager cannot be nil")
	}
	if lifetime <= 0 {
		return ecs.InvalidEntity, fmt.Errorf("effect lifetime must be > 0, got %.2f", lifetime)
	}

	entityID := em.CreateEntity()
	ecs.AddComponent(em, entityID, &components.PositionComponent{Pos: pos})
	ecs.AddComponent(em, entityID, &components.EffectComponent{Kind: kind})
	ecs.AddComponent(em, entityID, &components.LifetimeComponent{Duration: lifetime})
	return entityID, nil
}
