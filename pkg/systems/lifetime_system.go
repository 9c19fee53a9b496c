package systems

import (
	"github.com/decker502/highway/pkg/components"
	"github.com/decker502/highway/pkg/ecs"
)

// LifetimeSystem 管理实体的生命周期
// 目前只有视觉特效携带 LifetimeComponent
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
	}
}

// Update 更新所有拥有生命周期组件的实体
func (s *LifetimeSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager) {
		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !ok {
			continue
		}

		lifetime.Elapsed += deltaTime
		if lifetime.Elapsed >= lifetime.Duration {
			lifetime.Expired = true
		}

		// 过期实体标记待删除，由游戏循环在 tick 末尾统一清理
		if lifetime.Expired {
			s.entityManager.DestroyEntity(id)
		}
	}
}

// Progress 返回实体已播放的生命周期比例 [0, 1]，没有生命周期组件时为 0
func Progress(em *ecs.EntityManager, id ecs.EntityID) float64 {
	lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](em, id)
	if !ok {
		return 0
	}
	return lifetime.Progress()
}
