package entities

import (
	"fmt"
	"log"

	"github.com/decker502/highway/pkg/components"
	"github.com/decker502/highway/pkg/config"
	"github.com/decker502/highway/pkg/ecs"
	"github.com/go-gl/mathgl/mgl64"
)

// addBody 为实体添加位置、缩放、碰撞盒和模型组件
// 模型原点在脚底，因此碰撞盒中心上移半个高度
func addBody(em *ecs.EntityManager, id ecs.EntityID, desc *config.ModelDescriptor, pos mgl64.Vec3, scale float64) {
	ecs.AddComponent(em, id, &components.PositionComponent{Pos: pos})
	ecs.AddComponent(em, id, &components.ScaleComponent{Factor: scale, Base: scale})

	size := desc.Size.Vec3()
	ecs.AddComponent(em, id, &components.CollisionComponent{
		Size:   size,
		Offset: mgl64.Vec3{0, size.Y() / 2, 0},
	})
	ecs.AddComponent(em, id, &components.ModelComponent{Name: desc.Name, Color: desc.Color})
}

// NewPlayer 创建玩家角色实体
//
// 参数:
//   - em: 实体管理器
//   - cfg: 调参档案（起始位置、缩放、生命值）
//   - desc: 已加载的角色模型描述
//
// 返回:
//   - ecs.EntityID: 玩家实体ID
//   - error: 参数无效时返回错误
func NewPlayer(em *ecs.EntityManager, cfg *config.TuningConfig, desc *config.ModelDescriptor) (ecs.EntityID, error) {
	if em == nil {
		return ecs.InvalidEntity, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil || desc == nil {
		return ecs.InvalidEntity, fmt.Errorf("tuning and model descriptor are required")
	}

	id := em.CreateEntity()
	addBody(em, id, desc, cfg.Player.StartPosition.Vec3(), cfg.Player.Scale*desc.Scale)
	ecs.AddComponent(em, id, &components.PlayerComponent{})
	ecs.AddComponent(em, id, &components.HealthComponent{
		CurrentHealth: cfg.Player.MaxHealth,
		MaxHealth:     cfg.Player.MaxHealth,
	})

	log.Printf("[RunnerFactory] 创建玩家 %d: model=%s", id, desc.Name)
	return id, nil
}

// NewObstacle 创建一个池化障碍实体，放置在 (x, 0, z)
func NewObstacle(em *ecs.EntityManager, desc *config.ModelDescriptor, x, z float64) (ecs.EntityID, error) {
	if em == nil {
		return ecs.InvalidEntity, fmt.Errorf("entity manager cannot be nil")
	}
	if desc == nil {
		return ecs.InvalidEntity, fmt.Errorf("model descriptor is required")
	}

	id := em.CreateEntity()
	addBody(em, id, desc, mgl64.Vec3{x, 0, z}, desc.Scale)
	ecs.AddComponent(em, id, &components.ObstacleComponent{
		Model:  desc.Name,
		Active: true,
	})
	return id, nil
}

// PlaceObstacle 把已有障碍（新建、回收或停放的）放回路面
// 更换模型时同步碰撞盒尺寸
func PlaceObstacle(em *ecs.EntityManager, id ecs.EntityID, desc *config.ModelDescriptor, x, z float64) bool {
	obstacle, ok := ecs.GetComponent[*components.ObstacleComponent](em, id)
	if !ok {
		return false
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		return false
	}

	pos.Pos = mgl64.Vec3{x, 0, z}
	obstacle.Active = true
	obstacle.Passed = false

	if desc != nil && desc.Name != obstacle.Model {
		obstacle.Model = desc.Name
		size := desc.Size.Vec3()
		if box, ok := ecs.GetComponent[*components.CollisionComponent](em, id); ok {
			box.Size = size
			box.Offset = mgl64.Vec3{0, size.Y() / 2, 0}
		}
		if scale, ok := ecs.GetComponent[*components.ScaleComponent](em, id); ok {
			scale.Factor = desc.Scale
			scale.Base = desc.Scale
		}
		if model, ok := ecs.GetComponent[*components.ModelComponent](em, id); ok {
			model.Name = desc.Name
			model.Color = desc.Color
		}
	}
	return true
}

// NewPowerUp 创建道具实体，悬浮在 cfg.PowerUp.Height 高度
func NewPowerUp(em *ecs.EntityManager, cfg *config.TuningConfig, kind components.PowerUpType, desc *config.ModelDescriptor, x, z float64) (ecs.EntityID, error) {
	if em == nil {
		return ecs.InvalidEntity, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil || desc == nil {
		return ecs.InvalidEntity, fmt.Errorf("tuning and model descriptor are required")
	}

	id := em.CreateEntity()
	addBody(em, id, desc, mgl64.Vec3{x, cfg.PowerUp.Height, z}, desc.Scale)
	ecs.AddComponent(em, id, &components.PowerUpComponent{Type: kind, Model: desc.Name})
	return id, nil
}

// NewBoss 创建 Boss 实体，位于玩家前方 cfg.Boss.Depth 处
func NewBoss(em *ecs.EntityManager, cfg *config.TuningConfig, desc *config.ModelDescriptor, x float64) (ecs.EntityID, error) {
	if em == nil {
		return ecs.InvalidEntity, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil || desc == nil {
		return ecs.InvalidEntity, fmt.Errorf("tuning and model descriptor are required")
	}

	id := em.CreateEntity()
	addBody(em, id, desc, mgl64.Vec3{x, 0, cfg.Boss.Depth}, desc.Scale)
	ecs.AddComponent(em, id, &components.BossComponent{Model: desc.Name, TargetX: x})
	ecs.AddComponent(em, id, &components.HealthComponent{
		CurrentHealth: cfg.Boss.MaxHealth,
		MaxHealth:     cfg.Boss.MaxHealth,
	})

	log.Printf("[RunnerFactory] 创建 Boss %d: model=%s x=%.2f", id, desc.Name, x)
	return id, nil
}

// NewGroundTiles 创建首尾相接的路面地块，第 0 块覆盖玩家所在位置
func NewGroundTiles(em *ecs.EntityManager, cfg *config.TuningConfig) ([]ecs.EntityID, error) {
	if em == nil {
		return nil, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return nil, fmt.Errorf("tuning is required")
	}

	length := cfg.Ground.TileLength
	ids := make([]ecs.EntityID, 0, cfg.Ground.TileCount)
	for i := 0; i < cfg.Ground.TileCount; i++ {
		id := em.CreateEntity()
		// 地块中心：第 0 块中心在 z = -length/2 + 玩家前方余量
		z := -float64(i)*length - length/2 + cfg.Obstacle.RecycleDepth
		ecs.AddComponent(em, id, &components.PositionComponent{Pos: mgl64.Vec3{0, 0, z}})
		ecs.AddComponent(em, id, &components.GroundTileComponent{Index: i})
		ecs.AddComponent(em, id, &components.CollisionComponent{
			Size: mgl64.Vec3{cfg.Ground.Width, 0.01, length},
		})
		ids = append(ids, id)
	}
	return ids, nil
}
