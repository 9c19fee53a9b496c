package systems

import (
	"github.com/decker502/highway/pkg/components"
	"github.com/decker502/highway/pkg/config"
	"github.com/decker502/highway/pkg/ecs"
	"github.com/decker502/highway/pkg/game"
)

// ScrollSystem 推进循环路面
// 地块整体移出玩家身后后，向远处平移 TileCount 个地块长度
type ScrollSystem struct {
	entityManager *ecs.EntityManager
	config        *config.TuningConfig
	session       *game.SessionState
}

// NewScrollSystem 创建路面滚动系统
func NewScrollSystem(em *ecs.EntityManager, cfg *config.TuningConfig, session *game.SessionState) *ScrollSystem {
	return &ScrollSystem{
		entityManager: em,
		config:        cfg,
		session:       session,
	}
}

// Update 按本帧滚动速度移动所有地块
func (s *ScrollSystem) Update(deltaTime float64) {
	length := s.config.Ground.TileLength
	span := length * float64(s.config.Ground.TileCount)
	advance := s.session.ScrollSpeed * deltaTime

	for _, id := range ecs.GetEntitiesWith2[*components.GroundTileComponent, *components.PositionComponent](s.entityManager) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		pos.Pos[2] += advance
		for pos.Pos.Z()-length/2 > s.config.Obstacle.RecycleDepth {
			pos.Pos[2] -= span
		}
	}
}
