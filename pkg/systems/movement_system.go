package systems

import (
	"log"
	"math/rand"

	"github.com/decker502/highway/pkg/components"
	"github.com/decker502/highway/pkg/config"
	"github.com/decker502/highway/pkg/ecs"
	"github.com/decker502/highway/pkg/game"
)

// MovementSystem 推进所有朝玩家移动的实体
//
//   - 障碍：随路面移动，越过 recycleDepth 后回收到 spawnDepth（Boss 模式下停放）
//   - 道具：随路面移动，越过 removeDepth 后销毁
//   - 子弹：按自身速度飞行，超出射程或越过玩家后销毁
//   - 特效：随路面移动
type MovementSystem struct {
	entityManager *ecs.EntityManager
	config        *config.TuningConfig
	session       *game.SessionState
	rng           *rand.Rand
}

// NewMovementSystem 创建移动系统
func NewMovementSystem(em *ecs.EntityManager, cfg *config.TuningConfig, session *game.SessionState, rng *rand.Rand) *MovementSystem {
	return &MovementSystem{
		entityManager: em,
		config:        cfg,
		session:       session,
		rng:           rng,
	}
}

// Update 移动实体并处理越界
func (s *MovementSystem) Update(deltaTime float64) {
	advance := s.session.ScrollSpeed * deltaTime

	for _, id := range ecs.GetEntitiesWith2[*components.ObstacleComponent, *components.PositionComponent](s.entityManager) {
		obstacle, _ := ecs.GetComponent[*components.ObstacleComponent](s.entityManager, id)
		if !obstacle.Active {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		pos.Pos[2] += advance
		if pos.Pos.Z() > s.config.Obstacle.RecycleDepth {
			RecycleObstacle(s.entityManager, s.config, s.session, s.rng, id)
		}
	}

	for _, id := range ecs.GetEntitiesWith2[*components.PowerUpComponent, *components.PositionComponent](s.entityManager) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		pos.Pos[2] += advance
		if pos.Pos.Z() > s.config.PowerUp.RemoveDepth {
			s.entityManager.DestroyEntity(id)
		}
	}

	for _, id := range ecs.GetEntitiesWith2[*components.EffectComponent, *components.PositionComponent](s.entityManager) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		pos.Pos[2] += advance
	}

	for _, id := range ecs.GetEntitiesWith3[*components.ProjectileComponent, *components.PositionComponent, *components.VelocityComponent](s.entityManager) {
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)

		pos.Pos = pos.Pos.Add(vel.Vel.Mul(deltaTime))
		if pos.Pos.Sub(proj.Origin).Len() > s.config.Boss.ProjectileRange || pos.Pos.Z() > s.config.Obstacle.RecycleDepth {
			s.entityManager.DestroyEntity(id)
		}
	}
}

// RecycleObstacle 把障碍送回生成深度并随机横向位置
// Boss 模式下不回到路面，而是停放等待 Boss 战结束
func RecycleObstacle(em *ecs.EntityManager, cfg *config.TuningConfig, session *game.SessionState, rng *rand.Rand, id ecs.EntityID) {
	obstacle, ok := ecs.GetComponent[*components.ObstacleComponent](em, id)
	if !ok {
		return
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		return
	}

	pos.Pos[2] = cfg.Obstacle.SpawnDepth
	obstacle.Passed = false
	obstacle.Recycles++

	if session.Mode == game.ModeBoss {
		obstacle.Active = false
		log.Printf("[MovementSystem] Obstacle %d parked during boss mode", id)
		return
	}
	pos.Pos[0] = randomLateral(rng, cfg.Obstacle.LateralRange)
}

// randomLateral 返回 [-r, r] 内的随机横向位置
func randomLateral(rng *rand.Rand, r float64) float64 {
	if r <= 0 {
		return 0
	}
	return (rng.Float64()*2 - 1) * r
}
