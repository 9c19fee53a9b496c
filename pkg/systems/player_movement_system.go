package systems

import (
	"github.com/decker502/highway/pkg/components"
	"github.com/decker502/highway/pkg/config"
	"github.com/decker502/highway/pkg/ecs"
	"github.com/decker502/highway/pkg/game"
	"github.com/decker502/highway/pkg/utils"
)

// PlayerMovementSystem 横向移动与跳跃弧线
type PlayerMovementSystem struct {
	entityManager *ecs.EntityManager
	config        *config.TuningConfig
	session       *game.SessionState
}

// NewPlayerMovementSystem 创建玩家移动系统
func NewPlayerMovementSystem(em *ecs.EntityManager, cfg *config.TuningConfig, session *game.SessionState) *PlayerMovementSystem {
	return &PlayerMovementSystem{
		entityManager: em,
		config:        cfg,
		session:       session,
	}
}

// Update 根据横向输入移动玩家并推进跳跃
func (s *PlayerMovementSystem) Update(deltaTime float64, in game.InputState) {
	id := s.session.PlayerEntity
	player, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
	if !ok {
		return
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	if !ok {
		return
	}

	limit := s.config.Player.LateralLimit
	x := pos.Pos.X() + in.Axis()*s.config.Player.LateralSpeed*deltaTime
	pos.Pos[0] = utils.Clamp(x, -limit, limit)

	groundY := s.config.Player.StartPosition.Y
	if !player.Jumping {
		pos.Pos[1] = groundY
		return
	}

	player.JumpElapsed += deltaTime
	duration := s.config.Player.JumpDuration
	if player.JumpElapsed >= duration {
		player.Jumping = false
		player.JumpElapsed = 0
		pos.Pos[1] = groundY
		return
	}
	pos.Pos[1] = groundY + s.config.Player.JumpHeight*utils.JumpArc(player.JumpElapsed/duration)
}

// Airborne 玩家离地高度是否超过 clearance
func Airborne(em *ecs.EntityManager, cfg *config.TuningConfig, playerID ecs.EntityID) bool {
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, playerID)
	if !ok {
		return false
	}
	return pos.Pos.Y()-cfg.Player.StartPosition.Y > cfg.Obstacle.JumpClearance
}
