package systems

import (
	"log"
	"math/rand"

	"github.com/decker502/highway/pkg/components"
	"github.com/decker502/highway/pkg/config"
	"github.com/decker502/highway/pkg/ecs"
	"github.com/decker502/highway/pkg/game"
)

// AbilitySystem 处理离散动作：跳跃、激活护盾、换位
//
// 护盾与换位道具拾取后进入玩家库存，由动作消耗。
// 没有玩家实体时（模型仍在加载）动作是带警告日志的空操作。
type AbilitySystem struct {
	entityManager *ecs.EntityManager
	config        *config.TuningConfig
	session       *game.SessionState
	rng           *rand.Rand
}

// NewAbilitySystem 创建动作系统
func NewAbilitySystem(em *ecs.EntityManager, cfg *config.TuningConfig, session *game.SessionState, rng *rand.Rand) *AbilitySystem {
	return &AbilitySystem{
		entityManager: em,
		config:        cfg,
		session:       session,
		rng:           rng,
	}
}

// Update 按输入快照触发动作
func (s *AbilitySystem) Update(deltaTime float64, in game.InputState) {
	if in.Jump {
		s.Jump()
	}
	if in.Shield {
		s.UseShield()
	}
	if in.Reposition {
		s.Reposition()
	}
}

func (s *AbilitySystem) player() (ecs.EntityID, *components.PlayerComponent, bool) {
	id := s.session.PlayerEntity
	player, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
	if !ok {
		return ecs.InvalidEntity, nil, false
	}
	return id, player, true
}

// Jump 起跳；空中再次按下无效
func (s *AbilitySystem) Jump() bool {
	_, player, ok := s.player()
	if !ok {
		log.Printf("[AbilitySystem] Warning: jump ignored, no player loaded")
		return false
	}
	if player.Jumping {
		return false
	}
	player.Jumping = true
	player.JumpElapsed = 0
	return true
}

// UseShield 消耗一个护盾库存并激活护盾
func (s *AbilitySystem) UseShield() bool {
	id, player, ok := s.player()
	if !ok {
		log.Printf("[AbilitySystem] Warning: shield ignored, no player loaded")
		return false
	}
	if player.ShieldCharges <= 0 {
		log.Printf("[AbilitySystem] Warning: shield ignored, inventory empty")
		return false
	}
	if player.ShieldActive {
		return false
	}
	player.ShieldCharges--
	ActivateShield(s.entityManager, s.config, id)
	return true
}

// Reposition 消耗一个换位库存，随机向左或向右瞬移 repositionStep
// 随机方向越界时改用相反方向；两边都越界则不消耗库存
func (s *AbilitySystem) Reposition() bool {
	id, player, ok := s.player()
	if !ok {
		log.Printf("[AbilitySystem] Warning: reposition ignored, no player loaded")
		return false
	}
	if player.RepositionCharges <= 0 {
		log.Printf("[AbilitySystem] Warning: reposition ignored, inventory empty")
		return false
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	if !ok {
		return false
	}

	step := s.config.PowerUp.RepositionStep
	limit := s.config.Player.LateralLimit
	if s.rng.Intn(2) == 0 {
		step = -step
	}
	for _, candidate := range []float64{pos.Pos.X() + step, pos.Pos.X() - step} {
		if candidate >= -limit && candidate <= limit {
			pos.Pos[0] = candidate
			player.RepositionCharges--
			log.Printf("[AbilitySystem] Repositioned to x=%.2f (%d left)", candidate, player.RepositionCharges)
			return true
		}
	}
	log.Printf("[AbilitySystem] Warning: reposition ignored, both targets out of bounds")
	return false
}

// ActivateShield 激活护盾：计时、加速标记、角色放大
// 已激活时刷新剩余时间
func ActivateShield(em *ecs.EntityManager, cfg *config.TuningConfig, playerID ecs.EntityID) bool {
	player, ok := ecs.GetComponent[*components.PlayerComponent](em, playerID)
	if !ok {
		log.Printf("[AbilitySystem] Warning: cannot activate shield, no player entity %d", playerID)
		return false
	}
	player.ShieldActive = true
	player.BoostActive = true
	player.ShieldRemaining = cfg.Shield.Duration

	if scale, ok := ecs.GetComponent[*components.ScaleComponent](em, playerID); ok {
		scale.Factor = scale.Base * cfg.Shield.Scale
	}
	log.Printf("[AbilitySystem] Shield activated for %.1fs", cfg.Shield.Duration)
	return true
}

// deactivateShield 护盾到期：恢复缩放并取消加速
func deactivateShield(em *ecs.EntityManager, playerID ecs.EntityID) {
	player, ok := ecs.GetComponent[*components.PlayerComponent](em, playerID)
	if !ok {
		return
	}
	player.ShieldActive = false
	player.BoostActive = false
	player.ShieldRemaining = 0
	if scale, ok := ecs.GetComponent[*components.ScaleComponent](em, playerID); ok {
		scale.Factor = scale.Base
	}
}
