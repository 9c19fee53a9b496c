package systems

import (
	"log"

	"github.com/decker502/highway/pkg/components"
	"github.com/decker502/highway/pkg/config"
	"github.com/decker502/highway/pkg/ecs"
	"github.com/decker502/highway/pkg/entities"
	"github.com/decker502/highway/pkg/game"
	"github.com/decker502/highway/pkg/utils"
)

// bossRetryDelay Boss 模型加载失败后重新请求前的等待时间（秒）
const bossRetryDelay = 1.0

// BossSystem 模式控制器：Normal ⇄ Boss
//
// 进入条件：distance ≥ triggerDistance 且本局尚未完成 Boss 战。
// Boss 模型就绪后才真正切换模式；加载失败不会消耗触发机会，稍后重试。
// 退出条件：倒计时归零或 ForceEnd。退出时移除 Boss 与所有在飞子弹，
// 恢复障碍生成，发放通关奖励。每局只会发生一次。
type BossSystem struct {
	entityManager *ecs.EntityManager
	config        *config.TuningConfig
	session       *game.SessionState
	loader        game.ModelLoader

	pending    *game.LoadHandle
	retryTimer float64
}

// NewBossSystem 创建模式控制器
func NewBossSystem(em *ecs.EntityManager, cfg *config.TuningConfig, session *game.SessionState, loader game.ModelLoader) *BossSystem {
	return &BossSystem{
		entityManager: em,
		config:        cfg,
		session:       session,
		loader:        loader,
	}
}

// Update 检查进入/退出条件并驱动 Boss 行为
func (s *BossSystem) Update(deltaTime float64) {
	switch s.session.Mode {
	case game.ModeNormal:
		s.updateTrigger(deltaTime)
	case game.ModeBoss:
		s.updateEncounter(deltaTime)
	}
}

// Reset 丢弃未完成的 Boss 模型请求（会话结束时调用）
func (s *BossSystem) Reset() {
	s.pending = nil
	s.retryTimer = 0
	s.session.BossPending = false
}

func (s *BossSystem) updateTrigger(deltaTime float64) {
	if s.session.BossCompleted || s.session.Distance < s.config.Boss.TriggerDistance {
		return
	}

	if s.pending == nil {
		if s.retryTimer > 0 {
			s.retryTimer -= deltaTime
			return
		}
		log.Printf("[BossSystem] Trigger distance %.0f reached, loading boss model %s",
			s.config.Boss.TriggerDistance, s.config.Boss.Model)
		s.pending = s.loader.LoadModel(s.config.Boss.Model)
		s.session.BossPending = true
	}

	if !s.pending.Done() {
		return
	}
	h := s.pending
	s.pending = nil
	s.session.BossPending = false

	desc, err := h.Result()
	if err != nil {
		log.Printf("[BossSystem] Warning: boss model failed to load, retrying in %.1fs: %v", bossRetryDelay, err)
		s.retryTimer = bossRetryDelay
		return
	}
	s.enter(desc)
}

func (s *BossSystem) enter(desc *config.ModelDescriptor) {
	x := 0.0
	if pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, s.session.PlayerEntity); ok {
		x = pos.Pos.X()
	}
	id, err := entities.NewBoss(s.entityManager, s.config, desc, x)
	if err != nil {
		log.Printf("[BossSystem] Warning: failed to create boss: %v", err)
		s.retryTimer = bossRetryDelay
		return
	}

	s.session.Mode = game.ModeBoss
	s.session.BossEntity = id
	s.session.BossCountdown = s.config.Boss.Countdown
	resetTimer(s.session.BossFireTimer)
	resetTimer(s.session.BossTrackTimer)
	log.Printf("[BossSystem] Boss mode entered at distance %.0f (boss %d)", s.session.Distance, id)
}

func (s *BossSystem) updateEncounter(deltaTime float64) {
	s.session.BossCountdown -= s.config.Boss.CountdownRate * deltaTime
	if s.session.BossCountdown <= 0 {
		s.session.BossCountdown = 0
		s.exit("countdown expired")
		return
	}

	bossPos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, s.session.BossEntity)
	if !ok {
		// Boss 实体意外丢失：直接结束遭遇战，避免卡在 Boss 模式
		s.exit("boss entity missing")
		return
	}
	boss, _ := ecs.GetComponent[*components.BossComponent](s.entityManager, s.session.BossEntity)

	if advanceTimer(s.session.BossTrackTimer, deltaTime) {
		if playerPos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, s.session.PlayerEntity); ok && boss != nil {
			boss.TargetX = playerPos.Pos.X()
			bossPos.Pos[0] = utils.MoveToward(bossPos.Pos.X(), boss.TargetX, s.config.Boss.TrackStep)
		}
	}

	if advanceTimer(s.session.BossFireTimer, deltaTime) {
		s.fire(boss)
	}
}

func (s *BossSystem) fire(boss *components.BossComponent) {
	origin, ok := WorldBox(s.entityManager, s.session.BossEntity)
	if !ok {
		return
	}
	target, ok := WorldBox(s.entityManager, s.session.PlayerEntity)
	if !ok {
		return
	}
	if _, err := entities.NewBossProjectile(s.entityManager, s.config, origin.Center, target.Center); err != nil {
		log.Printf("[BossSystem] Warning: failed to fire projectile: %v", err)
		return
	}
	if boss != nil {
		boss.ShotsFired++
	}
}

// ForceEnd 立即结束 Boss 战（不在 Boss 模式时为空操作）
func (s *BossSystem) ForceEnd() bool {
	if s.session.Mode != game.ModeBoss {
		log.Printf("[BossSystem] Warning: ForceEnd ignored, not in boss mode")
		return false
	}
	s.exit("forced end")
	return true
}

// exit 移除 Boss 与在飞子弹，恢复 Normal 模式并发放奖励
func (s *BossSystem) exit(reason string) {
	if s.session.BossEntity != ecs.InvalidEntity {
		s.entityManager.DestroyEntity(s.session.BossEntity)
	}
	for _, id := range ecs.GetEntitiesWith1[*components.ProjectileComponent](s.entityManager) {
		s.entityManager.DestroyEntity(id)
	}
	resetTimer(s.session.BossFireTimer)
	resetTimer(s.session.BossTrackTimer)

	s.session.Mode = game.ModeNormal
	s.session.BossEntity = ecs.InvalidEntity
	s.session.BossCompleted = true
	if s.session.Active && !s.session.Over {
		s.session.AddBonus(s.config.Boss.CompletionBonus)
	}
	log.Printf("[BossSystem] Boss mode exited (%s), bonus %d", reason, s.config.Boss.CompletionBonus)
}
