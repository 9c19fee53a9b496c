package systems

import (
	"log"
	"math"

	"github.com/decker502/highway/pkg/components"
	"github.com/decker502/highway/pkg/config"
	"github.com/decker502/highway/pkg/ecs"
	"github.com/decker502/highway/pkg/game"
)

// ScoreSystem 速度、护盾计时、距离与得分
//
// 每帧：
//  1. 速度按 increment 向 max 递增
//  2. 护盾倒计时，到期后恢复缩放与速度
//  3. 计算本帧滚动速度（护盾期间叠加 speedBoost）并累计距离
//  4. 跨过难度里程碑时缩短障碍生成间隔
type ScoreSystem struct {
	entityManager *ecs.EntityManager
	config        *config.TuningConfig
	session       *game.SessionState
	difficulty    *DifficultyEngine
}

// NewScoreSystem 创建计分系统
func NewScoreSystem(em *ecs.EntityManager, cfg *config.TuningConfig, session *game.SessionState) *ScoreSystem {
	return &ScoreSystem{
		entityManager: em,
		config:        cfg,
		session:       session,
		difficulty:    NewDifficultyEngine(cfg.Obstacle),
	}
}

// Update 推进速度与计分
func (s *ScoreSystem) Update(deltaTime float64) {
	speedCfg := s.config.Speed
	s.session.Speed = math.Min(speedCfg.Max, s.session.Speed+speedCfg.Increment*deltaTime)

	scroll := s.session.Speed
	if player, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, s.session.PlayerEntity); ok {
		if player.ShieldActive {
			player.ShieldRemaining -= deltaTime
			if player.ShieldRemaining <= 0 {
				deactivateShield(s.entityManager, s.session.PlayerEntity)
				log.Printf("[ScoreSystem] Shield expired")
			}
		}
		if player.BoostActive {
			scroll += s.config.Shield.SpeedBoost
		}
	}
	s.session.ScrollSpeed = scroll

	s.session.AddDistance(scroll*deltaTime*speedCfg.DistanceScale, speedCfg.PointsPerDistance)

	if health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, s.session.PlayerEntity); ok {
		s.session.Health = health.CurrentHealth
		s.session.MaxHealth = health.MaxHealth
	}

	s.updateDifficulty()
}

// updateDifficulty 跨过难度里程碑时缩短障碍生成间隔
func (s *ScoreSystem) updateDifficulty() {
	steps, next := s.difficulty.MilestonesCrossed(s.session.Distance, s.session.NextMilestone)
	if steps == 0 {
		return
	}
	s.session.NextMilestone = next

	interval := s.difficulty.NextInterval(s.session.ObstacleInterval, steps)
	if interval == s.session.ObstacleInterval {
		return
	}
	s.session.ObstacleInterval = interval
	if s.session.ObstacleTimer != nil {
		s.session.ObstacleTimer.TargetTime = interval
	}
	log.Printf("[ScoreSystem] Difficulty milestone %.0f reached, obstacle interval %.2fs",
		next-s.config.Obstacle.DifficultyMilestone, interval)
}
