package systems

import (
	"log"
	"math"
	"math/rand"

	"github.com/decker502/highway/pkg/components"
	"github.com/decker502/highway/pkg/config"
	"github.com/decker502/highway/pkg/ecs"
	"github.com/decker502/highway/pkg/entities"
	"github.com/decker502/highway/pkg/game"
)

// pendingPowerUp 已请求模型、等待放置的道具
type pendingPowerUp struct {
	kind   components.PowerUpType
	handle *game.LoadHandle
}

// SpawnSystem 障碍与道具的定时生成
//
// 每个计时器到期时按概率决定是否生成，然后异步请求模型。
// 请求在之后的 tick 中轮询：成功则放置实体，失败则记录日志并放弃本次生成。
// 障碍来自固定大小的对象池：优先复用停放的障碍，池满时跳过本次生成。
type SpawnSystem struct {
	entityManager *ecs.EntityManager
	config        *config.TuningConfig
	session       *game.SessionState
	loader        game.ModelLoader
	rng           *rand.Rand

	pendingObstacle *game.LoadHandle
	pendingPowerUp  *pendingPowerUp
}

// NewSpawnSystem 创建生成系统
func NewSpawnSystem(em *ecs.EntityManager, cfg *config.TuningConfig, session *game.SessionState, loader game.ModelLoader, rng *rand.Rand) *SpawnSystem {
	log.Printf("[SpawnSystem] Initialized: obstacle every %.1fs (pool=%d), power-up every %.1fs",
		cfg.Obstacle.SpawnInterval, cfg.Obstacle.PoolSize, cfg.PowerUp.SpawnInterval)
	return &SpawnSystem{
		entityManager: em,
		config:        cfg,
		session:       session,
		loader:        loader,
		rng:           rng,
	}
}

// Update 推进生成计时器并放置已加载完成的实体
func (s *SpawnSystem) Update(deltaTime float64) {
	s.updateObstacles(deltaTime)
	s.updatePowerUps(deltaTime)
}

// Reset 丢弃所有未完成的加载请求（会话结束时调用）
func (s *SpawnSystem) Reset() {
	s.pendingObstacle = nil
	s.pendingPowerUp = nil
}

// HasPending 是否有未完成的加载请求
func (s *SpawnSystem) HasPending() bool {
	return s.pendingObstacle != nil || s.pendingPowerUp != nil
}

func (s *SpawnSystem) updateObstacles(deltaTime float64) {
	// Boss 模式下不生成障碍，未完成的请求直接丢弃
	if s.session.Mode == game.ModeBoss {
		if s.pendingObstacle != nil {
			log.Printf("[SpawnSystem] Boss mode: dropping pending obstacle load %s", s.pendingObstacle.Name())
			s.pendingObstacle = nil
		}
		return
	}

	if s.pendingObstacle != nil {
		if !s.pendingObstacle.Done() {
			return
		}
		h := s.pendingObstacle
		s.pendingObstacle = nil
		desc, err := h.Result()
		if err != nil {
			log.Printf("[SpawnSystem] Warning: obstacle model %s failed to load, spawn abandoned: %v", h.Name(), err)
			return
		}
		s.placeObstacle(desc)
	}

	if !advanceTimer(s.session.ObstacleTimer, deltaTime) {
		return
	}
	if s.pendingObstacle != nil || s.rng.Float64() >= s.config.Obstacle.SpawnChance {
		return
	}
	if _, ok := s.obstacleSlot(); !ok {
		return
	}
	models := s.config.Obstacle.Models
	s.pendingObstacle = s.loader.LoadModel(models[s.rng.Intn(len(models))])
}

// obstacleSlot 返回可复用的停放障碍；池未满时返回 InvalidEntity 表示需要新建
func (s *SpawnSystem) obstacleSlot() (ecs.EntityID, bool) {
	all := ecs.GetEntitiesWith1[*components.ObstacleComponent](s.entityManager)
	for _, id := range all {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		obstacle, _ := ecs.GetComponent[*components.ObstacleComponent](s.entityManager, id)
		if !obstacle.Active {
			return id, true
		}
	}
	if len(all) < s.config.Obstacle.PoolSize {
		return ecs.InvalidEntity, true
	}
	return ecs.InvalidEntity, false
}

// spawnDepth 新障碍的深度：不比 spawnDepth 近，并与最远的障碍保持 minGap
func (s *SpawnSystem) spawnDepth() float64 {
	z := s.config.Obstacle.SpawnDepth
	for _, id := range ecs.GetEntitiesWith2[*components.ObstacleComponent, *components.PositionComponent](s.entityManager) {
		obstacle, _ := ecs.GetComponent[*components.ObstacleComponent](s.entityManager, id)
		if !obstacle.Active {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		z = math.Min(z, pos.Pos.Z()-s.config.Obstacle.MinGap)
	}
	return z
}

func (s *SpawnSystem) placeObstacle(desc *config.ModelDescriptor) {
	slot, ok := s.obstacleSlot()
	if !ok {
		log.Printf("[SpawnSystem] Obstacle pool full, dropping loaded %s", desc.Name)
		return
	}
	x := randomLateral(s.rng, s.config.Obstacle.LateralRange)
	z := s.spawnDepth()

	if slot != ecs.InvalidEntity {
		entities.PlaceObstacle(s.entityManager, slot, desc, x, z)
		log.Printf("[SpawnSystem] Reactivated obstacle %d (%s) at x=%.2f z=%.1f", slot, desc.Name, x, z)
		return
	}
	id, err := entities.NewObstacle(s.entityManager, desc, x, z)
	if err != nil {
		log.Printf("[SpawnSystem] Warning: failed to create obstacle: %v", err)
		return
	}
	log.Printf("[SpawnSystem] Spawned obstacle %d (%s) at x=%.2f z=%.1f", id, desc.Name, x, z)
}

func (s *SpawnSystem) updatePowerUps(deltaTime float64) {
	if s.pendingPowerUp != nil {
		if !s.pendingPowerUp.handle.Done() {
			return
		}
		p := s.pendingPowerUp
		s.pendingPowerUp = nil
		desc, err := p.handle.Result()
		if err != nil {
			log.Printf("[SpawnSystem] Warning: power-up model %s failed to load, spawn abandoned: %v", p.handle.Name(), err)
			return
		}
		x := randomLateral(s.rng, s.config.PowerUp.LateralRange)
		id, err := entities.NewPowerUp(s.entityManager, s.config, p.kind, desc, x, s.config.PowerUp.SpawnDepth)
		if err != nil {
			log.Printf("[SpawnSystem] Warning: failed to create power-up: %v", err)
			return
		}
		log.Printf("[SpawnSystem] Spawned %s power-up %d at x=%.2f", p.kind, id, x)
	}

	if s.session.Mode == game.ModeBoss && !s.config.PowerUp.SpawnDuringBoss {
		return
	}
	if !advanceTimer(s.session.PowerUpTimer, deltaTime) {
		return
	}
	if s.pendingPowerUp != nil || s.rng.Float64() >= s.config.PowerUp.SpawnChance {
		return
	}
	kind, ok := s.pickPowerUp()
	if !ok {
		return
	}
	s.pendingPowerUp = &pendingPowerUp{
		kind:   kind,
		handle: s.loader.LoadModel(s.config.PowerUp.Models[kind.String()]),
	}
}

// pickPowerUp 按权重随机选择道具类型
func (s *SpawnSystem) pickPowerUp() (components.PowerUpType, bool) {
	total := 0.0
	for _, kind := range components.AllPowerUpTypes {
		total += s.config.PowerUp.Weights[kind.String()]
	}
	if total <= 0 {
		return 0, false
	}
	roll := s.rng.Float64() * total
	for _, kind := range components.AllPowerUpTypes {
		w := s.config.PowerUp.Weights[kind.String()]
		if w <= 0 {
			continue
		}
		if roll < w {
			return kind, true
		}
		roll -= w
	}
	// 浮点误差兜底：返回最后一个正权重类型
	for i := len(components.AllPowerUpTypes) - 1; i >= 0; i-- {
		kind := components.AllPowerUpTypes[i]
		if s.config.PowerUp.Weights[kind.String()] > 0 {
			return kind, true
		}
	}
	return 0, false
}
