package systems

import (
	"log"
	"math"
	"math/rand"
	"sort"

	"github.com/decker502/highway/pkg/components"
	"github.com/decker502/highway/pkg/config"
	"github.com/decker502/highway/pkg/ecs"
	"github.com/decker502/highway/pkg/entities"
	"github.com/decker502/highway/pkg/game"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/solarlune/resolv"
)

// resolv 对象标签
const (
	tagPlayer   = "player"
	tagObstacle = "obstacle"
	tagPowerUp  = "powerup"
)

// collisionCellSize 宽相位网格单元边长（世界单位）
const collisionCellSize = 4

// CollisionSystem 碰撞检测
//
// 宽相位：障碍、道具与玩家在路面平面 (x, z) 上注册为 resolv 对象，
// 每帧同步一次位置，由玩家对象 Check 出候选。
// 窄相位：障碍比较路面投影（跳跃越过靠高度判定），道具比较完整三维包围盒。
// 子弹不进入网格，直接用本帧扫过的线段与玩家中心的距离判定。
type CollisionSystem struct {
	entityManager *ecs.EntityManager
	config        *config.TuningConfig
	session       *game.SessionState
	rng           *rand.Rand

	space   *resolv.Space
	objects map[ecs.EntityID]*resolv.Object

	// 世界坐标到网格坐标的平移，保证网格坐标非负
	offsetX float64
	offsetZ float64
}

// NewCollisionSystem 创建碰撞系统，网格覆盖整个路面（横向 ground.width，纵向生成深度到回收深度）
func NewCollisionSystem(em *ecs.EntityManager, cfg *config.TuningConfig, session *game.SessionState, rng *rand.Rand) *CollisionSystem {
	width := math.Max(cfg.Ground.Width, 2*(cfg.Player.LateralLimit+cfg.Obstacle.LateralRange))
	near := math.Max(cfg.Obstacle.RecycleDepth, cfg.PowerUp.RemoveDepth)
	far := math.Min(cfg.Obstacle.SpawnDepth, cfg.PowerUp.SpawnDepth)
	margin := 4.0 * collisionCellSize
	depth := near - far + 2*margin

	s := &CollisionSystem{
		entityManager: em,
		config:        cfg,
		session:       session,
		rng:           rng,
		objects:       make(map[ecs.EntityID]*resolv.Object),
		offsetX:       width/2 + margin,
		offsetZ:       -far + margin,
	}
	s.space = resolv.NewSpace(int(width+2*margin), int(depth), collisionCellSize, collisionCellSize)
	return s
}

// Reset 清空碰撞网格（会话结束或重开时调用）
func (s *CollisionSystem) Reset() {
	for id, obj := range s.objects {
		s.space.Remove(obj)
		delete(s.objects, id)
	}
}

// ObjectCount 返回网格中注册的对象数量
func (s *CollisionSystem) ObjectCount() int {
	return len(s.objects)
}

// Update 同步网格并处理本帧全部碰撞
func (s *CollisionSystem) Update(deltaTime float64) {
	s.sync()

	playerID := s.session.PlayerEntity
	playerBox, ok := WorldBox(s.entityManager, playerID)
	if !ok {
		return
	}

	for _, id := range s.candidates(playerID) {
		if s.session.Over {
			return
		}
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		if ecs.HasComponent[*components.ObstacleComponent](s.entityManager, id) {
			s.handleObstacle(playerID, playerBox, id)
		} else if ecs.HasComponent[*components.PowerUpComponent](s.entityManager, id) {
			s.handlePowerUp(playerID, playerBox, id)
		}
	}

	if !s.session.Over {
		s.handleProjectiles(playerID, playerBox, deltaTime)
	}
}

// sync 把实体碰撞盒的路面投影写入网格，移除已失效的对象
func (s *CollisionSystem) sync() {
	seen := make(map[ecs.EntityID]bool, len(s.objects))

	track := func(id ecs.EntityID, tag string) {
		box, ok := WorldBox(s.entityManager, id)
		if !ok || s.entityManager.IsMarkedForDestroy(id) {
			return
		}
		seen[id] = true
		minCorner := box.Min()

		obj, exists := s.objects[id]
		if !exists {
			obj = resolv.NewObject(0, 0, box.Size.X(), box.Size.Z(), tag)
			obj.Data = id
			s.space.Add(obj)
			s.objects[id] = obj
		}
		obj.X = minCorner.X() + s.offsetX
		obj.Y = minCorner.Z() + s.offsetZ
		obj.W = box.Size.X()
		obj.H = box.Size.Z()
		obj.Update()
	}

	if s.session.PlayerEntity != ecs.InvalidEntity {
		track(s.session.PlayerEntity, tagPlayer)
	}
	for _, id := range ecs.GetEntitiesWith1[*components.ObstacleComponent](s.entityManager) {
		obstacle, _ := ecs.GetComponent[*components.ObstacleComponent](s.entityManager, id)
		if obstacle.Active {
			track(id, tagObstacle)
		}
	}
	for _, id := range ecs.GetEntitiesWith1[*components.PowerUpComponent](s.entityManager) {
		track(id, tagPowerUp)
	}

	for id, obj := range s.objects {
		if !seen[id] {
			s.space.Remove(obj)
			delete(s.objects, id)
		}
	}
}

// candidates 返回与玩家共享网格单元的障碍与道具，按实体 ID 排序
func (s *CollisionSystem) candidates(playerID ecs.EntityID) []ecs.EntityID {
	obj, ok := s.objects[playerID]
	if !ok {
		return nil
	}
	collision := obj.Check(0, 0, tagObstacle, tagPowerUp)
	if collision == nil {
		return nil
	}

	ids := make([]ecs.EntityID, 0, len(collision.Objects))
	for _, other := range collision.Objects {
		if id, ok := other.Data.(ecs.EntityID); ok {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *CollisionSystem) handleObstacle(playerID ecs.EntityID, playerBox Box, id ecs.EntityID) {
	obstacle, _ := ecs.GetComponent[*components.ObstacleComponent](s.entityManager, id)
	if !obstacle.Active {
		return
	}
	box, ok := WorldBox(s.entityManager, id)
	if !ok || !FootprintIntersects(playerBox, box) {
		return
	}

	player, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, playerID)
	if !ok {
		return
	}

	switch {
	case player.ShieldActive:
		s.spawnEffect(components.EffectDestruction, box.Center, s.config.Effect.DestructionLifetime)
		s.session.AddBonus(s.config.Obstacle.ShieldReward)
		RecycleObstacle(s.entityManager, s.config, s.session, s.rng, id)
		log.Printf("[CollisionSystem] Shield destroyed obstacle %d (+%d)", id, s.config.Obstacle.ShieldReward)

	case Airborne(s.entityManager, s.config, playerID):
		if !obstacle.Passed {
			obstacle.Passed = true
			s.session.AddBonus(s.config.Obstacle.JumpBonus)
		}

	case s.config.Obstacle.Damage <= 0:
		s.endSession(game.ReasonCrash)
		log.Printf("[CollisionSystem] Player crashed into obstacle %d", id)

	default:
		s.damagePlayer(playerID, s.config.Obstacle.Damage)
		RecycleObstacle(s.entityManager, s.config, s.session, s.rng, id)
		log.Printf("[CollisionSystem] Obstacle %d hit player for %d damage", id, s.config.Obstacle.Damage)
	}
}

func (s *CollisionSystem) handlePowerUp(playerID ecs.EntityID, playerBox Box, id ecs.EntityID) {
	box, ok := WorldBox(s.entityManager, id)
	if !ok || !AABBIntersects(playerBox, box) {
		return
	}
	powerUp, _ := ecs.GetComponent[*components.PowerUpComponent](s.entityManager, id)
	player, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, playerID)
	if !ok {
		return
	}

	switch powerUp.Type {
	case components.PowerUpShield:
		if s.config.PowerUp.AutoActivateShield {
			ActivateShield(s.entityManager, s.config, playerID)
		} else {
			player.ShieldCharges++
		}
	case components.PowerUpCurrency:
		s.session.Coins += s.config.PowerUp.CurrencyCoins
		s.session.AddBonus(s.config.PowerUp.CurrencyScore)
	case components.PowerUpReposition:
		player.RepositionCharges++
	}

	s.spawnEffect(components.EffectPickup, box.Center, s.config.Effect.PickupLifetime)
	s.entityManager.DestroyEntity(id)
	log.Printf("[CollisionSystem] Picked up %s power-up %d", powerUp.Type, id)
}

// handleProjectiles 子弹命中判定；护盾不阻挡子弹
func (s *CollisionSystem) handleProjectiles(playerID ecs.EntityID, playerBox Box, deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith3[*components.ProjectileComponent, *components.PositionComponent, *components.VelocityComponent](s.entityManager) {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)

		prev := pos.Pos.Sub(vel.Vel.Mul(deltaTime))
		if SegmentPointDistance(prev, pos.Pos, playerBox.Center) > proj.Radius {
			continue
		}

		s.entityManager.DestroyEntity(id)
		s.damagePlayer(playerID, proj.Damage)
		log.Printf("[CollisionSystem] Projectile %d hit player for %d damage", id, proj.Damage)
		if s.session.Over {
			return
		}
	}
}

// damagePlayer 扣除生命值，归零时结束本局
func (s *CollisionSystem) damagePlayer(playerID ecs.EntityID, damage int) {
	health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, playerID)
	if !ok || damage <= 0 {
		return
	}
	health.CurrentHealth -= damage
	if health.CurrentHealth < 0 {
		health.CurrentHealth = 0
	}
	s.session.Health = health.CurrentHealth
	if health.CurrentHealth == 0 {
		s.endSession(game.ReasonHealth)
	}
}

func (s *CollisionSystem) endSession(reason string) {
	if s.session.Over {
		return
	}
	s.session.Over = true
	s.session.Reason = reason
}

func (s *CollisionSystem) spawnEffect(kind components.EffectKind, pos mgl64.Vec3, lifetime float64) {
	if lifetime <= 0 {
		return
	}
	if _, err := entities.NewEffect(s.entityManager, kind, pos, lifetime); err != nil {
		log.Printf("[CollisionSystem] Warning: failed to spawn effect: %v", err)
	}
}
