// Package runner 实现游戏循环：持有会话状态与全部系统，按固定顺序推进一个 tick。
//
// 前端（ebiten 场景、终端界面、无界面验证工具）只做三件事：
// 每帧采集输入快照、调用 Tick、实现 Display 与 Renderer。
package runner

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/decker502/highway/pkg/config"
	"github.com/decker502/highway/pkg/ecs"
	"github.com/decker502/highway/pkg/entities"
	"github.com/decker502/highway/pkg/game"
	"github.com/decker502/highway/pkg/systems"
)

// playerRetryDelay 玩家模型加载失败后重新请求前的等待时间（秒）
const playerRetryDelay = 1.0

// Deps 游戏循环的外部依赖
// 除 Loader 外都可以为空，空值使用无操作实现或内存存储
type Deps struct {
	Loader     game.ModelLoader
	Display    game.Display
	Renderer   game.Renderer
	HighScores *game.HighScoreStore
	Rng        *rand.Rand
}

// Runner 游戏循环
//
// 一个 tick 的顺序：
//
//	动作 → 玩家移动 → 速度/计分 → 路面滚动 → 模式控制 → 生成/回收 →
//	实体移动 → 碰撞 → 生命周期 → 清理实体 → 显示/渲染
//
// 暂停或结束后只渲染，不推进任何状态；玩家放置之前同样不推进。
// 统计数据只在变化时推送给显示层。
type Runner struct {
	config        *config.TuningConfig
	deps          Deps
	entityManager *ecs.EntityManager
	session       *game.SessionState

	abilitySystem        *systems.AbilitySystem
	playerMovementSystem *systems.PlayerMovementSystem
	scoreSystem          *systems.ScoreSystem
	scrollSystem         *systems.ScrollSystem
	bossSystem           *systems.BossSystem
	spawnSystem          *systems.SpawnSystem
	movementSystem       *systems.MovementSystem
	collisionSystem      *systems.CollisionSystem
	lifetimeSystem       *systems.LifetimeSystem

	playerLoad  *game.LoadHandle
	playerRetry float64

	lastMode      game.Mode
	gameOverShown bool
	summary       *game.Summary

	lastStats   game.Stats
	statsPushed bool
}

// New 创建游戏循环；调用 Start 后才开始一局
func New(cfg *config.TuningConfig, deps Deps) (*Runner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("tuning config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tuning config: %w", err)
	}
	if deps.Loader == nil {
		return nil, fmt.Errorf("model loader is required")
	}
	if deps.Display == nil {
		deps.Display = game.NopDisplay{}
	}
	if deps.Renderer == nil {
		deps.Renderer = game.NopRenderer{}
	}
	if deps.HighScores == nil {
		deps.HighScores = game.NewHighScoreStoreOn(nil)
	}
	if deps.Rng == nil {
		deps.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	em := ecs.NewEntityManager()
	session := game.NewSessionState()

	r := &Runner{
		config:        cfg,
		deps:          deps,
		entityManager: em,
		session:       session,

		abilitySystem:        systems.NewAbilitySystem(em, cfg, session, deps.Rng),
		playerMovementSystem: systems.NewPlayerMovementSystem(em, cfg, session),
		scoreSystem:          systems.NewScoreSystem(em, cfg, session),
		scrollSystem:         systems.NewScrollSystem(em, cfg, session),
		bossSystem:           systems.NewBossSystem(em, cfg, session, deps.Loader),
		spawnSystem:          systems.NewSpawnSystem(em, cfg, session, deps.Loader, deps.Rng),
		movementSystem:       systems.NewMovementSystem(em, cfg, session, deps.Rng),
		collisionSystem:      systems.NewCollisionSystem(em, cfg, session, deps.Rng),
		lifetimeSystem:       systems.NewLifetimeSystem(em),
	}
	return r, nil
}

// Start 开始新的一局：重置会话、铺设路面并异步加载玩家模型
// 已在进行中的一局会被忽略（重开请用 Restart）
func (r *Runner) Start() {
	if r.session.Active {
		log.Printf("[Runner] Warning: Start ignored, session %s already active", r.session.RunID)
		return
	}

	r.clearWorld()
	r.session.Reset(r.config)
	r.lastMode = game.ModeNormal
	r.gameOverShown = false
	r.summary = nil
	r.statsPushed = false

	if _, err := entities.NewGroundTiles(r.entityManager, r.config); err != nil {
		log.Printf("[Runner] Warning: failed to create ground: %v", err)
	}
	r.requestPlayer()
	log.Printf("[Runner] Session %s started", r.session.RunID)
}

// Restart 结束当前一局并立即开始新的一局
func (r *Runner) Restart() {
	r.Teardown()
	r.Start()
}

// Teardown 结束会话：清空实体、碰撞网格、未完成的加载和全部计时器
func (r *Runner) Teardown() {
	r.clearWorld()
	r.session.Teardown()
	log.Printf("[Runner] Session %s torn down", r.session.RunID)
}

// Abandon 中途放弃当前一局：提交最高分后结束会话，不显示结算界面
// 关闭窗口或返回主菜单时调用；没有进行中的一局时什么都不做，
// 玩家从未放置时只结束会话，不提交
func (r *Runner) Abandon() error {
	if !r.session.Active || r.session.Over {
		return nil
	}
	if !r.PlayerReady() {
		r.Teardown()
		return nil
	}
	_, err := r.deps.HighScores.Commit(r.session.Score, r.session.RunID)
	r.Teardown()
	if err != nil {
		return fmt.Errorf("abandon session %s: %w", r.session.RunID, err)
	}
	return nil
}

func (r *Runner) clearWorld() {
	r.entityManager.Clear()
	r.collisionSystem.Reset()
	r.spawnSystem.Reset()
	r.bossSystem.Reset()
	r.playerLoad = nil
	r.playerRetry = 0
}

// Pause 暂停；未开始或已结束时无效
func (r *Runner) Pause() bool {
	if !r.session.Active || r.session.Over {
		log.Printf("[Runner] Warning: Pause ignored, no running session")
		return false
	}
	if !r.session.Paused {
		r.session.Paused = true
		log.Printf("[Runner] Paused")
	}
	return true
}

// Resume 从暂停中恢复
func (r *Runner) Resume() bool {
	if !r.session.Active || r.session.Over {
		log.Printf("[Runner] Warning: Resume ignored, no running session")
		return false
	}
	if r.session.Paused {
		r.session.Paused = false
		log.Printf("[Runner] Resumed")
	}
	return true
}

// TogglePause 在暂停与运行之间切换
func (r *Runner) TogglePause() bool {
	if r.session.Paused {
		return r.Resume()
	}
	return r.Pause()
}

// ForceEndBoss 立即结束 Boss 战
func (r *Runner) ForceEndBoss() bool {
	if !r.session.Running() {
		return false
	}
	ended := r.bossSystem.ForceEnd()
	r.checkModeChange()
	return ended
}

// Tick 推进一帧
// dt 被限制在 [0, speed.maxDelta]，长时间卡顿或切回前台后实体不会跳跃
func (r *Runner) Tick(dt float64, in game.InputState) {
	if dt < 0 {
		dt = 0
	}
	if dt > r.config.Speed.MaxDelta {
		dt = r.config.Speed.MaxDelta
	}

	if r.session.Running() {
		r.pollPlayer(dt)
		if r.PlayerReady() {
			r.step(dt, in)
			r.entityManager.RemoveMarkedEntities()
			r.checkModeChange()
			if r.session.Over && !r.gameOverShown {
				r.finish()
			}
		}
	}

	r.pushStats()
	r.deps.Renderer.Render(r.View())
}

// pushStats 统计数据与上次推送的不同时才通知显示层
func (r *Runner) pushStats() {
	stats := r.Stats()
	if r.statsPushed && stats == r.lastStats {
		return
	}
	r.lastStats = stats
	r.statsPushed = true
	r.deps.Display.UpdateStats(stats)
}

func (r *Runner) step(dt float64, in game.InputState) {
	r.guard("AbilitySystem", func() { r.abilitySystem.Update(dt, in) })
	r.guard("PlayerMovementSystem", func() { r.playerMovementSystem.Update(dt, in) })
	r.guard("ScoreSystem", func() { r.scoreSystem.Update(dt) })
	r.guard("ScrollSystem", func() { r.scrollSystem.Update(dt) })
	r.guard("BossSystem", func() { r.bossSystem.Update(dt) })
	r.guard("SpawnSystem", func() { r.spawnSystem.Update(dt) })
	r.guard("MovementSystem", func() { r.movementSystem.Update(dt) })
	r.guard("CollisionSystem", func() { r.collisionSystem.Update(dt) })
	r.guard("LifetimeSystem", func() { r.lifetimeSystem.Update(dt) })
}

// guard 隔离单个系统的 panic：记录日志后继续下一个系统
func (r *Runner) guard(name string, update func()) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[Runner] Warning: %s panicked: %v (system skipped this tick)", name, rec)
		}
	}()
	update()
}

// requestPlayer 请求玩家模型，加载完成后在 pollPlayer 中创建实体
func (r *Runner) requestPlayer() {
	r.playerLoad = r.deps.Loader.LoadModel(r.config.Player.Model)
}

func (r *Runner) pollPlayer(dt float64) {
	if r.session.PlayerEntity != ecs.InvalidEntity {
		return
	}
	if r.playerLoad == nil {
		r.playerRetry -= dt
		if r.playerRetry <= 0 {
			r.requestPlayer()
		}
		return
	}
	if !r.playerLoad.Done() {
		return
	}

	h := r.playerLoad
	r.playerLoad = nil
	desc, err := h.Result()
	if err != nil {
		log.Printf("[Runner] Warning: player model %s failed to load, retrying in %.1fs: %v", h.Name(), playerRetryDelay, err)
		r.playerRetry = playerRetryDelay
		return
	}
	id, err := entities.NewPlayer(r.entityManager, r.config, desc)
	if err != nil {
		log.Printf("[Runner] Warning: failed to create player: %v", err)
		r.playerRetry = playerRetryDelay
		return
	}
	r.session.PlayerEntity = id
}

// checkModeChange 模式切换时通知显示层
func (r *Runner) checkModeChange() {
	if r.session.Mode == r.lastMode {
		return
	}
	r.lastMode = r.session.Mode
	r.deps.Display.ShowBossBanner(r.session.Mode == game.ModeBoss)
}

// finish 结算：提交最高分、通知显示层、停止计时器
func (r *Runner) finish() {
	r.gameOverShown = true

	newHigh, err := r.deps.HighScores.Commit(r.session.Score, r.session.RunID)
	if err != nil {
		log.Printf("[Runner] Warning: %v", err)
	}
	summary := game.Summary{
		RunID:        r.session.RunID,
		Reason:       r.session.Reason,
		Score:        r.session.Score,
		Coins:        r.session.Coins,
		Distance:     r.session.Distance,
		HighScore:    r.deps.HighScores.HighScore(),
		NewHighScore: newHigh,
		BossCleared:  r.session.BossCompleted,
	}
	r.summary = &summary

	r.session.Teardown()
	r.spawnSystem.Reset()
	r.bossSystem.Reset()
	r.playerLoad = nil

	log.Printf("[Runner] Game over (%s): score=%d distance=%.0f high=%d",
		summary.Reason, summary.Score, summary.Distance, summary.HighScore)
	r.deps.Display.ShowGameOver(summary)
}

// Session 返回会话状态（只读使用）
func (r *Runner) Session() *game.SessionState {
	return r.session
}

// EntityManager 返回实体管理器
func (r *Runner) EntityManager() *ecs.EntityManager {
	return r.entityManager
}

// Config 返回调参档案
func (r *Runner) Config() *config.TuningConfig {
	return r.config
}

// Summary 返回最近一局的结算信息，本局未结束时返回 false
func (r *Runner) Summary() (game.Summary, bool) {
	if r.summary == nil {
		return game.Summary{}, false
	}
	return *r.summary, true
}

// PlayerReady 玩家模型是否已加载并放置
func (r *Runner) PlayerReady() bool {
	return r.session.PlayerEntity != ecs.InvalidEntity
}
