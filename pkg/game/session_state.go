package game

import (
	"log"
	"math"

	"github.com/decker502/highway/pkg/components"
	"github.com/decker502/highway/pkg/config"
	"github.com/decker502/highway/pkg/ecs"
	"github.com/google/uuid"
)

// Mode 会话模式
type Mode int

const (
	// ModeNormal 普通跑酷：生成障碍，不发射弹幕
	ModeNormal Mode = iota
	// ModeBoss Boss 遭遇战：暂停障碍生成，Boss 周期性开火
	ModeBoss
)

// String 返回模式名称
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeBoss:
		return "boss"
	default:
		return "unknown"
	}
}

// 计时器名称
const (
	TimerObstacleSpawn = "obstacle_spawn"
	TimerPowerUpSpawn  = "powerup_spawn"
	TimerBossFire      = "boss_fire"
	TimerBossTrack     = "boss_track"
)

// 游戏结束原因
const (
	ReasonCrash  = "crash"  // 无护盾撞击障碍
	ReasonHealth = "health" // 生命值归零
)

// SessionState 一局游戏的全部可变状态
//
// 由游戏循环独占，按引用传给每个系统；系统之间不共享其他全局变量。
// 所有周期行为都是 TimerComponent 累加器，只在 tick 内推进，
// 因此暂停时它们自然冻结，结束时 Teardown 一并清零。
type SessionState struct {
	RunID string

	Active bool // Start 之后、Teardown 之前为 true
	Paused bool
	Over   bool
	Reason string // 结束原因，Over 为 true 时有效

	Mode Mode

	// 计分
	Distance float64
	Bonus    int // 奖励分（拾取货币、护盾撞毁、跳跃越过、Boss 通关）
	Score    int // floor(Distance*PointsPerDistance) + Bonus
	Coins    int
	Speed    float64 // 当前基础速度（不含护盾加成）

	// ScrollSpeed 本帧实际滚动速度（含护盾加成），由计分系统写入
	ScrollSpeed float64

	distancePoints int

	// 生命值镜像，权威值在玩家实体的 HealthComponent 中
	Health    int
	MaxHealth int

	// Boss
	BossCompleted bool    // 本局是否已经完成过 Boss 战
	BossCountdown float64 // 剩余倒计时（显示单位）
	BossEntity    ecs.EntityID
	BossPending   bool // 已请求 Boss 模型、尚未就绪

	PlayerEntity ecs.EntityID

	// 难度：当前障碍生成间隔与下一个里程碑距离
	ObstacleInterval float64
	NextMilestone    float64

	ObstacleTimer  *components.TimerComponent
	PowerUpTimer   *components.TimerComponent
	BossFireTimer  *components.TimerComponent
	BossTrackTimer *components.TimerComponent
}

// NewSessionState 创建一个未开始的会话
func NewSessionState() *SessionState {
	return &SessionState{}
}

// Reset 按调参档案重置为一局新游戏的初始状态，并分配新的 RunID
func (s *SessionState) Reset(cfg *config.TuningConfig) {
	*s = SessionState{
		RunID:            uuid.NewString(),
		Active:           true,
		Mode:             ModeNormal,
		Speed:            cfg.Speed.Initial,
		ScrollSpeed:      cfg.Speed.Initial,
		Health:           cfg.Player.MaxHealth,
		MaxHealth:        cfg.Player.MaxHealth,
		ObstacleInterval: cfg.Obstacle.SpawnInterval,
		NextMilestone:    cfg.Obstacle.DifficultyMilestone,
		ObstacleTimer: &components.TimerComponent{
			Name:       TimerObstacleSpawn,
			TargetTime: cfg.Obstacle.SpawnInterval,
		},
		PowerUpTimer: &components.TimerComponent{
			Name:       TimerPowerUpSpawn,
			TargetTime: cfg.PowerUp.SpawnInterval,
		},
		BossFireTimer: &components.TimerComponent{
			Name:       TimerBossFire,
			TargetTime: cfg.Boss.FireInterval,
		},
		BossTrackTimer: &components.TimerComponent{
			Name:       TimerBossTrack,
			TargetTime: cfg.Boss.TrackInterval,
		},
	}
	log.Printf("[SessionState] Session %s reset (speed=%.1f, health=%d)", s.RunID, s.Speed, s.Health)
}

// Teardown 结束会话：停止全部计时器，之后的 tick 不再推进任何状态
// 计分字段保留，供结算界面读取
func (s *SessionState) Teardown() {
	s.Active = false
	s.BossPending = false
	for _, timer := range s.Timers() {
		if timer != nil {
			timer.CurrentTime = 0
			timer.IsReady = false
		}
	}
}

// Timers 返回全部周期计时器
func (s *SessionState) Timers() []*components.TimerComponent {
	return []*components.TimerComponent{s.ObstacleTimer, s.PowerUpTimer, s.BossFireTimer, s.BossTrackTimer}
}

// Running 会话是否处于推进状态（已开始、未暂停、未结束）
func (s *SessionState) Running() bool {
	return s.Active && !s.Paused && !s.Over
}

// AddBonus 增加奖励分并刷新总分
func (s *SessionState) AddBonus(points int) {
	if points <= 0 {
		return
	}
	s.Bonus += points
	s.Score = s.distancePoints + s.Bonus
}

// AddDistance 增加行驶距离并按 pointsPerDistance 刷新总分
// 距离只增不减，因此总分同样单调不减
func (s *SessionState) AddDistance(d, pointsPerDistance float64) {
	if d <= 0 {
		return
	}
	s.Distance += d
	if points := int(math.Floor(s.Distance * pointsPerDistance)); points > s.distancePoints {
		s.distancePoints = points
	}
	s.Score = s.distancePoints + s.Bonus
}
