package game

import (
	"github.com/go-gl/mathgl/mgl64"
)

// InputState 一帧的输入快照
//
// 键盘与触摸摇杆由前端（ebiten 场景、终端界面）采集，核心只消费这些值。
// 动作字段是离散事件：前端只在按下的那一帧置为 true。
type InputState struct {
	MoveLeft    bool
	MoveRight   bool
	LateralAxis float64 // 摇杆横向分量 [-1, 1]，0 表示无输入

	Jump       bool
	Shield     bool
	Reposition bool
}

// Axis 合成横向输入：摇杆优先，否则取左右键
func (in InputState) Axis() float64 {
	if in.LateralAxis != 0 {
		if in.LateralAxis > 1 {
			return 1
		}
		if in.LateralAxis < -1 {
			return -1
		}
		return in.LateralAxis
	}
	axis := 0.0
	if in.MoveLeft {
		axis--
	}
	if in.MoveRight {
		axis++
	}
	return axis
}

// Stats 每帧推送给显示层的数值
type Stats struct {
	Score     int
	HighScore int
	Coins     int
	Distance  float64
	Speed     float64
	Health    int
	MaxHealth int

	Mode          Mode
	BossRemaining float64 // Boss 倒计时剩余，仅 ModeBoss 有效

	ShieldActive      bool
	ShieldRemaining   float64
	ShieldCharges     int
	RepositionCharges int

	Paused bool
}

// Summary 一局结束时的结算信息
type Summary struct {
	RunID        string
	Reason       string
	Score        int
	Coins        int
	Distance     float64
	HighScore    int
	NewHighScore bool
	BossCleared  bool
}

// Display 显示层：分数、血条、Boss 倒计时、结算界面
type Display interface {
	UpdateStats(stats Stats)
	ShowBossBanner(active bool)
	ShowGameOver(summary Summary)
}

// EntityKind 渲染快照中的实体类别
type EntityKind int

const (
	KindPlayer EntityKind = iota
	KindObstacle
	KindPowerUp
	KindProjectile
	KindBoss
	KindGround
	KindEffect
)

// ViewEntity 单个实体的渲染快照
type ViewEntity struct {
	ID    uint64
	Kind  EntityKind
	Label string     // 模型名或道具类型
	Pos   mgl64.Vec3 // 包围盒中心
	Size  mgl64.Vec3 // 已缩放的包围盒尺寸
	Color string     // #RRGGBB，可能为空

	Shielded bool    // 仅玩家
	Progress float64 // 特效已播放比例 [0, 1]
}

// View 一帧的渲染快照：路面地块在前，其余实体按 Z 从远到近排序
type View struct {
	Stats    Stats
	Entities []ViewEntity
}

// Renderer 渲染边界：游戏循环每个 tick 调用一次 Render
type Renderer interface {
	Render(view *View)
}

// NopDisplay 丢弃所有显示更新（无界面运行时使用）
type NopDisplay struct{}

func (NopDisplay) UpdateStats(Stats)    {}
func (NopDisplay) ShowBossBanner(bool)  {}
func (NopDisplay) ShowGameOver(Summary) {}

// NopRenderer 丢弃渲染快照
type NopRenderer struct{}

func (NopRenderer) Render(*View) {}
