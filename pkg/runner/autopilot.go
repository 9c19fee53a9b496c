package runner

import (
	"math"

	"github.com/decker502/highway/pkg/game"
)

// Autopilot 基于渲染快照的简单驾驶策略
//
// 供无界面验证工具和演示模式使用：躲避前方最近的障碍，
// 躲不开时优先用护盾，其次起跳；没有威胁时追向道具。
type Autopilot struct {
	LateralLimit float64 // 玩家横向范围 [-limit, limit]
	LookAhead    float64 // 关注玩家前方多远的障碍
	JumpWindow   float64 // 障碍进入该距离内且仍在路线上时起跳
}

// NewAutopilot 按调参档案创建自动驾驶
func NewAutopilot(r *Runner) Autopilot {
	return Autopilot{
		LateralLimit: r.Config().Player.LateralLimit,
		LookAhead:    30,
		JumpWindow:   4,
	}
}

// Input 根据当前快照计算下一帧输入
func (a Autopilot) Input(view *game.View) game.InputState {
	var in game.InputState
	if view == nil {
		return in
	}

	player, ok := findKind(view, game.KindPlayer)
	if !ok {
		return in
	}

	var threat *game.ViewEntity
	for i := range view.Entities {
		e := &view.Entities[i]
		if e.Kind != game.KindObstacle {
			continue
		}
		ahead := player.Pos.Z() - e.Pos.Z()
		if ahead < -e.Size.Z()/2 || ahead > a.LookAhead {
			continue
		}
		if !laneOverlap(player, *e, 0.3) {
			continue
		}
		if threat == nil || e.Pos.Z() > threat.Pos.Z() {
			threat = e
		}
	}

	if threat == nil {
		if target, ok := a.nearestPowerUp(view, player); ok {
			in.LateralAxis = steer(player.Pos.X(), target.Pos.X())
		}
		return in
	}

	if view.Stats.ShieldCharges > 0 && !view.Stats.ShieldActive {
		in.Shield = true
		return in
	}

	// 选择离开障碍所需位移更小且不越界的一侧
	clear := (player.Size.X()+threat.Size.X())/2 + 0.5
	left := threat.Pos.X() - clear
	right := threat.Pos.X() + clear
	target := left
	if left < -a.LateralLimit || (right <= a.LateralLimit && math.Abs(right-player.Pos.X()) < math.Abs(left-player.Pos.X())) {
		target = right
	}
	if target < -a.LateralLimit || target > a.LateralLimit {
		target = player.Pos.X()
	}
	in.LateralAxis = steer(player.Pos.X(), target)

	if player.Pos.Z()-threat.Pos.Z() < a.JumpWindow+threat.Size.Z()/2 {
		in.Jump = true
	}
	return in
}

func (a Autopilot) nearestPowerUp(view *game.View, player game.ViewEntity) (game.ViewEntity, bool) {
	var best game.ViewEntity
	found := false
	for _, e := range view.Entities {
		if e.Kind != game.KindPowerUp || e.Pos.Z() > player.Pos.Z() {
			continue
		}
		if player.Pos.Z()-e.Pos.Z() > a.LookAhead {
			continue
		}
		if !found || e.Pos.Z() > best.Pos.Z() {
			best = e
			found = true
		}
	}
	return best, found
}

func findKind(view *game.View, kind game.EntityKind) (game.ViewEntity, bool) {
	for _, e := range view.Entities {
		if e.Kind == kind {
			return e, true
		}
	}
	return game.ViewEntity{}, false
}

// laneOverlap 两个实体在横向上是否重叠（含 margin 余量）
func laneOverlap(a, b game.ViewEntity, margin float64) bool {
	return math.Abs(a.Pos.X()-b.Pos.X()) < (a.Size.X()+b.Size.X())/2+margin
}

// steer 把横向偏差转换为摇杆值，接近目标时减速
func steer(x, target float64) float64 {
	d := target - x
	if math.Abs(d) < 0.05 {
		return 0
	}
	return math.Max(-1, math.Min(1, d))
}
