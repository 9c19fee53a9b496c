package systems

import (
	"math"

	"github.com/decker502/highway/pkg/config"
)

// DifficultyEngine 难度引擎
// 按行驶距离计算障碍生成间隔：每跨过一个里程碑，间隔乘以 difficultyFactor，不低于 minSpawnInterval
type DifficultyEngine struct {
	obstacle config.ObstacleConfig
}

// NewDifficultyEngine 创建新的难度引擎实例
func NewDifficultyEngine(obstacle config.ObstacleConfig) *DifficultyEngine {
	return &DifficultyEngine{obstacle: obstacle}
}

// Enabled 里程碑长度 <= 0 时难度不随距离变化
func (d *DifficultyEngine) Enabled() bool {
	return d.obstacle.DifficultyMilestone > 0
}

// MilestonesCrossed 计算 distance 已跨过几个尚未处理的里程碑
// 参数:
//
//	distance - 当前行驶距离
//	nextMilestone - 下一个待处理的里程碑
//
// 返回:
//
//	跨过的里程碑数量与新的 nextMilestone
func (d *DifficultyEngine) MilestonesCrossed(distance, nextMilestone float64) (int, float64) {
	if !d.Enabled() {
		return 0, nextMilestone
	}
	steps := 0
	for distance >= nextMilestone {
		nextMilestone += d.obstacle.DifficultyMilestone
		steps++
	}
	return steps, nextMilestone
}

// NextInterval 连续应用 steps 次难度系数后的生成间隔
func (d *DifficultyEngine) NextInterval(interval float64, steps int) float64 {
	for i := 0; i < steps; i++ {
		interval = math.Max(d.obstacle.MinSpawnInterval, interval*d.obstacle.DifficultyFactor)
	}
	return interval
}
