package components

// BossComponent 标记 Boss 实体
// 每局最多出现一次，由 BossSystem 创建和移除
type BossComponent struct {
	Model string
	// TargetX 最近一次追踪计算得到的横向目标位置
	TargetX float64
	// ShotsFired 本次遭遇战已发射的子弹数
	ShotsFired int
}
