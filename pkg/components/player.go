package components

// PlayerComponent 标记玩家角色实体，存储道具与动作状态
// 生命值存放在 HealthComponent，位置存放在 PositionComponent
type PlayerComponent struct {
	// 护盾：激活期间撞击障碍不会致死
	ShieldActive    bool
	ShieldRemaining float64 // 护盾剩余时间（秒）

	// 加速：护盾激活时附带的速度加成标记
	BoostActive bool

	// 跳跃：JumpElapsed 从 0 增长到跳跃总时长
	Jumping     bool
	JumpElapsed float64

	// 已收集但未使用的道具（对应原型中的 A/B 手柄按钮计数）
	ShieldCharges     int
	RepositionCharges int
}
