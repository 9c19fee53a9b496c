package components

// ObstacleComponent 标记障碍实体（公路上的车辆）
//
// 障碍属于固定大小的对象池：越过玩家所在深度后不会被销毁，
// 而是重置到远处（Normal 模式）或停放（Boss 模式，Active=false）。
type ObstacleComponent struct {
	Model  string // 模型名称，对应 data/models/<name>.yaml
	Active bool   // 是否在路面上；停放的障碍不移动、不参与碰撞
	Passed bool   // 本轮是否已被跳跃越过（防止重复发放跳跃奖励）
	// Recycles 被回收的次数（调试与测试用）
	Recycles int
}
