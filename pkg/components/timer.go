package components

// TimerComponent 通用倒计时累加器
// 用于处理周期性行为（障碍生成、道具生成、Boss 开火、Boss 追踪）
// 每帧由所属系统累加 CurrentTime，达到 TargetTime 时触发一次
type TimerComponent struct {
	Name        string  // 计时器名称，如 "obstacle_spawn"
	TargetTime  float64 // 目标时间（秒）
	CurrentTime float64 // 当前已过时间（秒）
	IsReady     bool    // 本帧是否触发
}
