package components

// LifetimeComponent 短命实体（护盾撞毁障碍的碎裂特效、拾取闪光）的存活计时
type LifetimeComponent struct {
	Duration float64 // 存活时长（秒）
	Elapsed  float64 // 已存活时间（秒）
	Expired  bool
}

// Progress 返回 [0, 1] 的存活进度，渲染层用于淡出
func (l *LifetimeComponent) Progress() float64 {
	if l.Duration <= 0 {
		return 1
	}
	p := l.Elapsed / l.Duration
	if p > 1 {
		return 1
	}
	return p
}
