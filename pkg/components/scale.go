package components

// ScaleComponent 存储实体级别的统一缩放因子
// 用于碰撞盒计算和渲染（如护盾激活时角色放大到 1.5 倍）
type ScaleComponent struct {
	// Factor 缩放因子（1.0 = 原始大小）
	Factor float64
	// Base 会话开始时的缩放，护盾结束后恢复到该值
	Base float64
}
