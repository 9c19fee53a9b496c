package components

// EffectKind 特效类型
type EffectKind int

const (
	// EffectDestruction 护盾撞毁障碍时的碎裂特效
	EffectDestruction EffectKind = iota
	// EffectPickup 拾取道具时的闪光
	EffectPickup
)

// EffectComponent 标记纯视觉特效实体
// 生命周期由 LifetimeComponent 控制，不参与碰撞
type EffectComponent struct {
	Kind EffectKind
}

// String 返回特效类型名称
func (k EffectKind) String() string {
	switch k {
	case EffectDestruction:
		return "destruction"
	case EffectPickup:
		return "pickup"
	default:
		return "effect"
	}
}
