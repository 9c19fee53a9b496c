package components

// HealthComponent 存储实体的生命值信息
// 用于玩家（Boss 子弹伤害）和 Boss
type HealthComponent struct {
	CurrentHealth int // 当前生命值
	MaxHealth     int // 最大生命值
}
