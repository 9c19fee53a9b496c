package components

import "fmt"

// PowerUpType 道具类型
type PowerUpType int

const (
	// PowerUpShield 护盾：收集后进入库存，激活后一段时间内免疫障碍
	PowerUpShield PowerUpType = iota
	// PowerUpCurrency 货币（原型中的比特币）：增加金币和分数
	PowerUpCurrency
	// PowerUpReposition 换位药水：收集后进入库存，使用时随机横向瞬移
	PowerUpReposition
)

// AllPowerUpTypes 按固定顺序列出所有道具类型（加权随机时使用）
var AllPowerUpTypes = []PowerUpType{PowerUpShield, PowerUpCurrency, PowerUpReposition}

// String 返回道具类型的配置键名
func (t PowerUpType) String() string {
	switch t {
	case PowerUpShield:
		return "shield"
	case PowerUpCurrency:
		return "currency"
	case PowerUpReposition:
		return "reposition"
	default:
		return fmt.Sprintf("PowerUpType(%d)", int(t))
	}
}

// PowerUpComponent 标记道具实体，碰撞后立即被移除
type PowerUpComponent struct {
	Type  PowerUpType
	Model string
}
