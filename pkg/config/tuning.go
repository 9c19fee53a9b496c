package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// DefaultProfileName 内置调参档案名称
const DefaultProfileName = "highway"

// Vec3Config YAML 中的三维向量
type Vec3Config struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Vec3 转换为 mgl64 向量
func (v Vec3Config) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// TuningConfig 一局游戏的全部可调参数
//
// 不同原型之间的常量（护盾时长、跳跃奖励阈值、生成频率等）并不一致，
// 因此全部作为配置，由 data/tuning.yaml 中的命名档案提供。
// 速度、距离单位均为"单位/秒"，时间均为秒。
type TuningConfig struct {
	Speed    SpeedConfig    `yaml:"speed"`
	Player   PlayerConfig   `yaml:"player"`
	Ground   GroundConfig   `yaml:"ground"`
	Obstacle ObstacleConfig `yaml:"obstacle"`
	PowerUp  PowerUpConfig  `yaml:"powerUp"`
	Shield   ShieldConfig   `yaml:"shield"`
	Boss     BossConfig     `yaml:"boss"`
	Effect   EffectConfig   `yaml:"effect"`
}

// SpeedConfig 滚动速度与计分
type SpeedConfig struct {
	Initial           float64 `yaml:"initial"`           // 初始速度
	Max               float64 `yaml:"max"`               // 速度上限（不含护盾加速）
	Increment         float64 `yaml:"increment"`         // 每秒速度增量
	DistanceScale     float64 `yaml:"distanceScale"`     // 距离 = 速度 × 时间 × DistanceScale
	PointsPerDistance float64 `yaml:"pointsPerDistance"` // 每单位距离的得分
	MaxDelta          float64 `yaml:"maxDelta"`          // 单帧最大时间步长，防止恢复后实体跳跃
}

// PlayerConfig 玩家角色
type PlayerConfig struct {
	Model         string     `yaml:"model"`
	StartPosition Vec3Config `yaml:"startPosition"`
	Scale         float64    `yaml:"scale"`
	LateralLimit  float64    `yaml:"lateralLimit"` // 横向移动范围 [-limit, limit]
	LateralSpeed  float64    `yaml:"lateralSpeed"`
	JumpHeight    float64    `yaml:"jumpHeight"`
	JumpDuration  float64    `yaml:"jumpDuration"`
	MaxHealth     int        `yaml:"maxHealth"`
}

// GroundConfig 循环路面
type GroundConfig struct {
	TileLength float64 `yaml:"tileLength"`
	TileCount  int     `yaml:"tileCount"`
	Width      float64 `yaml:"width"`
}

// ObstacleConfig 障碍生成与回收
type ObstacleConfig struct {
	Models              []string `yaml:"models"`
	PoolSize            int      `yaml:"poolSize"`      // 同时存在的障碍上限（原型中为 1~3）
	SpawnInterval       float64  `yaml:"spawnInterval"` // 生成计时间隔
	SpawnChance         float64  `yaml:"spawnChance"`   // 计时触发时实际生成的概率
	SpawnDepth          float64  `yaml:"spawnDepth"`    // 生成/回收后的 Z 坐标
	RecycleDepth        float64  `yaml:"recycleDepth"`  // Z 超过该值即回收
	MinGap              float64  `yaml:"minGap"`        // 相邻障碍的最小 Z 间距
	LateralRange        float64  `yaml:"lateralRange"`
	Damage              int      `yaml:"damage"`        // 0 表示撞击即结束；>0 表示扣血并回收
	ShieldReward        int      `yaml:"shieldReward"`  // 护盾撞毁障碍的奖励分
	JumpBonus           int      `yaml:"jumpBonus"`     // 跳跃越过障碍的奖励分
	JumpClearance       float64  `yaml:"jumpClearance"` // 玩家离地高度超过该值视为越过
	DifficultyMilestone float64  `yaml:"difficultyMilestone"`
	DifficultyFactor    float64  `yaml:"difficultyFactor"`
	MinSpawnInterval    float64  `yaml:"minSpawnInterval"`
}

// PowerUpConfig 道具生成与效果
type PowerUpConfig struct {
	SpawnInterval      float64            `yaml:"spawnInterval"`
	SpawnChance        float64            `yaml:"spawnChance"`
	SpawnDepth         float64            `yaml:"spawnDepth"`
	RemoveDepth        float64            `yaml:"removeDepth"`
	LateralRange       float64            `yaml:"lateralRange"`
	Height             float64            `yaml:"height"`
	Weights            map[string]float64 `yaml:"weights"` // 道具类型 -> 权重
	Models             map[string]string  `yaml:"models"`  // 道具类型 -> 模型名
	CurrencyScore      int                `yaml:"currencyScore"`
	CurrencyCoins      int                `yaml:"currencyCoins"`
	RepositionStep     float64            `yaml:"repositionStep"`
	AutoActivateShield bool               `yaml:"autoActivateShield"`
	SpawnDuringBoss    bool               `yaml:"spawnDuringBoss"`
}

// ShieldConfig 护盾
type ShieldConfig struct {
	Duration   float64 `yaml:"duration"`
	SpeedBoost float64 `yaml:"speedBoost"`
	Scale      float64 `yaml:"scale"` // 护盾期间角色缩放（相对基础缩放的倍数）
}

// BossConfig Boss 遭遇战
type BossConfig struct {
	Model            string  `yaml:"model"`
	TriggerDistance  float64 `yaml:"triggerDistance"`
	Countdown        float64 `yaml:"countdown"`     // 倒计时初值（显示单位）
	CountdownRate    float64 `yaml:"countdownRate"` // 每秒减少的倒计时单位
	FireInterval     float64 `yaml:"fireInterval"`
	TrackInterval    float64 `yaml:"trackInterval"`
	TrackStep        float64 `yaml:"trackStep"` // 每次追踪最多横移的距离
	Depth            float64 `yaml:"depth"`
	MaxHealth        int     `yaml:"maxHealth"`
	ProjectileSpeed  float64 `yaml:"projectileSpeed"`
	ProjectileRange  float64 `yaml:"projectileRange"`
	ProjectileDamage int     `yaml:"projectileDamage"`
	HitRadius        float64 `yaml:"hitRadius"`
	CompletionBonus  int     `yaml:"completionBonus"`
}

// EffectConfig 视觉特效
type EffectConfig struct {
	DestructionLifetime float64 `yaml:"destructionLifetime"`
	PickupLifetime      float64 `yaml:"pickupLifetime"`
}

// DefaultTuning 返回内置的默认档案
// 数值来自最后可运行的原型（速度 0.5→1.3/帧、跳跃 2 单位 1 秒、障碍池 3 个）
func DefaultTuning() *TuningConfig {
	return &TuningConfig{
		Speed: SpeedConfig{
			Initial:           30,
			Max:               78,
			Increment:         6,
			DistanceScale:     1,
			PointsPerDistance: 1,
			MaxDelta:          0.1,
		},
		Player: PlayerConfig{
			Model:        "character",
			Scale:        1.3,
			LateralLimit: 5,
			LateralSpeed: 12,
			JumpHeight:   2,
			JumpDuration: 1,
			MaxHealth:    100,
		},
		Ground: GroundConfig{
			TileLength: 50,
			TileCount:  3,
			Width:      60,
		},
		Obstacle: ObstacleConfig{
			Models:              []string{"car"},
			PoolSize:            3,
			SpawnInterval:       6,
			SpawnChance:         1,
			SpawnDepth:          -120,
			RecycleDepth:        6,
			MinGap:              50,
			LateralRange:        5,
			Damage:              0,
			ShieldReward:        500,
			JumpBonus:           100,
			JumpClearance:       1.0,
			DifficultyMilestone: 1000,
			DifficultyFactor:    0.9,
			MinSpawnInterval:    2,
		},
		PowerUp: PowerUpConfig{
			SpawnInterval: 10,
			SpawnChance:   1,
			SpawnDepth:    -120,
			RemoveDepth:   6,
			LateralRange:  5,
			Height:        0.5,
			Weights: map[string]float64{
				"shield":     1,
				"currency":   1,
				"reposition": 1,
			},
			Models: map[string]string{
				"shield":     "shield",
				"currency":   "bitcoin",
				"reposition": "potion",
			},
			CurrencyScore:  5000,
			CurrencyCoins:  1,
			RepositionStep: 5,
		},
		Shield: ShieldConfig{
			Duration:   5,
			SpeedBoost: 30,
			Scale:      1.5,
		},
		Boss: BossConfig{
			Model:            "boss",
			TriggerDistance:  3000,
			Countdown:        200,
			CountdownRate:    10,
			FireInterval:     1.5,
			TrackInterval:    0.25,
			TrackStep:        1,
			Depth:            -40,
			MaxHealth:        200,
			ProjectileSpeed:  35,
			ProjectileRange:  80,
			ProjectileDamage: 10,
			HitRadius:        1,
			CompletionBonus:  2000,
		},
		Effect: EffectConfig{
			DestructionLifetime: 0.6,
			PickupLifetime:      0.3,
		},
	}
}

// Clone 返回深拷贝（map/slice 字段不共享）
func (c *TuningConfig) Clone() *TuningConfig {
	cp := *c
	cp.Obstacle.Models = append([]string(nil), c.Obstacle.Models...)
	cp.PowerUp.Weights = make(map[string]float64, len(c.PowerUp.Weights))
	for k, v := range c.PowerUp.Weights {
		cp.PowerUp.Weights[k] = v
	}
	cp.PowerUp.Models = make(map[string]string, len(c.PowerUp.Models))
	for k, v := range c.PowerUp.Models {
		cp.PowerUp.Models[k] = v
	}
	return &cp
}

// Validate 验证配置有效性
func (c *TuningConfig) Validate() error {
	if c.Speed.Initial <= 0 {
		return fmt.Errorf("speed.initial must be > 0, got %.2f", c.Speed.Initial)
	}
	if c.Speed.Max < c.Speed.Initial {
		return fmt.Errorf("speed.max(%.2f) must be >= speed.initial(%.2f)", c.Speed.Max, c.Speed.Initial)
	}
	if c.Speed.Increment < 0 || c.Speed.DistanceScale <= 0 || c.Speed.PointsPerDistance < 0 {
		return fmt.Errorf("speed increment/distanceScale/pointsPerDistance out of range")
	}
	if c.Speed.MaxDelta <= 0 {
		return fmt.Errorf("speed.maxDelta must be > 0, got %.3f", c.Speed.MaxDelta)
	}

	if c.Player.Model == "" {
		return fmt.Errorf("player.model cannot be empty")
	}
	if c.Player.Scale <= 0 || c.Player.LateralLimit <= 0 || c.Player.LateralSpeed <= 0 {
		return fmt.Errorf("player scale/lateralLimit/lateralSpeed must be > 0")
	}
	if c.Player.JumpHeight <= 0 || c.Player.JumpDuration <= 0 {
		return fmt.Errorf("player jumpHeight/jumpDuration must be > 0")
	}
	if c.Player.MaxHealth <= 0 {
		return fmt.Errorf("player.maxHealth must be > 0, got %d", c.Player.MaxHealth)
	}

	if c.Ground.TileLength <= 0 || c.Ground.TileCount < 1 {
		return fmt.Errorf("ground.tileLength must be > 0 and ground.tileCount >= 1")
	}

	o := c.Obstacle
	if len(o.Models) == 0 {
		return fmt.Errorf("obstacle.models cannot be empty")
	}
	if o.PoolSize < 1 {
		return fmt.Errorf("obstacle.poolSize must be >= 1, got %d", o.PoolSize)
	}
	if o.SpawnInterval <= 0 || o.MinSpawnInterval <= 0 {
		return fmt.Errorf("obstacle spawnInterval/minSpawnInterval must be > 0")
	}
	if o.SpawnChance < 0 || o.SpawnChance > 1 {
		return fmt.Errorf("obstacle.spawnChance must be within [0, 1], got %.2f", o.SpawnChance)
	}
	if o.SpawnDepth >= o.RecycleDepth {
		return fmt.Errorf("obstacle.spawnDepth(%.1f) must be < recycleDepth(%.1f)", o.SpawnDepth, o.RecycleDepth)
	}
	if o.Damage < 0 || o.MinGap < 0 || o.LateralRange < 0 {
		return fmt.Errorf("obstacle damage/minGap/lateralRange must be >= 0")
	}
	if o.DifficultyFactor <= 0 || o.DifficultyFactor > 1 {
		return fmt.Errorf("obstacle.difficultyFactor must be within (0, 1], got %.2f", o.DifficultyFactor)
	}

	p := c.PowerUp
	if p.SpawnInterval <= 0 {
		return fmt.Errorf("powerUp.spawnInterval must be > 0")
	}
	if p.SpawnChance < 0 || p.SpawnChance > 1 {
		return fmt.Errorf("powerUp.spawnChance must be within [0, 1], got %.2f", p.SpawnChance)
	}
	if p.SpawnDepth >= p.RemoveDepth {
		return fmt.Errorf("powerUp.spawnDepth(%.1f) must be < removeDepth(%.1f)", p.SpawnDepth, p.RemoveDepth)
	}
	total := 0.0
	for name, w := range p.Weights {
		if !isPowerUpName(name) {
			return fmt.Errorf("powerUp.weights: unknown power-up type %q", name)
		}
		if w < 0 {
			return fmt.Errorf("powerUp.weights[%s] must be >= 0", name)
		}
		total += w
		if w > 0 && p.Models[name] == "" {
			return fmt.Errorf("powerUp.models[%s] is required when its weight is > 0", name)
		}
	}
	if total <= 0 {
		return fmt.Errorf("powerUp.weights must contain at least one positive weight")
	}

	if c.Shield.Duration <= 0 || c.Shield.Scale <= 0 || c.Shield.SpeedBoost < 0 {
		return fmt.Errorf("shield duration/scale must be > 0 and speedBoost >= 0")
	}

	b := c.Boss
	if b.Model == "" {
		return fmt.Errorf("boss.model cannot be empty")
	}
	if b.TriggerDistance <= 0 || b.Countdown <= 0 || b.CountdownRate <= 0 {
		return fmt.Errorf("boss triggerDistance/countdown/countdownRate must be > 0")
	}
	if b.FireInterval <= 0 || b.TrackInterval <= 0 {
		return fmt.Errorf("boss fireInterval/trackInterval must be > 0")
	}
	if b.ProjectileSpeed <= 0 || b.ProjectileRange <= 0 || b.HitRadius <= 0 {
		return fmt.Errorf("boss projectileSpeed/projectileRange/hitRadius must be > 0")
	}
	if b.ProjectileDamage < 0 || b.CompletionBonus < 0 {
		return fmt.Errorf("boss projectileDamage/completionBonus must be >= 0")
	}

	if c.Effect.DestructionLifetime <= 0 || c.Effect.PickupLifetime <= 0 {
		return fmt.Errorf("effect lifetimes must be > 0")
	}
	return nil
}

func isPowerUpName(name string) bool {
	switch name {
	case "shield", "currency", "reposition":
		return true
	}
	return false
}

// TuningFile data/tuning.yaml 的结构
//
// 每个档案只需写出与默认档案不同的字段，解析时叠加在 DefaultTuning() 之上。
type TuningFile struct {
	DefaultProfile string               `yaml:"defaultProfile"`
	Profiles       map[string]yaml.Node `yaml:"profiles"`
}

// ParseTuningFile 解析调参文件内容
func ParseTuningFile(data []byte) (*TuningFile, error) {
	var file TuningFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse tuning YAML: %w", err)
	}
	if len(file.Profiles) == 0 {
		return nil, fmt.Errorf("tuning file defines no profiles")
	}
	if file.DefaultProfile == "" {
		file.DefaultProfile = DefaultProfileName
	}
	if _, ok := file.Profiles[file.DefaultProfile]; !ok {
		return nil, fmt.Errorf("default profile %q not found", file.DefaultProfile)
	}
	return &file, nil
}

// LoadTuningFile 从磁盘加载调参文件
func LoadTuningFile(path string) (*TuningFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tuning file: %w", err)
	}
	return ParseTuningFile(data)
}

// ProfileNames 返回按字母排序的档案名列表
func (f *TuningFile) ProfileNames() []string {
	names := make([]string, 0, len(f.Profiles))
	for name := range f.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Profile 解析指定档案；name 为空时使用默认档案
func (f *TuningFile) Profile(name string) (*TuningConfig, error) {
	if name == "" {
		name = f.DefaultProfile
	}
	node, ok := f.Profiles[name]
	if !ok {
		return nil, fmt.Errorf("tuning profile %q not found", name)
	}

	cfg := DefaultTuning()
	if err := node.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode tuning profile %q: %w", name, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tuning profile %q: %w", name, err)
	}
	return cfg, nil
}
