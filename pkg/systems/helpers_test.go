package systems

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/decker502/highway/pkg/components"
	"github.com/decker502/highway/pkg/config"
	"github.com/decker502/highway/pkg/ecs"
	"github.com/decker502/highway/pkg/entities"
	"github.com/decker502/highway/pkg/game"
	"github.com/go-gl/mathgl/mgl64"
)

// 测试用模型：尺寸取整便于手算碰撞
var testModels = map[string]*config.ModelDescriptor{
	"character": {Name: "character", Size: config.Vec3Config{X: 1, Y: 2, Z: 1}, Scale: 1},
	"car":       {Name: "car", Size: config.Vec3Config{X: 2, Y: 1, Z: 4}, Scale: 1},
	"shield":    {Name: "shield", Size: config.Vec3Config{X: 1, Y: 1, Z: 1}, Scale: 1},
	"bitcoin":   {Name: "bitcoin", Size: config.Vec3Config{X: 1, Y: 1, Z: 1}, Scale: 1},
	"potion":    {Name: "potion", Size: config.Vec3Config{X: 1, Y: 1, Z: 1}, Scale: 1},
	"boss":      {Name: "boss", Size: config.Vec3Config{X: 4, Y: 4, Z: 3}, Scale: 1},
}

// fakeLoader 可控的模型加载器
//   - fail 中的模型立即以错误完成
//   - deferred 为 true 时返回未完成的句柄，由测试调用 completeAll 完成
type fakeLoader struct {
	fail     map[string]bool
	deferred bool

	requests []string
	pending  []func(*config.ModelDescriptor, error)
	names    []string
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{fail: make(map[string]bool)}
}

func (l *fakeLoader) LoadModel(name string) *game.LoadHandle {
	l.requests = append(l.requests, name)
	if l.deferred {
		h, complete := game.PendingHandle(name)
		l.pending = append(l.pending, complete)
		l.names = append(l.names, name)
		return h
	}
	return l.result(name)
}

func (l *fakeLoader) result(name string) *game.LoadHandle {
	desc, ok := testModels[name]
	if l.fail[name] || !ok {
		return game.FailedHandle(name, fmt.Errorf("model %s unavailable", name))
	}
	return game.ResolvedHandle(desc)
}

// completeAll 完成所有延迟的请求
func (l *fakeLoader) completeAll() {
	for i, complete := range l.pending {
		name := l.names[i]
		desc, ok := testModels[name]
		if l.fail[name] || !ok {
			complete(nil, fmt.Errorf("model %s unavailable", name))
			continue
		}
		complete(desc, nil)
	}
	l.pending = nil
	l.names = nil
}

// testTuning 确定性的测试档案：生成概率为 1，只有一种障碍和一种道具
func testTuning() *config.TuningConfig {
	cfg := config.DefaultTuning()
	cfg.Obstacle.SpawnChance = 1
	cfg.PowerUp.SpawnChance = 1
	cfg.PowerUp.Weights = map[string]float64{"shield": 1}
	return cfg
}

func newTestRng() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

// newTestSession 创建实体管理器与已开始的会话，并放置玩家
func newTestSession(t *testing.T, cfg *config.TuningConfig) (*ecs.EntityManager, *game.SessionState) {
	t.Helper()
	em := ecs.NewEntityManager()
	session := game.NewSessionState()
	session.Reset(cfg)

	id, err := entities.NewPlayer(em, cfg, testModels["character"])
	if err != nil {
		t.Fatalf("Failed to create player: %v", err)
	}
	session.PlayerEntity = id
	return em, session
}

func addObstacleAt(t *testing.T, em *ecs.EntityManager, x, z float64) ecs.EntityID {
	t.Helper()
	id, err := entities.NewObstacle(em, testModels["car"], x, z)
	if err != nil {
		t.Fatalf("Failed to create obstacle: %v", err)
	}
	return id
}

func addPowerUpAt(t *testing.T, em *ecs.EntityManager, cfg *config.TuningConfig, kind components.PowerUpType, x, z float64) ecs.EntityID {
	t.Helper()
	id, err := entities.NewPowerUp(em, cfg, kind, testModels[cfg.PowerUp.Models[kind.String()]], x, z)
	if err != nil {
		t.Fatalf("Failed to create power-up: %v", err)
	}
	return id
}

func playerPos(t *testing.T, em *ecs.EntityManager, session *game.SessionState) *components.PositionComponent {
	t.Helper()
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, session.PlayerEntity)
	if !ok {
		t.Fatal("Player has no position")
	}
	return pos
}

func playerComp(t *testing.T, em *ecs.EntityManager, session *game.SessionState) *components.PlayerComponent {
	t.Helper()
	player, ok := ecs.GetComponent[*components.PlayerComponent](em, session.PlayerEntity)
	if !ok {
		t.Fatal("Player has no PlayerComponent")
	}
	return player
}

func countObstacles(em *ecs.EntityManager) int {
	return len(ecs.GetEntitiesWith1[*components.ObstacleComponent](em))
}

func vecNear(a, b mgl64.Vec3) bool {
	return a.ApproxEqualThreshold(b, 1e-9)
}

func playerHealth(t *testing.T, em *ecs.EntityManager, session *game.SessionState) *components.HealthComponent {
	t.Helper()
	health, ok := ecs.GetComponent[*components.HealthComponent](em, session.PlayerEntity)
	if !ok {
		t.Fatal("Player has no HealthComponent")
	}
	return health
}

func (l *fakeLoader) countRequests(name string) int {
	n := 0
	for _, r := range l.requests {
		if r == name {
			n++
		}
	}
	return n
}
