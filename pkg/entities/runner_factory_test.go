package entities

import (
	"testing"

	"github.com/decker502/highway/pkg/components"
	"github.com/decker502/highway/pkg/config"
	"github.com/decker502/highway/pkg/ecs"
)

func testDescriptor(name string, x, y, z, scale float64) *config.ModelDescriptor {
	return &config.ModelDescriptor{
		Name:  name,
		Size:  config.Vec3Config{X: x, Y: y, Z: z},
		Scale: scale,
		Color: "#ff0000",
	}
}

func TestNewPlayer(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultTuning()
	cfg.Player.StartPosition = config.Vec3Config{X: 1, Y: 0, Z: 0}

	id, err := NewPlayer(em, cfg, testDescriptor("character", 1, 2, 1, 1))
	if err != nil {
		t.Fatalf("NewPlayer error: %v", err)
	}

	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok || pos.Pos.X() != 1 {
		t.Errorf("Player should start at configured position, got %v", pos)
	}
	scale, _ := ecs.GetComponent[*components.ScaleComponent](em, id)
	if scale.Factor != cfg.Player.Scale || scale.Base != cfg.Player.Scale {
		t.Errorf("Expected scale %.2f, got %+v", cfg.Player.Scale, scale)
	}
	box, _ := ecs.GetComponent[*components.CollisionComponent](em, id)
	if box.Offset.Y() != 1 {
		t.Errorf("Collision box should be lifted by half height, got offset %v", box.Offset)
	}
	health, _ := ecs.GetComponent[*components.HealthComponent](em, id)
	if health.CurrentHealth != cfg.Player.MaxHealth {
		t.Errorf("Expected full health, got %d", health.CurrentHealth)
	}
	if !ecs.HasComponent[*components.PlayerComponent](em, id) {
		t.Error("Player component missing")
	}
}

func TestFactories_InvalidArguments(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultTuning()
	desc := testDescriptor("car", 2, 1, 4, 1)

	tests := []struct {
		name string
		call func() error
	}{
		{"player nil em", func() error { _, err := NewPlayer(nil, cfg, desc); return err }},
		{"player nil desc", func() error { _, err := NewPlayer(em, cfg, nil); return err }},
		{"obstacle nil desc", func() error { _, err := NewObstacle(em, nil, 0, 0); return err }},
		{"power-up nil cfg", func() error { _, err := NewPowerUp(em, nil, components.PowerUpShield, desc, 0, 0); return err }},
		{"boss nil em", func() error { _, err := NewBoss(nil, cfg, desc, 0); return err }},
		{"ground nil cfg", func() error { _, err := NewGroundTiles(em, nil); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); err == nil {
				t.Error("Expected error")
			}
		})
	}
	if em.EntityCount() != 0 {
		t.Errorf("Failed factories must not create entities, got %d", em.EntityCount())
	}
}

func TestPlaceObstacle(t *testing.T) {
	em := ecs.NewEntityManager()
	id, err := NewObstacle(em, testDescriptor("car", 2, 1, 4, 1), 3, -10)
	if err != nil {
		t.Fatalf("NewObstacle error: %v", err)
	}

	obstacle, _ := ecs.GetComponent[*components.ObstacleComponent](em, id)
	obstacle.Active = false
	obstacle.Passed = true

	truck := testDescriptor("truck", 3, 3, 8, 0.5)
	if !PlaceObstacle(em, id, truck, -2, -120) {
		t.Fatal("PlaceObstacle failed")
	}

	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	if pos.Pos.X() != -2 || pos.Pos.Z() != -120 || pos.Pos.Y() != 0 {
		t.Errorf("Unexpected position %v", pos.Pos)
	}
	if !obstacle.Active || obstacle.Passed {
		t.Error("Placed obstacle should be active and not passed")
	}
	box, _ := ecs.GetComponent[*components.CollisionComponent](em, id)
	if box.Size.Z() != 8 || box.Offset.Y() != 1.5 {
		t.Errorf("Collision box should follow the new model, got %+v", box)
	}
	scale, _ := ecs.GetComponent[*components.ScaleComponent](em, id)
	if scale.Factor != 0.5 {
		t.Errorf("Scale should follow the new model, got %.2f", scale.Factor)
	}

	if PlaceObstacle(em, ecs.EntityID(999), truck, 0, 0) {
		t.Error("PlaceObstacle on unknown entity should fail")
	}
}

func TestNewPowerUpAndBoss(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultTuning()

	pid, err := NewPowerUp(em, cfg, components.PowerUpCurrency, testDescriptor("bitcoin", 1, 1, 1, 1), 2, -100)
	if err != nil {
		t.Fatalf("NewPowerUp error: %v", err)
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, pid)
	if pos.Pos.Y() != cfg.PowerUp.Height {
		t.Errorf("Power-up should float at %.2f, got %.2f", cfg.PowerUp.Height, pos.Pos.Y())
	}
	pu, _ := ecs.GetComponent[*components.PowerUpComponent](em, pid)
	if pu.Type != components.PowerUpCurrency || pu.Model != "bitcoin" {
		t.Errorf("Unexpected power-up component %+v", pu)
	}

	bid, err := NewBoss(em, cfg, testDescriptor("boss", 4, 4, 4, 1), 1.5)
	if err != nil {
		t.Fatalf("NewBoss error: %v", err)
	}
	bpos, _ := ecs.GetComponent[*components.PositionComponent](em, bid)
	if bpos.Pos.Z() != cfg.Boss.Depth || bpos.Pos.X() != 1.5 {
		t.Errorf("Unexpected boss position %v", bpos.Pos)
	}
	boss, _ := ecs.GetComponent[*components.BossComponent](em, bid)
	if boss.TargetX != 1.5 {
		t.Errorf("Boss should start tracking from its spawn x, got %.2f", boss.TargetX)
	}
}

func TestNewGroundTiles(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultTuning()

	ids, err := NewGroundTiles(em, cfg)
	if err != nil {
		t.Fatalf("NewGroundTiles error: %v", err)
	}
	if len(ids) != cfg.Ground.TileCount {
		t.Fatalf("Expected %d tiles, got %d", cfg.Ground.TileCount, len(ids))
	}

	// 相邻地块首尾相接
	for i := 1; i < len(ids); i++ {
		prev, _ := ecs.GetComponent[*components.PositionComponent](em, ids[i-1])
		cur, _ := ecs.GetComponent[*components.PositionComponent](em, ids[i])
		if gap := prev.Pos.Z() - cur.Pos.Z(); gap != cfg.Ground.TileLength {
			t.Errorf("Tiles %d and %d are %.2f apart, want %.2f", i-1, i, gap, cfg.Ground.TileLength)
		}
	}
}
