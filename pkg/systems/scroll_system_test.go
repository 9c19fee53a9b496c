package systems

import (
	"math"
	"testing"

	"github.com/decker502/highway/pkg/components"
	"github.com/decker502/highway/pkg/ecs"
	"github.com/decker502/highway/pkg/entities"
)

func TestScrollSystem_TilesWrap(t *testing.T) {
	cfg := testTuning()
	em, session := newTestSession(t, cfg)
	ids, err := entities.NewGroundTiles(em, cfg)
	if err != nil {
		t.Fatalf("NewGroundTiles failed: %v", err)
	}
	system := NewScrollSystem(em, cfg, session)

	length := cfg.Ground.TileLength
	span := length * float64(cfg.Ground.TileCount)

	// 推进略多于一个地块长度：最近的地块应绕到最远处
	session.ScrollSpeed = length + 1
	system.Update(1)

	pos0, _ := ecs.GetComponent[*components.PositionComponent](em, ids[0])
	want := -length/2 + cfg.Obstacle.RecycleDepth + length + 1 - span
	if math.Abs(pos0.Pos.Z()-want) > 1e-9 {
		t.Errorf("Expected tile 0 wrapped to z=%.2f, got %.2f", want, pos0.Pos.Z())
	}

	// 任意时刻所有地块都留在 [recycle-span, recycle] 范围内
	for i := 0; i < 500; i++ {
		session.ScrollSpeed = 37
		system.Update(0.1)
		for _, id := range ids {
			pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
			if pos.Pos.Z()-length/2 > cfg.Obstacle.RecycleDepth || pos.Pos.Z()+length/2 < cfg.Obstacle.RecycleDepth-span-1e-9 {
				t.Fatalf("Tile %d escaped the loop at z=%.2f", id, pos.Pos.Z())
			}
		}
	}
}
