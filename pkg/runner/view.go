package runner

import (
	"sort"

	"github.com/decker502/highway/pkg/components"
	"github.com/decker502/highway/pkg/ecs"
	"github.com/decker502/highway/pkg/game"
	"github.com/decker502/highway/pkg/systems"
	"github.com/go-gl/mathgl/mgl64"
)

// Stats 汇总本帧推送给显示层的数值
func (r *Runner) Stats() game.Stats {
	s := r.session
	stats := game.Stats{
		Score:     s.Score,
		HighScore: r.deps.HighScores.HighScore(),
		Coins:     s.Coins,
		Distance:  s.Distance,
		Speed:     s.ScrollSpeed,
		Health:    s.Health,
		MaxHealth: s.MaxHealth,
		Mode:      s.Mode,
		Paused:    s.Paused,
	}
	if s.Score > stats.HighScore {
		stats.HighScore = s.Score
	}
	if s.Mode == game.ModeBoss {
		stats.BossRemaining = s.BossCountdown
	}
	if player, ok := ecs.GetComponent[*components.PlayerComponent](r.entityManager, s.PlayerEntity); ok {
		stats.ShieldActive = player.ShieldActive
		stats.ShieldRemaining = player.ShieldRemaining
		stats.ShieldCharges = player.ShieldCharges
		stats.RepositionCharges = player.RepositionCharges
	}
	return stats
}

// View 构建本帧的渲染快照：路面地块在前，其余实体按 Z 从远到近排列
func (r *Runner) View() *game.View {
	em := r.entityManager
	view := &game.View{Stats: r.Stats()}

	add := func(id ecs.EntityID, kind game.EntityKind, label string) {
		ve := game.ViewEntity{ID: uint64(id), Kind: kind, Label: label}
		if box, ok := systems.WorldBox(em, id); ok {
			ve.Pos = box.Center
			ve.Size = box.Size
		} else if pos, ok := ecs.GetComponent[*components.PositionComponent](em, id); ok {
			ve.Pos = pos.Pos
			ve.Size = mgl64.Vec3{1, 1, 1}
		} else {
			return
		}
		if model, ok := ecs.GetComponent[*components.ModelComponent](em, id); ok {
			ve.Color = model.Color
			if label == "" {
				ve.Label = model.Name
			}
		}
		view.Entities = append(view.Entities, ve)
	}

	for _, id := range ecs.GetEntitiesWith1[*components.GroundTileComponent](em) {
		add(id, game.KindGround, "ground")
	}
	for _, id := range ecs.GetEntitiesWith1[*components.ObstacleComponent](em) {
		if obstacle, _ := ecs.GetComponent[*components.ObstacleComponent](em, id); obstacle.Active {
			add(id, game.KindObstacle, "")
		}
	}
	for _, id := range ecs.GetEntitiesWith1[*components.PowerUpComponent](em) {
		powerUp, _ := ecs.GetComponent[*components.PowerUpComponent](em, id)
		add(id, game.KindPowerUp, powerUp.Type.String())
	}
	for _, id := range ecs.GetEntitiesWith1[*components.BossComponent](em) {
		add(id, game.KindBoss, "")
	}
	for _, id := range ecs.GetEntitiesWith1[*components.ProjectileComponent](em) {
		add(id, game.KindProjectile, "projectile")
	}
	for _, id := range ecs.GetEntitiesWith1[*components.EffectComponent](em) {
		effect, _ := ecs.GetComponent[*components.EffectComponent](em, id)
		add(id, game.KindEffect, effect.Kind.String())
		if n := len(view.Entities); n > 0 && view.Entities[n-1].ID == uint64(id) {
			view.Entities[n-1].Progress = systems.Progress(em, id)
		}
	}
	if r.PlayerReady() {
		add(r.session.PlayerEntity, game.KindPlayer, "")
		if player, ok := ecs.GetComponent[*components.PlayerComponent](em, r.session.PlayerEntity); ok {
			if n := len(view.Entities); n > 0 && view.Entities[n-1].ID == uint64(r.session.PlayerEntity) {
				view.Entities[n-1].Shielded = player.ShieldActive
			}
		}
	}

	sort.SliceStable(view.Entities, func(i, j int) bool {
		a, b := view.Entities[i], view.Entities[j]
		if a.Kind == game.KindGround && b.Kind != game.KindGround {
			return true
		}
		if b.Kind == game.KindGround && a.Kind != game.KindGround {
			return false
		}
		return a.Pos.Z() < b.Pos.Z()
	})
	return view
}
