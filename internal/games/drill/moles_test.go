package drill

import (
	"testing"

	"github.com/vovakirdan/drilldown/internal/config"
	"github.com/vovakirdan/drilldown/internal/core"
)

func testMolePool(seed int64) *MolePool {
	cfg := config.DefaultDrillConfig()
	return NewMolePool(cfg.Moles, 480, 640, seed)
}

func TestMoleSpawn(t *testing.T) {
	mp := testMolePool(11)
	left, right := 0, 0

	for i := 0; i < 200; i++ {
		m := mp.Spawn(1000)
		if m.Y != 1000+640-50 {
			t.Fatalf("Y = %v, want %v", m.Y, 1000+640-50)
		}
		speed := m.VX
		switch {
		case m.X == -m.W && m.VX > 0:
			left++
		case m.X == 480 && m.VX < 0:
			right++
			speed = -speed
		default:
			t.Fatalf("mole spawned at X=%v moving %v", m.X, m.VX)
		}
		if speed < 2 || speed > 3 {
			t.Fatalf("speed = %v, want within [2, 3]", speed)
		}
	}
	if left == 0 || right == 0 {
		t.Errorf("spawn sides left=%d right=%d, want both", left, right)
	}
}

func TestMoleSpawnDeterministic(t *testing.T) {
	a, b := testMolePool(5), testMolePool(5)
	for i := 0; i < 20; i++ {
		ma, mb := a.Spawn(0), b.Spawn(0)
		if *ma != *mb {
			t.Fatalf("spawn %d differs: %+v vs %+v", i, *ma, *mb)
		}
	}
}

func TestMaybeSpawnChance(t *testing.T) {
	mp := testMolePool(1)
	for i := 0; i < 50; i++ {
		if mp.MaybeSpawn(0, 0) {
			t.Fatal("spawned with zero chance")
		}
	}
	for i := 0; i < 10; i++ {
		if !mp.MaybeSpawn(1, 0) {
			t.Fatal("chance 1 should always spawn")
		}
	}
	if len(mp.Moles()) != 10 {
		t.Errorf("moles = %d, want 10", len(mp.Moles()))
	}
}

func TestMoleDespawn(t *testing.T) {
	tests := []struct {
		name    string
		mole    Mole
		scrollY float64
		alive   bool
	}{
		{"walking right on screen", Mole{X: 100, Y: 500, VX: 2}, 0, true},
		{"past right edge", Mole{X: 480 + 49, Y: 500, VX: 2}, 0, false},
		{"walking left just spawned", Mole{X: 480, Y: 500, VX: -2}, 0, true},
		{"past left edge", Mole{X: -49, Y: 500, VX: -2}, 0, false},
		{"scrolled above view", Mole{X: 100, Y: 500, VX: 2}, 551, false},
		{"within scroll margin", Mole{X: 100, Y: 500, VX: 2}, 549, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mp := testMolePool(1)
			m := tt.mole
			m.W, m.H = 24, 24
			mp.moles = append(mp.moles, &m)

			mp.Update(tt.scrollY)

			if alive := len(mp.Moles()) == 1; alive != tt.alive {
				t.Errorf("alive = %v, want %v", alive, tt.alive)
			}
		})
	}
}

func TestMoleHurtsPlayer(t *testing.T) {
	cfg, w := emptyWorld()
	p := centeredPlayer(cfg, w, 7, 10)
	mp := testMolePool(1)
	rec := &recorder{}
	mp.moles = append(mp.moles, &Mole{X: p.X + 5, Y: p.Y + 5, W: 24, H: 24, VX: 2})

	kills := mp.Resolve(p, w, 0, rec)

	if kills != 0 {
		t.Errorf("kills = %d, want 0", kills)
	}
	if p.HP != 2 {
		t.Errorf("HP = %d, want 2", p.HP)
	}
	if len(mp.Moles()) != 0 {
		t.Error("mole should be removed after hitting the player")
	}
	if rec.count(core.EffectDamage) != 1 {
		t.Errorf("damage effects = %d, want 1", rec.count(core.EffectDamage))
	}
	// Respawned centered three tiles below the viewport top.
	if p.Y != 96 {
		t.Errorf("Y = %v, want 96 after respawn", p.Y)
	}
}

func TestFeverKillsMole(t *testing.T) {
	cfg, w := emptyWorld()
	p := centeredPlayer(cfg, w, 7, 10)
	p.Fever = true
	mp := testMolePool(1)
	rec := &recorder{}
	mp.moles = append(mp.moles,
		&Mole{X: p.X, Y: p.Y, W: 24, H: 24, VX: 2},
		&Mole{X: 0, Y: 0, W: 24, H: 24, VX: 2},
	)

	kills := mp.Resolve(p, w, 0, rec)

	if kills != 1 {
		t.Errorf("kills = %d, want 1", kills)
	}
	if p.HP != 3 {
		t.Errorf("HP = %d, want 3 in fever", p.HP)
	}
	if len(mp.Moles()) != 1 {
		t.Errorf("moles = %d, want the untouched one left", len(mp.Moles()))
	}
	if rec.count(core.EffectReward) != 1 {
		t.Errorf("reward effects = %d, want 1", rec.count(core.EffectReward))
	}
}

func TestTouchingEdgesDoNotCollide(t *testing.T) {
	cfg, w := emptyWorld()
	p := centeredPlayer(cfg, w, 7, 10)
	mp := testMolePool(1)
	mp.moles = append(mp.moles, &Mole{X: p.X + p.W, Y: p.Y, W: 24, H: 24, VX: 2})

	mp.Resolve(p, w, 0, nil)
	if p.HP != 3 || len(mp.Moles()) != 1 {
		t.Errorf("edge contact counted as a hit: HP=%d moles=%d", p.HP, len(mp.Moles()))
	}
}
