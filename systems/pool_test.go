package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/munch/components"
	"github.com/pthm-cable/munch/config"
)

func newTestPool(t *testing.T, cfg *config.Config) *FoodPool {
	t.Helper()
	return NewFoodPool(cfg, rand.New(rand.NewSource(1)), nil)
}

func smallPoolConfig(t *testing.T, size int, grow bool) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Foods = []config.FoodConfig{
		{Name: "apple", SpawnInterval: 1, Speed: 5, Pattern: "straight", PoolSize: size},
		{Name: "rotten", SpawnInterval: 2, Speed: 4, Pattern: "wave", PowerUp: "rotten", PoolSize: size},
	}
	cfg.Pool.GrowOnExhaust = grow
	if err := cfg.Refresh(); err != nil {
		t.Fatal(err)
	}
	return cfg
}

// ---------- spawn ----------

func TestSpawn_PlacesOnSpawnLine(t *testing.T) {
	cfg := config.Default()
	pool := newTestPool(t, cfg)

	for i := 0; i < 50; i++ {
		foodType := uint8(i % len(cfg.Foods))
		e, ok := pool.Spawn(foodType)
		if !ok {
			t.Fatalf("Spawn(%d) failed", foodType)
		}
		pos, m, food, _ := pool.Get(e)
		if pos.X != cfg.World.SpawnX {
			t.Errorf("X = %v, want %v", pos.X, cfg.World.SpawnX)
		}
		if pos.Y < cfg.World.LaneMinY || pos.Y > cfg.World.LaneMaxY {
			t.Errorf("Y = %v outside lane", pos.Y)
		}
		spec := cfg.Food(foodType)
		if m.Pattern != spec.Pattern || food.PowerUp != spec.PowerUp || m.BaseSpeed != spec.Speed {
			t.Errorf("type %s: got pattern %v power %v speed %v", spec.Name, m.Pattern, food.PowerUp, m.BaseSpeed)
		}
		if !food.Active() {
			t.Error("spawned entity not active")
		}
		pool.Consume(e)
	}
}

func TestSpawn_UnknownTypeRejected(t *testing.T) {
	pool := newTestPool(t, config.Default())
	if _, ok := pool.Spawn(200); ok {
		t.Error("Spawn(200) succeeded")
	}
	if pool.ActiveCount() != 0 {
		t.Errorf("ActiveCount = %d, want 0", pool.ActiveCount())
	}
}

// ---------- return paths ----------

func TestConsume_ExactlyOnce(t *testing.T) {
	pool := newTestPool(t, smallPoolConfig(t, 2, false))
	e, _ := pool.Spawn(0)

	out, food := pool.Consume(e)
	if out != OutcomeConsumed {
		t.Errorf("first Consume = %v, want consumed", out)
	}
	if food.State != components.PoolFree {
		t.Errorf("returned state = %v, want free", food.State)
	}
	if out, _ := pool.Consume(e); out != OutcomeIgnored {
		t.Errorf("second Consume = %v, want ignored", out)
	}
	if out, _ := pool.Miss(e); out != OutcomeIgnored {
		t.Errorf("Miss after Consume = %v, want ignored", out)
	}
	if pool.FreeCount(0) != 2 {
		t.Errorf("FreeCount = %d, want 2", pool.FreeCount(0))
	}
}

func TestMiss_ThenConsumeIgnored(t *testing.T) {
	pool := newTestPool(t, smallPoolConfig(t, 1, false))
	e, _ := pool.Spawn(1)

	out, food := pool.Miss(e)
	if out != OutcomeMissed {
		t.Errorf("Miss = %v, want missed", out)
	}
	if food.PowerUp != components.PowerUpRotten {
		t.Errorf("PowerUp = %v, want rotten", food.PowerUp)
	}
	if out, _ := pool.Consume(e); out != OutcomeIgnored {
		t.Errorf("Consume after Miss = %v, want ignored", out)
	}
}

func TestPool_ReusesEntities(t *testing.T) {
	pool := newTestPool(t, smallPoolConfig(t, 1, false))
	a, _ := pool.Spawn(0)
	pool.Consume(a)
	b, _ := pool.Spawn(0)
	if a != b {
		t.Errorf("second spawn got %v, want recycled %v", b, a)
	}
	if pool.Exhausted() != 0 {
		t.Errorf("Exhausted = %d, want 0", pool.Exhausted())
	}
}

// ---------- exhaustion ----------

func TestExhaustion_FallbackIsDestroyed(t *testing.T) {
	pool := newTestPool(t, smallPoolConfig(t, 1, false))
	pooled, _ := pool.Spawn(0)
	extra, ok := pool.Spawn(0)
	if !ok {
		t.Fatal("fallback spawn failed")
	}
	if pool.Exhausted() != 1 {
		t.Errorf("Exhausted = %d, want 1", pool.Exhausted())
	}
	if pool.ActiveCount() != 2 {
		t.Errorf("ActiveCount = %d, want 2", pool.ActiveCount())
	}

	if out, _ := pool.Consume(extra); out != OutcomeConsumed {
		t.Errorf("Consume fallback = %v", out)
	}
	if _, _, _, ok := pool.Get(extra); ok {
		t.Error("fallback entity still alive after return")
	}
	if out, _ := pool.Consume(extra); out != OutcomeIgnored {
		t.Errorf("Consume destroyed entity = %v, want ignored", out)
	}

	pool.Consume(pooled)
	if pool.FreeCount(0) != 1 {
		t.Errorf("FreeCount = %d, want 1", pool.FreeCount(0))
	}
}

func TestExhaustion_GrowRegistersFallback(t *testing.T) {
	pool := newTestPool(t, smallPoolConfig(t, 1, true))
	a, _ := pool.Spawn(0)
	b, _ := pool.Spawn(0)
	pool.Consume(a)
	pool.Consume(b)
	if pool.FreeCount(0) != 2 {
		t.Errorf("FreeCount = %d, want 2", pool.FreeCount(0))
	}
}

func TestExhaustion_ZeroSizedPool(t *testing.T) {
	pool := newTestPool(t, smallPoolConfig(t, 0, false))
	e, ok := pool.Spawn(0)
	if !ok {
		t.Fatal("Spawn with empty pool failed")
	}
	if out, _ := pool.Miss(e); out != OutcomeMissed {
		t.Errorf("Miss = %v", out)
	}
}

// ---------- queries ----------

func TestClear_ReturnsEverything(t *testing.T) {
	rec := newRecorder()
	cfg := smallPoolConfig(t, 2, false)
	pool := NewFoodPool(cfg, rand.New(rand.NewSource(7)), rec)
	for i := 0; i < 5; i++ {
		pool.Spawn(uint8(i % 2))
	}
	if n := pool.Clear(); n != 5 {
		t.Errorf("Clear() = %d, want 5", n)
	}
	if pool.ActiveCount() != 0 {
		t.Errorf("ActiveCount = %d, want 0", pool.ActiveCount())
	}
	if rec.removed[RemovedCleared] != 5 {
		t.Errorf("cleared removals = %d, want 5", rec.removed[RemovedCleared])
	}
	if pool.FreeCount(0) != 2 || pool.FreeCount(1) != 2 {
		t.Errorf("free counts = %d,%d, want 2,2", pool.FreeCount(0), pool.FreeCount(1))
	}
}

func TestCrossedAndWithin(t *testing.T) {
	cfg := smallPoolConfig(t, 2, false)
	pool := newTestPool(t, cfg)
	e, _ := pool.Spawn(0)
	pool.Spawn(1)

	// apple moves 5 units per second from the spawn line.
	dt := (cfg.World.SpawnX - cfg.World.MissX) / 5
	pool.Step(dt, DefaultMotionParams())
	crossed := pool.Crossed(cfg.World.MissX)
	if len(crossed) != 1 || crossed[0] != e {
		t.Errorf("Crossed = %v, want [%v]", crossed, e)
	}

	pos, _, _, _ := pool.Get(e)
	within := pool.Within(pos.X, pos.Y, 0.1, 0.1)
	if len(within) != 1 || within[0] != e {
		t.Errorf("Within = %v, want [%v]", within, e)
	}
}

func TestLive_ReportsActiveOnly(t *testing.T) {
	pool := newTestPool(t, smallPoolConfig(t, 3, false))
	a, _ := pool.Spawn(0)
	pool.Spawn(0)
	pool.Consume(a)

	live := pool.Live(nil)
	if len(live) != 1 {
		t.Fatalf("len(Live) = %d, want 1", len(live))
	}
	if live[0].Entity == a {
		t.Error("Live reported a consumed entity")
	}
}

// ---------- scheduler ----------

func TestScheduler_IndependentTimers(t *testing.T) {
	cfg := smallPoolConfig(t, 1, false)
	s := NewScheduler(cfg.Derived.Foods)

	counts := make([]int, 2)
	for i := 0; i < 16; i++ {
		for _, ft := range s.Due(0.25, nil) {
			counts[ft]++
		}
	}
	// 4 seconds: apple every 1s, rotten every 2s.
	if counts[0] != 4 || counts[1] != 2 {
		t.Errorf("counts = %v, want [4 2]", counts)
	}

	s.Reset()
	if due := s.Due(0.5, nil); len(due) != 0 {
		t.Errorf("Due after Reset = %v, want none", due)
	}
}
