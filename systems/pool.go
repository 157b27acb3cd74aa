package systems

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/munch/components"
	"github.com/pthm-cable/munch/config"
)

// Outcome is the result of returning a food entity to the pool.
type Outcome uint8

const (
	// OutcomeIgnored means the entity was not active; nothing changed.
	OutcomeIgnored Outcome = iota
	OutcomeConsumed
	OutcomeMissed
	OutcomeCleared
)

func (o Outcome) String() string {
	switch o {
	case OutcomeConsumed:
		return "consumed"
	case OutcomeMissed:
		return "missed"
	case OutcomeCleared:
		return "cleared"
	default:
		return "ignored"
	}
}

// FoodView is a read-only copy of one live food entity.
type FoodView struct {
	Entity  ecs.Entity
	Type    uint8
	PowerUp components.PowerUpKind
	Pattern components.Pattern
	Pos     components.Position
	Facing  float64
	Magnet  bool
}

// FoodPool owns every food entity. Entities are handed out by Spawn and
// only come back through Consume, Miss or Clear.
type FoodPool struct {
	foods  []config.FoodSpec
	world  config.WorldConfig
	waveHz float64
	grow   bool
	rng    *rand.Rand
	hooks  Hooks

	w      *ecs.World
	mapper *ecs.Map3[components.Position, components.Motion, components.Food]
	filter *ecs.Filter3[components.Position, components.Motion, components.Food]

	free      [][]ecs.Entity // per food type
	active    int
	exhausted int
}

// NewFoodPool preallocates pool_size free entities for each food type.
func NewFoodPool(cfg *config.Config, rng *rand.Rand, hooks Hooks) *FoodPool {
	if hooks == nil {
		hooks = NopHooks{}
	}
	world := ecs.NewWorld()
	p := &FoodPool{
		foods:  cfg.Derived.Foods,
		world:  cfg.World,
		waveHz: cfg.Motion.WaveFrequency,
		grow:   cfg.Pool.GrowOnExhaust,
		rng:    rng,
		hooks:  hooks,
		w:      world,
		mapper: ecs.NewMap3[components.Position, components.Motion, components.Food](world),
		filter: ecs.NewFilter3[components.Position, components.Motion, components.Food](world),
		free:   make([][]ecs.Entity, len(cfg.Derived.Foods)),
	}
	for i, spec := range p.foods {
		p.free[i] = make([]ecs.Entity, 0, spec.PoolSize)
		for range spec.PoolSize {
			p.free[i] = append(p.free[i], p.allocate(uint8(i), true))
		}
	}
	return p
}

func (p *FoodPool) allocate(foodType uint8, poolable bool) ecs.Entity {
	spec := p.foods[foodType]
	pos := components.Position{}
	motion := components.Motion{
		Pattern:   spec.Pattern,
		BaseSpeed: spec.Speed,
		LaneMin:   p.world.LaneMinY,
		LaneMax:   p.world.LaneMaxY,
	}
	food := components.Food{
		Type:       foodType,
		PowerUp:    spec.PowerUp,
		BasePoints: spec.BasePoints,
		State:      components.PoolFree,
		Poolable:   poolable,
	}
	return p.mapper.NewEntity(&pos, &motion, &food)
}

// Spawn activates a food of the given type at a random height on the spawn
// line. An empty bucket falls back to a fresh, non-poolable entity.
func (p *FoodPool) Spawn(foodType uint8) (ecs.Entity, bool) {
	if int(foodType) >= len(p.foods) {
		return ecs.Entity{}, false
	}
	spec := p.foods[foodType]

	var e ecs.Entity
	bucket := p.free[foodType]
	if n := len(bucket); n > 0 {
		e = bucket[n-1]
		p.free[foodType] = bucket[:n-1]
	} else {
		p.exhausted++
		slog.Warn("food pool exhausted",
			"food", spec.Name,
			"pool_size", spec.PoolSize,
			"active", p.active,
			"grow", p.grow,
		)
		e = p.allocate(foodType, p.grow)
	}

	pos, motion, food := p.mapper.Get(e)
	pos.X = p.world.SpawnX
	pos.Y = p.world.LaneMinY + p.rng.Float64()*(p.world.LaneMaxY-p.world.LaneMinY)

	heading := spec.Heading
	if spec.Pattern == components.PatternBounce && p.rng.Intn(2) == 0 {
		heading = -heading
	}
	if spec.Pattern == components.PatternWave {
		heading = 0
	}
	motion.Pattern = spec.Pattern
	motion.BaseSpeed = spec.Speed
	motion.Direction = LeftwardDirection(heading)
	InitMotion(motion, *pos, p.waveHz)

	food.PowerUp = spec.PowerUp
	food.BasePoints = spec.BasePoints
	food.State = components.PoolActive
	p.active++

	p.hooks.OnFoodSpawned(e, foodType, *pos, spec.Pattern, spec.PowerUp)
	return e, true
}

// Consume returns an eaten entity. Inactive entities are ignored.
func (p *FoodPool) Consume(e ecs.Entity) (Outcome, components.Food) {
	return p.release(e, OutcomeConsumed)
}

// Miss returns an entity that crossed the trailing boundary.
func (p *FoodPool) Miss(e ecs.Entity) (Outcome, components.Food) {
	return p.release(e, OutcomeMissed)
}

func (p *FoodPool) release(e ecs.Entity, outcome Outcome) (Outcome, components.Food) {
	if !p.w.Alive(e) {
		return OutcomeIgnored, components.Food{}
	}
	_, motion, food := p.mapper.Get(e)
	if food.State != components.PoolActive {
		return OutcomeIgnored, *food
	}
	food.State = components.PoolFree
	motion.Magnet = false
	snapshot := *food
	p.active--

	if food.Poolable {
		p.free[food.Type] = append(p.free[food.Type], e)
	} else {
		p.mapper.Remove(e)
	}

	var reason RemovalReason
	switch outcome {
	case OutcomeConsumed:
		reason = RemovedConsumed
	case OutcomeMissed:
		reason = RemovedMissed
	default:
		reason = RemovedCleared
	}
	p.hooks.OnFoodRemoved(e, reason)
	return outcome, snapshot
}

// Clear returns every live entity to the pool.
func (p *FoodPool) Clear() int {
	live := p.activeEntities()
	for _, e := range live {
		p.release(e, OutcomeCleared)
	}
	return len(live)
}

// Step moves every live entity.
func (p *FoodPool) Step(dt float64, params MotionParams) {
	query := p.filter.Query()
	for query.Next() {
		pos, motion, food := query.Get()
		if food.State != components.PoolActive {
			continue
		}
		StepMotion(pos, motion, dt, params)
	}
}

// Crossed returns live entities at or past x.
func (p *FoodPool) Crossed(x float64) []ecs.Entity {
	var out []ecs.Entity
	query := p.filter.Query()
	for query.Next() {
		pos, _, food := query.Get()
		if food.State == components.PoolActive && pos.X <= x {
			out = append(out, query.Entity())
		}
	}
	return out
}

// Within returns live entities whose position lies inside the box
// centered on (cx, cy) with half extents hx, hy.
func (p *FoodPool) Within(cx, cy, hx, hy float64) []ecs.Entity {
	var out []ecs.Entity
	query := p.filter.Query()
	for query.Next() {
		pos, _, food := query.Get()
		if food.State != components.PoolActive {
			continue
		}
		if pos.X >= cx-hx && pos.X <= cx+hx && pos.Y >= cy-hy && pos.Y <= cy+hy {
			out = append(out, query.Entity())
		}
	}
	return out
}

// Live appends a view of every live entity to buf.
func (p *FoodPool) Live(buf []FoodView) []FoodView {
	query := p.filter.Query()
	for query.Next() {
		pos, motion, food := query.Get()
		if food.State != components.PoolActive {
			continue
		}
		buf = append(buf, FoodView{
			Entity:  query.Entity(),
			Type:    food.Type,
			PowerUp: food.PowerUp,
			Pattern: motion.Pattern,
			Pos:     *pos,
			Facing:  motion.Facing,
			Magnet:  motion.Magnet,
		})
	}
	return buf
}

func (p *FoodPool) activeEntities() []ecs.Entity {
	var out []ecs.Entity
	query := p.filter.Query()
	for query.Next() {
		_, _, food := query.Get()
		if food.State == components.PoolActive {
			out = append(out, query.Entity())
		}
	}
	return out
}

// EnrollAll switches every live entity not already seeking into seek mode.
func (p *FoodPool) EnrollAll() []ecs.Entity {
	var out []ecs.Entity
	query := p.filter.Query()
	for query.Next() {
		_, motion, food := query.Get()
		if food.State == components.PoolActive && !motion.Magnet {
			motion.Magnet = true
			out = append(out, query.Entity())
		}
	}
	return out
}

// Enroll switches one live entity into seek mode.
func (p *FoodPool) Enroll(e ecs.Entity) bool {
	if !p.w.Alive(e) {
		return false
	}
	_, motion, food := p.mapper.Get(e)
	if food.State != components.PoolActive || motion.Magnet {
		return false
	}
	motion.Magnet = true
	return true
}

// Release puts the given entities back on their own pattern. Entities
// that are gone or already released are skipped.
func (p *FoodPool) Release(entities []ecs.Entity) {
	for _, e := range entities {
		if !p.w.Alive(e) {
			continue
		}
		_, motion, _ := p.mapper.Get(e)
		motion.Magnet = false
	}
}

// Get returns copies of an entity's components.
func (p *FoodPool) Get(e ecs.Entity) (components.Position, components.Motion, components.Food, bool) {
	if !p.w.Alive(e) {
		return components.Position{}, components.Motion{}, components.Food{}, false
	}
	pos, motion, food := p.mapper.Get(e)
	return *pos, *motion, *food, true
}

// ActiveCount returns the number of live entities.
func (p *FoodPool) ActiveCount() int { return p.active }

// FreeCount returns the number of pooled free entities of a type.
func (p *FoodPool) FreeCount(foodType uint8) int {
	if int(foodType) >= len(p.free) {
		return 0
	}
	return len(p.free[foodType])
}

// Exhausted returns how many spawns fell back to fresh allocation.
func (p *FoodPool) Exhausted() int { return p.exhausted }

// ResetCounters zeroes the exhaustion count.
func (p *FoodPool) ResetCounters() { p.exhausted = 0 }

// Scheduler runs one independent spawn timer per food type.
type Scheduler struct {
	intervals []float64
	timers    []float64
}

// NewScheduler creates timers from the food specs.
func NewScheduler(foods []config.FoodSpec) *Scheduler {
	s := &Scheduler{
		intervals: make([]float64, len(foods)),
		timers:    make([]float64, len(foods)),
	}
	for i, f := range foods {
		s.intervals[i] = f.SpawnInterval
	}
	return s
}

// Due advances every timer by dt and appends the types whose interval elapsed.
func (s *Scheduler) Due(dt float64, buf []uint8) []uint8 {
	for i := range s.timers {
		if s.intervals[i] <= 0 {
			continue
		}
		s.timers[i] += dt
		for s.timers[i] >= s.intervals[i] {
			s.timers[i] -= s.intervals[i]
			buf = append(buf, uint8(i))
		}
	}
	return buf
}

// Reset zeroes every timer.
func (s *Scheduler) Reset() {
	for i := range s.timers {
		s.timers[i] = 0
	}
}
