package game

import (
	"errors"
	"math"

	"rampart/pkg/config"
	"rampart/pkg/geom"

	log "github.com/sirupsen/logrus"
)

var (
	ErrUnknownTower  = errors.New("unknown tower type")
	ErrNotEnoughGold = errors.New("not enough gold")
	ErrBlockedSpot   = errors.New("spot is blocked")
	ErrMaxLevel      = errors.New("tower is at max level")
)

// Creep walks the lane left to right. Position is plain X/Y world
// coordinates of the sprite center.
type Creep struct {
	X, Y          float64
	CurrentHealth float64
	MaxHealth     float64
	Def           CreepDefinition

	dead   bool
	leaked bool
}

func (c *Creep) Health() (current, max float64) {
	return c.CurrentHealth, c.MaxHealth
}

func (c *Creep) Alive() bool { return !c.dead && !c.leaked }

// Tower sits off the lane and shoots the creep closest to its base.
// Position is the sprite center in world coordinates.
type Tower struct {
	Position geom.Point
	Level    int
	Def      TowerDefinition
	Kills    int

	cooldown float64
}

func (t *Tower) Damage() float64 {
	return t.Def.Damage + t.Def.DamagePerLvl*float64(t.Level-1)
}

func (t *Tower) Range() float64 {
	return t.Def.Range + t.Def.RangePerLvl*float64(t.Level-1)
}

func (t *Tower) UpgradeCost() int { return t.Def.UpgradeCost * t.Level }

// Footprint is the tower's box in world coordinates, for click tests.
func (t *Tower) Footprint() geom.Rect {
	return geom.Rect{
		X: t.Position.X - t.Def.Width/2,
		Y: t.Position.Y - t.Def.Height/2,
		W: t.Def.Width,
		H: t.Def.Height,
	}
}

// Base is what the creeps are walking toward. It exposes its position
// through an accessor rather than fields.
type Base struct {
	pos       geom.Point
	health    float64
	maxHealth float64
}

func (b *Base) GetPosition() geom.Point { return b.pos }

func (b *Base) Health() (current, max float64) {
	return b.health, b.maxHealth
}

// HitEvent records one landed shot, in world coordinates. The client
// drains these each frame to spawn damage numbers.
type HitEvent struct {
	X, Y   float64
	Amount float64
	Killed bool
}

type State int

const (
	StateRunning State = iota
	StatePaused
	StateGameOver
)

// World is the whole sim: one lane, towers beside it, waves of creeps,
// a base at the end. Deterministic given the dt sequence.
type World struct {
	creeps []*Creep
	towers []*Tower
	base   *Base

	gold  int
	wave  int
	state State

	spawnQueue []string // creep def ids still to spawn this wave
	spawnTimer float64
	waveDelay  float64 // countdown until the next wave starts

	events []HitEvent
}

func NewWorld() *World {
	laneY := float64(config.LaneY * config.TileSize)
	return &World{
		base: &Base{
			pos:       geom.Point{X: float64(config.ScreenWidth) - 24, Y: laneY},
			health:    20,
			maxHealth: 20,
		},
		gold:      120,
		waveDelay: 3,
	}
}

func (w *World) LaneY() float64   { return w.base.pos.Y }
func (w *World) Gold() int        { return w.gold }
func (w *World) Wave() int        { return w.wave }
func (w *World) Base() *Base      { return w.base }
func (w *World) Creeps() []*Creep { return w.creeps }
func (w *World) Towers() []*Tower { return w.towers }
func (w *World) State() State     { return w.state }
func (w *World) GameOver() bool   { return w.state == StateGameOver }

func (w *World) SetPaused(paused bool) {
	switch {
	case w.state == StateRunning && paused:
		w.state = StatePaused
	case w.state == StatePaused && !paused:
		w.state = StateRunning
	}
}

// DrainEvents hands back the hits since the last drain and clears them.
func (w *World) DrainEvents() []HitEvent {
	ev := w.events
	w.events = nil
	return ev
}

// Update advances the sim by dt seconds. No-op unless running.
func (w *World) Update(dt float64) {
	if w.state != StateRunning {
		return
	}
	w.tickSpawning(dt)
	w.tickCreeps(dt)
	w.tickTowers(dt)
	w.reap()
}

// buildWave composes wave n. Later waves mix in runners and brutes and
// scale grunt health.
func buildWave(n int) []string {
	var q []string
	for i := 0; i < 4+n; i++ {
		q = append(q, "grunt")
	}
	if n >= 2 {
		for i := 0; i < n; i++ {
			q = append(q, "runner")
		}
	}
	if n >= 3 {
		for i := 0; i < n/2; i++ {
			q = append(q, "brute")
		}
	}
	return q
}

func (w *World) tickSpawning(dt float64) {
	if len(w.spawnQueue) == 0 {
		w.waveDelay -= dt
		if w.waveDelay > 0 {
			return
		}
		w.wave++
		w.spawnQueue = buildWave(w.wave)
		w.spawnTimer = 0
		w.waveDelay = 5
		log.Debugf("wave %d: %d creeps", w.wave, len(w.spawnQueue))
		return
	}

	w.spawnTimer -= dt
	if w.spawnTimer > 0 {
		return
	}
	w.spawnTimer = 0.8

	id := w.spawnQueue[0]
	w.spawnQueue = w.spawnQueue[1:]
	def, ok := GetCreepDef(id)
	if !ok {
		log.Warnf("wave queue references unknown creep %q, skipping", id)
		return
	}
	// Health scales gently with the wave number.
	hp := def.MaxHealth * (1 + 0.2*float64(w.wave-1))
	w.creeps = append(w.creeps, &Creep{
		X:             -def.Width,
		Y:             w.base.pos.Y,
		CurrentHealth: hp,
		MaxHealth:     hp,
		Def:           def,
	})
}

func (w *World) tickCreeps(dt float64) {
	for _, c := range w.creeps {
		if !c.Alive() {
			continue
		}
		c.X += c.Def.Speed * dt
		if c.X >= w.base.pos.X {
			c.leaked = true
			w.base.health -= float64(c.Def.Damage)
			if w.base.health <= 0 {
				w.base.health = 0
				w.state = StateGameOver
				log.Debugf("base destroyed on wave %d", w.wave)
			}
		}
	}
}

func (w *World) tickTowers(dt float64) {
	for _, t := range w.towers {
		t.cooldown -= dt
		if t.cooldown > 0 {
			continue
		}
		target := w.creepInRange(t)
		if target == nil {
			continue
		}
		t.cooldown = 1 / t.Def.FireRate

		dmg := t.Damage()
		target.CurrentHealth -= dmg
		killed := target.CurrentHealth <= 0
		if killed {
			target.dead = true
			t.Kills++
			w.gold += target.Def.Bounty
		}
		w.events = append(w.events, HitEvent{
			X: target.X, Y: target.Y, Amount: dmg, Killed: killed,
		})
	}
}

// creepInRange picks the creep furthest down the lane among those the
// tower can reach, so towers focus whatever is closest to leaking.
func (w *World) creepInRange(t *Tower) *Creep {
	var best *Creep
	rng := t.Range()
	for _, c := range w.creeps {
		if !c.Alive() {
			continue
		}
		dx := c.X - t.Position.X
		dy := c.Y - t.Position.Y
		if math.Sqrt(dx*dx+dy*dy) > rng {
			continue
		}
		if best == nil || c.X > best.X {
			best = c
		}
	}
	return best
}

func (w *World) reap() {
	live := w.creeps[:0]
	for _, c := range w.creeps {
		if c.Alive() {
			live = append(live, c)
		}
	}
	w.creeps = live
}

// PlaceTower buys and places a tower centered at pos. The lane itself
// and existing tower footprints are blocked.
func (w *World) PlaceTower(defID string, pos geom.Point) (*Tower, error) {
	def, ok := GetTowerDef(defID)
	if !ok {
		return nil, ErrUnknownTower
	}
	if w.gold < def.Cost {
		return nil, ErrNotEnoughGold
	}
	if math.Abs(pos.Y-w.base.pos.Y) < float64(config.TileSize) {
		return nil, ErrBlockedSpot
	}
	for _, other := range w.towers {
		if other.Footprint().Expand(def.Width / 2).Contains(pos) {
			return nil, ErrBlockedSpot
		}
	}

	w.gold -= def.Cost
	t := &Tower{Position: pos, Level: 1, Def: def}
	w.towers = append(w.towers, t)
	return t, nil
}

// UpgradeTower raises the tower one level if the gold is there.
func (w *World) UpgradeTower(t *Tower) error {
	if t.Level >= t.Def.MaxLevel {
		return ErrMaxLevel
	}
	cost := t.UpgradeCost()
	if w.gold < cost {
		return ErrNotEnoughGold
	}
	w.gold -= cost
	t.Level++
	return nil
}

// SellTower removes the tower and refunds half its sunk cost.
func (w *World) SellTower(t *Tower) {
	refund := t.Def.Cost
	for lvl := 1; lvl < t.Level; lvl++ {
		refund += t.Def.UpgradeCost * lvl
	}
	w.gold += refund / 2

	for i, other := range w.towers {
		if other == t {
			w.towers = append(w.towers[:i], w.towers[i+1:]...)
			return
		}
	}
}

// TowerAt returns the tower whose footprint contains the world point.
func (w *World) TowerAt(p geom.Point) *Tower {
	for _, t := range w.towers {
		if t.Footprint().Contains(p) {
			return t
		}
	}
	return nil
}
